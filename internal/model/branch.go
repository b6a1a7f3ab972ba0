package model

// swagger:model Branch
type Branch struct {
	BaseModel
	Name     string `gorm:"size:100;not null" json:"name"`
	HodEmail string `gorm:"size:191" json:"hodEmail"`
}

func (Branch) TableName() string {
	return "branches"
}
