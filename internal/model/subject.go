package model

// swagger:model Subject
type Subject struct {
	BaseModel
	Name         string `gorm:"size:150;not null" json:"name"`
	BranchID     uint   `gorm:"index;not null" json:"branchId"`
	TeacherEmail string `gorm:"size:191;index" json:"teacherEmail"`
}

func (Subject) TableName() string {
	return "subjects"
}
