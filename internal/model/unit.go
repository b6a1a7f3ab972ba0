package model

// Unit 课程单元，属于某个科目
// swagger:model Unit
type Unit struct {
	BaseModel
	SubjectID uint   `gorm:"index;not null" json:"subjectId"`
	UnitNo    int    `gorm:"not null" json:"unitNo"`
	Title     string `gorm:"size:255;not null" json:"title"`
	Summary   string `gorm:"type:text" json:"summary"`
}

func (Unit) TableName() string {
	return "units"
}
