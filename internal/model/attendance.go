package model

import "time"

// Attendance 每个学生每个科目每天一条记录
// swagger:model Attendance
type Attendance struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Date         string    `gorm:"size:10;not null;uniqueIndex:idx_attendance_day_student_subject" json:"date"`
	StudentEmail string    `gorm:"size:191;not null;uniqueIndex:idx_attendance_day_student_subject;index" json:"studentEmail"`
	SubjectID    uint      `gorm:"not null;uniqueIndex:idx_attendance_day_student_subject;index" json:"subjectId"`
	Present      bool      `gorm:"not null" json:"present"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Attendance) TableName() string {
	return "attendance"
}
