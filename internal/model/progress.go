package model

import "time"

// CompletionThreshold is the quiz score (percent) at or above which a unit counts as completed.
const CompletionThreshold = 80.0

// Progress is the per (student, unit) learning record. The pair is unique.
// swagger:model Progress
type Progress struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentEmail    string    `gorm:"size:191;not null;uniqueIndex:idx_progress_student_unit" json:"studentEmail"`
	SubjectID       uint      `gorm:"not null;index" json:"subjectId"`
	UnitID          uint      `gorm:"not null;uniqueIndex:idx_progress_student_unit;index" json:"unitId"`
	TeacherCoverage float64   `gorm:"not null;default:0" json:"teacherCoverage"`
	StudentCoverage float64   `gorm:"not null;default:0" json:"studentCoverage"`
	QuizScore       *float64  `json:"quizScore"`
	Completed       bool      `gorm:"not null;default:false" json:"completed"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Progress) TableName() string {
	return "progress"
}

// IsCompletedScore reports whether a quiz score reaches the completion threshold.
func IsCompletedScore(score float64) bool {
	return score >= CompletionThreshold
}
