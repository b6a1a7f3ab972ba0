package model

import "time"

type QuestionType string

const (
	MultipleChoice QuestionType = "mcq"
	ShortAnswer    QuestionType = "short_answer"
)

func (t QuestionType) Valid() bool {
	return t == MultipleChoice || t == ShortAnswer
}

// Question 单元测验题，创建后不可修改
// swagger:model Question
type Question struct {
	ID            uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	UnitID        uint         `gorm:"index;not null" json:"unitId"`
	Question      string       `gorm:"type:text;not null" json:"question"`
	Options       []string     `gorm:"type:text;serializer:json" json:"options"`
	CorrectAnswer string       `gorm:"type:text;not null" json:"correctAnswer,omitempty"`
	Type          QuestionType `gorm:"size:20;not null" json:"type"`
	CreatedAt     time.Time    `json:"createdAt"`
}

func (Question) TableName() string {
	return "questions"
}

// IsCorrect compares a submitted answer with the key: exact, case-sensitive, untrimmed.
func (q *Question) IsCorrect(answer string) bool {
	return q.CorrectAnswer == answer
}

// WithoutAnswer returns a copy safe to show to students.
func (q Question) WithoutAnswer() Question {
	q.CorrectAnswer = ""
	return q
}
