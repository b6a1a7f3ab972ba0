package repository

import (
	"context"
	"institute_backend/internal/model"

	"gorm.io/gorm"
)

// QuestionRepository 题目只增不改
type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(ctx context.Context, question *model.Question) error {
	return wrapDBError(r.DB.WithContext(ctx).Create(question).Error, "question")
}

func (r *QuestionRepository) FindByUnit(ctx context.Context, unitID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.WithContext(ctx).
		Where("unit_id = ?", unitID).
		Order("id ASC").
		Find(&questions).Error
	return questions, wrapDBError(err, "question")
}
