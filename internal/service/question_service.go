package service

import (
	"context"
	"fmt"
	"institute_backend/internal/model"
	"institute_backend/internal/repository"
	"institute_backend/internal/util"
	"slices"
)

type CreateQuestionRequest struct {
	UnitID        uint               `json:"unitId" validate:"required"`
	Question      string             `json:"question" validate:"required"`
	Type          model.QuestionType `json:"type" validate:"required,oneof=mcq short_answer"`
	Options       []string           `json:"options"`
	CorrectAnswer string             `json:"correctAnswer" validate:"required"`
}

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	UnitRepo     *repository.UnitRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository, unitRepo *repository.UnitRepository) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo, UnitRepo: unitRepo}
}

// ListForUnit 学生看不到正确答案
func (s *QuestionService) ListForUnit(ctx context.Context, unitID uint, role model.UserRole) ([]model.Question, error) {
	questions, err := s.QuestionRepo.FindByUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if role.IsStaff() {
		return questions, nil
	}

	out := make([]model.Question, len(questions))
	for i, q := range questions {
		out[i] = q.WithoutAnswer()
	}
	return out, nil
}

func (s *QuestionService) Create(ctx context.Context, req CreateQuestionRequest) (*model.Question, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	switch req.Type {
	case model.MultipleChoice:
		if len(req.Options) < 2 {
			return nil, fmt.Errorf("%w: multiple choice questions need at least two options", util.ErrInvalidInput)
		}
		if !slices.Contains(req.Options, req.CorrectAnswer) {
			return nil, fmt.Errorf("%w: correctAnswer must be one of the options", util.ErrInvalidInput)
		}
	case model.ShortAnswer:
		req.Options = nil
	}

	if _, err := s.UnitRepo.FindByID(ctx, req.UnitID); err != nil {
		return nil, err
	}

	question := &model.Question{
		UnitID:        req.UnitID,
		Question:      req.Question,
		Type:          req.Type,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
	}
	if err := s.QuestionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}
