package service

import (
	"context"
	"errors"
	"fmt"
	"institute_backend/internal/model"
	"institute_backend/internal/util"
	"institute_backend/pkg/logger"
	"institute_backend/pkg/monitoring"
	"institute_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type QuizAnswer struct {
	QuestionID uint   `json:"questionId" validate:"required"`
	Answer     string `json:"answer"`
}

type QuizSubmission struct {
	UnitID       uint         `json:"unitId" validate:"required"`
	StudentEmail string       `json:"studentEmail" validate:"required,email"`
	Answers      []QuizAnswer `json:"answers" validate:"required,dive"`
}

type QuizOutcome struct {
	Score     float64         `json:"score"`
	Completed bool            `json:"completed"`
	Progress  *model.Progress `json:"progress"`
}

type QuizService struct {
	Questions QuestionStore
	Units     UnitStore
	Progress  ProgressStore
	Stats     StatsCache
}

func NewQuizService(questions QuestionStore, units UnitStore, progress ProgressStore, stats StatsCache) *QuizService {
	return &QuizService{
		Questions: questions,
		Units:     units,
		Progress:  progress,
		Stats:     stats,
	}
}

// Grade 按单元题目总数计算百分制得分。不在题集中的答案被忽略，
// 同一题重复作答只计第一次。questions 不能为空。
func Grade(questions []model.Question, answers []QuizAnswer) float64 {
	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	seen := make(map[uint]bool, len(answers))
	correct := 0
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok || seen[a.QuestionID] {
			continue
		}
		seen[a.QuestionID] = true
		if q.IsCorrect(a.Answer) {
			correct++
		}
	}

	return float64(correct*100) / float64(len(questions))
}

// SubmitQuiz 评分并把结果写入 (学生, 单元) 的进度记录。重做会覆盖上次成绩，
// coverage 字段保持不变。
func (s *QuizService) SubmitQuiz(ctx context.Context, sub QuizSubmission) (*QuizOutcome, error) {
	ctx, span := tracing.Tracer.Start(ctx, "QuizService.SubmitQuiz")
	defer span.End()

	outcome, err := s.submit(ctx, sub)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("quiz.unit_id", int64(sub.UnitID)),
		attribute.Float64("quiz.score", outcome.Score),
		attribute.Bool("quiz.completed", outcome.Completed),
	)
	return outcome, nil
}

func (s *QuizService) submit(ctx context.Context, sub QuizSubmission) (*QuizOutcome, error) {
	if err := util.ValidateStruct(sub); err != nil {
		return nil, err
	}

	questions, err := s.Questions.FindByUnit(ctx, sub.UnitID)
	if err != nil {
		return nil, storeError(err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: unit %d has no questions", util.ErrInvalidInput, sub.UnitID)
	}

	score := Grade(questions, sub.Answers)
	completed := model.IsCompletedScore(score)

	subjectID, err := s.subjectFor(ctx, sub.StudentEmail, sub.UnitID)
	if err != nil {
		return nil, err
	}

	record, err := s.Progress.UpsertQuizResult(ctx, &model.Progress{
		StudentEmail: sub.StudentEmail,
		SubjectID:    subjectID,
		UnitID:       sub.UnitID,
		QuizScore:    &score,
		Completed:    completed,
	})
	if err != nil {
		return nil, storeError(err)
	}

	monitoring.ObserveQuiz(score, completed)
	invalidate(ctx, s.Stats)

	logger.Log.Info("Quiz graded",
		zap.String("student", sub.StudentEmail),
		zap.Uint("unit_id", sub.UnitID),
		zap.Float64("score", score),
		zap.Bool("completed", completed),
	)

	return &QuizOutcome{Score: score, Completed: completed, Progress: record}, nil
}

// subjectFor 已有记录时沿用其 subject，否则从单元读取
func (s *QuizService) subjectFor(ctx context.Context, studentEmail string, unitID uint) (uint, error) {
	existing, err := s.Progress.FindByStudentAndUnit(ctx, studentEmail, unitID)
	if err == nil {
		return existing.SubjectID, nil
	}
	if !errors.Is(err, util.ErrNotFound) {
		return 0, storeError(err)
	}

	unit, err := s.Units.FindByID(ctx, unitID)
	if err != nil {
		return 0, storeError(err)
	}
	return unit.SubjectID, nil
}
