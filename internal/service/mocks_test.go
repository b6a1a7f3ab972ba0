package service

import (
	"context"
	"institute_backend/internal/model"
	"institute_backend/internal/repository"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type mockQuestionStore struct{ mock.Mock }

func (m *mockQuestionStore) FindByUnit(ctx context.Context, unitID uint) ([]model.Question, error) {
	args := m.Called(ctx, unitID)
	qs, _ := args.Get(0).([]model.Question)
	return qs, args.Error(1)
}

type mockUnitStore struct{ mock.Mock }

func (m *mockUnitStore) FindByID(ctx context.Context, id uint) (*model.Unit, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.Unit)
	return u, args.Error(1)
}

type mockProgressStore struct{ mock.Mock }

// progressResult 允许 Return 传入 func(*model.Progress) *model.Progress 以回显写入的记录
func progressResult(args mock.Arguments, p *model.Progress) (*model.Progress, error) {
	if fn, ok := args.Get(0).(func(*model.Progress) *model.Progress); ok {
		return fn(p), args.Error(1)
	}
	rec, _ := args.Get(0).(*model.Progress)
	return rec, args.Error(1)
}

func (m *mockProgressStore) FindByID(ctx context.Context, id uint) (*model.Progress, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(*model.Progress)
	return rec, args.Error(1)
}

func (m *mockProgressStore) FindByStudentAndUnit(ctx context.Context, studentEmail string, unitID uint) (*model.Progress, error) {
	args := m.Called(ctx, studentEmail, unitID)
	rec, _ := args.Get(0).(*model.Progress)
	return rec, args.Error(1)
}

func (m *mockProgressStore) FindByStudent(ctx context.Context, studentEmail string, subjectID *uint) ([]model.Progress, error) {
	args := m.Called(ctx, studentEmail, subjectID)
	recs, _ := args.Get(0).([]model.Progress)
	return recs, args.Error(1)
}

func (m *mockProgressStore) FindByUnit(ctx context.Context, unitID uint) ([]model.Progress, error) {
	args := m.Called(ctx, unitID)
	recs, _ := args.Get(0).([]model.Progress)
	return recs, args.Error(1)
}

func (m *mockProgressStore) UpsertQuizResult(ctx context.Context, p *model.Progress) (*model.Progress, error) {
	return progressResult(m.Called(ctx, p), p)
}

func (m *mockProgressStore) UpsertStudentCoverage(ctx context.Context, p *model.Progress) (*model.Progress, error) {
	return progressResult(m.Called(ctx, p), p)
}

func (m *mockProgressStore) UpsertTeacherCoverage(ctx context.Context, p *model.Progress) (*model.Progress, error) {
	return progressResult(m.Called(ctx, p), p)
}

func (m *mockProgressStore) UpdateCoverage(ctx context.Context, id uint, teacherCoverage, studentCoverage *float64) (*model.Progress, error) {
	args := m.Called(ctx, id, teacherCoverage, studentCoverage)
	rec, _ := args.Get(0).(*model.Progress)
	return rec, args.Error(1)
}

type mockStatsCache struct{ mock.Mock }

func (m *mockStatsCache) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

func echoProgress(p *model.Progress) *model.Progress {
	rec := *p
	rec.ID = 1
	return &rec
}

func ptr[T any](v T) *T { return &v }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

// fixture 建一个科目、一个单元以及 n 道题，正确答案依次为 "A0", "A1", ...
type fixture struct {
	db       *gorm.DB
	subject  model.Subject
	unit     model.Unit
	quiz     *QuizService
	progress *ProgressService
}

func newFixture(t *testing.T, questions int) *fixture {
	t.Helper()
	db := newTestDB(t)

	branch := model.Branch{Name: "CS"}
	require.NoError(t, db.Create(&branch).Error)
	subject := model.Subject{Name: "Data Structures", BranchID: branch.ID}
	require.NoError(t, db.Create(&subject).Error)
	unit := model.Unit{SubjectID: subject.ID, UnitNo: 1, Title: "Arrays"}
	require.NoError(t, db.Create(&unit).Error)

	for i := 0; i < questions; i++ {
		q := model.Question{
			UnitID:        unit.ID,
			Question:      "Q",
			Type:          model.ShortAnswer,
			CorrectAnswer: answerKey(i),
		}
		require.NoError(t, db.Create(&q).Error)
	}

	progressRepo := repository.NewProgressRepository(db)
	return &fixture{
		db:       db,
		subject:  subject,
		unit:     unit,
		quiz:     NewQuizService(repository.NewQuestionRepository(db), repository.NewUnitRepository(db), progressRepo, nil),
		progress: NewProgressService(progressRepo, nil),
	}
}

func answerKey(i int) string {
	return "A" + string(rune('0'+i))
}

// answers 对前 correct 题作答正确，其余到 answered 为止作答错误
func (f *fixture) answers(t *testing.T, answered, correct int) []QuizAnswer {
	t.Helper()
	var qs []model.Question
	require.NoError(t, f.db.Where("unit_id = ?", f.unit.ID).Order("id").Find(&qs).Error)

	out := make([]QuizAnswer, 0, answered)
	for i := 0; i < answered; i++ {
		a := QuizAnswer{QuestionID: qs[i].ID, Answer: "wrong"}
		if i < correct {
			a.Answer = qs[i].CorrectAnswer
		}
		out = append(out, a)
	}
	return out
}
