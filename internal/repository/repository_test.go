package repository

import (
	"context"
	"institute_backend/internal/model"
	"institute_backend/internal/util"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func ptr[T any](v T) *T { return &v }

func TestProgressUpsertQuizResult(t *testing.T) {
	ctx := context.Background()
	repo := NewProgressRepository(newTestDB(t))

	created, err := repo.UpsertQuizResult(ctx, &model.Progress{
		StudentEmail: "alice@x.edu", SubjectID: 3, UnitID: 7, QuizScore: ptr(40.0), Completed: false,
	})
	require.NoError(t, err)
	require.NotNil(t, created.QuizScore)
	assert.Equal(t, 40.0, *created.QuizScore)
	assert.Zero(t, created.TeacherCoverage)
	assert.Zero(t, created.StudentCoverage)

	_, err = repo.UpsertStudentCoverage(ctx, &model.Progress{
		StudentEmail: "alice@x.edu", SubjectID: 3, UnitID: 7, StudentCoverage: 45,
	})
	require.NoError(t, err)

	updated, err := repo.UpsertQuizResult(ctx, &model.Progress{
		StudentEmail: "alice@x.edu", SubjectID: 3, UnitID: 7, QuizScore: ptr(90.0), Completed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 90.0, *updated.QuizScore)
	assert.True(t, updated.Completed)
	assert.Equal(t, 45.0, updated.StudentCoverage)

	records, err := repo.FindByStudent(ctx, "alice@x.edu", nil)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestProgressUpsertCoverageKeepsQuiz(t *testing.T) {
	ctx := context.Background()
	repo := NewProgressRepository(newTestDB(t))

	_, err := repo.UpsertQuizResult(ctx, &model.Progress{
		StudentEmail: "bob@x.edu", SubjectID: 1, UnitID: 2, QuizScore: ptr(85.0), Completed: true,
	})
	require.NoError(t, err)

	p, err := repo.UpsertStudentCoverage(ctx, &model.Progress{StudentEmail: "bob@x.edu", SubjectID: 1, UnitID: 2, StudentCoverage: 10})
	require.NoError(t, err)
	assert.Equal(t, 10.0, p.StudentCoverage)
	assert.Equal(t, 85.0, *p.QuizScore)
	assert.True(t, p.Completed)

	p, err = repo.UpsertTeacherCoverage(ctx, &model.Progress{StudentEmail: "bob@x.edu", SubjectID: 1, UnitID: 2, TeacherCoverage: 60})
	require.NoError(t, err)
	assert.Equal(t, 60.0, p.TeacherCoverage)
	assert.Equal(t, 10.0, p.StudentCoverage)
	assert.True(t, p.Completed)
}

func TestProgressConcurrentUpsertsKeepOneRow(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	repo := NewProgressRepository(db)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(score float64) {
			defer wg.Done()
			_, err := repo.UpsertQuizResult(ctx, &model.Progress{
				StudentEmail: "carol@x.edu", SubjectID: 1, UnitID: 9, QuizScore: &score, Completed: model.IsCompletedScore(score),
			})
			assert.NoError(t, err)
		}(float64(i * 10))
	}
	wg.Wait()

	records, err := repo.FindByUnit(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestProgressUpdateCoverage(t *testing.T) {
	ctx := context.Background()
	repo := NewProgressRepository(newTestDB(t))

	p, err := repo.UpsertTeacherCoverage(ctx, &model.Progress{StudentEmail: "dan@x.edu", SubjectID: 1, UnitID: 1, TeacherCoverage: 20})
	require.NoError(t, err)

	updated, err := repo.UpdateCoverage(ctx, p.ID, nil, ptr(70.0))
	require.NoError(t, err)
	assert.Equal(t, 20.0, updated.TeacherCoverage)
	assert.Equal(t, 70.0, updated.StudentCoverage)

	_, err = repo.UpdateCoverage(ctx, 999, ptr(1.0), nil)
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = repo.FindByStudentAndUnit(ctx, "nobody@x.edu", 1)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestAttendanceUpsertBatch(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(newTestDB(t))

	saved, err := repo.UpsertBatch(ctx, []model.Attendance{
		{Date: "2024-03-01", StudentEmail: "a@x.edu", SubjectID: 1, Present: true},
		{Date: "2024-03-01", StudentEmail: "b@x.edu", SubjectID: 1, Present: false},
	})
	require.NoError(t, err)
	assert.Len(t, saved, 2)

	_, err = repo.UpsertBatch(ctx, []model.Attendance{
		{Date: "2024-03-01", StudentEmail: "b@x.edu", SubjectID: 1, Present: true},
	})
	require.NoError(t, err)

	day, err := repo.FindByDateAndSubject(ctx, "2024-03-01", 1)
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.True(t, day[0].Present)
	assert.True(t, day[1].Present)

	mine, err := repo.FindByStudent(ctx, "b@x.edu", ptr(uint(1)))
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, &model.User{Email: "a@x.edu", Password: "h", Name: "A", Role: model.Student}))
	err := repo.Create(ctx, &model.User{Email: "a@x.edu", Password: "h", Name: "A2", Role: model.Student})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	users, err := repo.List(ctx, UserFilter{Role: model.Student})
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = repo.FindByEmail(ctx, "missing@x.edu")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestAnalyticsRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAnalyticsRepository(db)

	cs := model.Branch{Name: "CS"}
	ee := model.Branch{Name: "EE"}
	require.NoError(t, db.Create(&cs).Error)
	require.NoError(t, db.Create(&ee).Error)

	users := []model.User{
		{Email: "s1@x.edu", Password: "h", Name: "S1", Role: model.Student, BranchID: &cs.ID},
		{Email: "s2@x.edu", Password: "h", Name: "S2", Role: model.Student, BranchID: &cs.ID},
		{Email: "t1@x.edu", Password: "h", Name: "T1", Role: model.Teacher, BranchID: &cs.ID},
		{Email: "admin@x.edu", Password: "h", Name: "Admin", Role: model.Admin},
	}
	require.NoError(t, db.Create(&users).Error)

	ds := model.Subject{Name: "DS", BranchID: cs.ID}
	circuits := model.Subject{Name: "Circuits", BranchID: ee.ID}
	require.NoError(t, db.Create(&ds).Error)
	require.NoError(t, db.Create(&circuits).Error)
	require.NoError(t, db.Create(&[]model.Unit{{SubjectID: ds.ID, UnitNo: 1, Title: "U1"}, {SubjectID: ds.ID, UnitNo: 2, Title: "U2"}}).Error)

	require.NoError(t, db.Create(&[]model.Attendance{
		{Date: "2024-03-01", StudentEmail: "s1@x.edu", SubjectID: ds.ID, Present: true},
		{Date: "2024-03-01", StudentEmail: "s2@x.edu", SubjectID: ds.ID, Present: true},
		{Date: "2024-03-02", StudentEmail: "s1@x.edu", SubjectID: ds.ID, Present: true},
		{Date: "2024-03-02", StudentEmail: "s2@x.edu", SubjectID: ds.ID, Present: false},
	}).Error)

	require.NoError(t, db.Create(&[]model.Progress{
		{StudentEmail: "s1@x.edu", SubjectID: ds.ID, UnitID: 1, TeacherCoverage: 100, StudentCoverage: 80, QuizScore: ptr(90.0), Completed: true},
		{StudentEmail: "s2@x.edu", SubjectID: ds.ID, UnitID: 1, TeacherCoverage: 50, StudentCoverage: 20},
	}).Error)

	branches, err := repo.BranchStats(ctx)
	require.NoError(t, err)
	require.Len(t, branches, 2)
	assert.Equal(t, model.BranchStats{BranchID: cs.ID, BranchName: "CS", TotalStudents: 2, TotalTeachers: 1, TotalSubjects: 1}, branches[0])
	assert.Equal(t, int64(1), branches[1].TotalSubjects)
	assert.Zero(t, branches[1].TotalStudents)

	attendance, err := repo.AttendanceStats(ctx, nil)
	require.NoError(t, err)
	require.Len(t, attendance, 2)
	assert.Equal(t, int64(3), attendance[0].TotalPresent)
	assert.Equal(t, int64(1), attendance[0].TotalAbsent)
	assert.InDelta(t, 75.0, attendance[0].AttendanceRate, 0.001)
	assert.Zero(t, attendance[1].AttendanceRate)

	progress, err := repo.ProgressStats(ctx, &cs.ID)
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.InDelta(t, 75.0, progress[0].AvgTeacherCoverage, 0.001)
	assert.InDelta(t, 50.0, progress[0].AvgStudentCoverage, 0.001)
	assert.Equal(t, int64(1), progress[0].CompletedUnits)
	assert.Equal(t, int64(2), progress[0].TotalUnits)
}
