package service

import (
	"context"
	"encoding/csv"
	"institute_backend/internal/config"
	"institute_backend/internal/model"
	"institute_backend/internal/repository"
	"institute_backend/internal/util"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageProvider(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	storage, err := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: dir}})
	require.NoError(t, err)

	url, err := storage.Upload(ctx, "reports/a.csv", strings.NewReader("x,y\n"), 4, util.MimeCSV)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/reports/a.csv", url)
	assert.FileExists(t, filepath.Join(dir, "reports", "a.csv"))

	require.NoError(t, storage.Delete(ctx, "reports/a.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "reports", "a.csv"))
}

func TestRenderProgressCSV(t *testing.T) {
	units := []model.Unit{{BaseModel: model.BaseModel{ID: 1}, UnitNo: 1, Title: "Arrays, basics"}}
	records := []model.Progress{
		{StudentEmail: "a@x.edu", UnitID: 1, TeacherCoverage: 50, StudentCoverage: 12.5, QuizScore: ptr(75.0)},
		{StudentEmail: "b@x.edu", UnitID: 1, Completed: false},
	}

	data, err := RenderProgressCSV(units, records)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, progressReportHeader, rows[0])
	assert.Equal(t, []string{"a@x.edu", "1", "1", "Arrays, basics", "50", "12.5", "75", "false"}, rows[1][:8])
	assert.Equal(t, "", rows[2][6])
}

func TestExportProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)
	dir := t.TempDir()
	storage, err := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: dir}})
	require.NoError(t, err)

	svc := NewReportService(
		repository.NewSubjectRepository(f.db),
		repository.NewUnitRepository(f.db),
		repository.NewProgressRepository(f.db),
		storage,
	)

	_, err = f.quiz.SubmitQuiz(ctx, QuizSubmission{UnitID: f.unit.ID, StudentEmail: "a@x.edu", Answers: f.answers(t, 2, 1)})
	require.NoError(t, err)
	_, err = f.progress.SetStudentCoverage(ctx, StudentCoverageUpdate{StudentEmail: "b@x.edu", SubjectID: f.subject.ID, UnitID: f.unit.ID, StudentCoverage: ptr(10.0)})
	require.NoError(t, err)

	res, err := svc.ExportProgress(ctx, f.subject.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)
	require.True(t, strings.HasPrefix(res.URL, "/uploads/reports/progress-subject-"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(res.URL, "/uploads/")))
	require.NoError(t, err)
	assert.Contains(t, string(data), "a@x.edu,")
	assert.Contains(t, string(data), "Arrays")

	_, err = svc.ExportProgress(ctx, 999)
	assert.ErrorIs(t, err, util.ErrNotFound)
}
