package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"institute_backend/internal/model"
	"institute_backend/internal/repository"
	"institute_backend/internal/util"
	"institute_backend/pkg/logger"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReportResult struct {
	URL  string `json:"url"`
	Rows int    `json:"rows"`
}

var progressReportHeader = []string{
	"student_email", "unit_id", "unit_no", "unit_title",
	"teacher_coverage", "student_coverage", "quiz_score", "completed", "updated_at",
}

type ReportService struct {
	SubjectRepo  *repository.SubjectRepository
	UnitRepo     *repository.UnitRepository
	ProgressRepo *repository.ProgressRepository
	Storage      *StorageService
}

func NewReportService(subjectRepo *repository.SubjectRepository, unitRepo *repository.UnitRepository,
	progressRepo *repository.ProgressRepository, storage *StorageService) *ReportService {
	return &ReportService{
		SubjectRepo:  subjectRepo,
		UnitRepo:     unitRepo,
		ProgressRepo: progressRepo,
		Storage:      storage,
	}
}

// ExportProgress 把某科目的全部进度记录导出为 CSV 并上传
func (s *ReportService) ExportProgress(ctx context.Context, subjectID uint) (*ReportResult, error) {
	subject, err := s.SubjectRepo.FindByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	units, err := s.UnitRepo.FindBySubject(ctx, subject.ID)
	if err != nil {
		return nil, err
	}
	records, err := s.ProgressRepo.FindBySubject(ctx, subject.ID)
	if err != nil {
		return nil, err
	}

	data, err := RenderProgressCSV(units, records)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("reports/progress-subject-%d-%s.csv", subject.ID, uuid.NewString())
	url, err := s.Storage.Upload(ctx, name, bytes.NewReader(data), int64(len(data)), util.MimeCSV)
	if err != nil {
		return nil, fmt.Errorf("%w: upload report: %v", util.ErrStoreFailure, err)
	}

	logger.Log.Info("Progress report exported",
		zap.Uint("subject_id", subject.ID),
		zap.Int("rows", len(records)),
		zap.String("object", name),
	)
	return &ReportResult{URL: url, Rows: len(records)}, nil
}

func RenderProgressCSV(units []model.Unit, records []model.Progress) ([]byte, error) {
	byID := make(map[uint]model.Unit, len(units))
	for _, u := range units {
		byID[u.ID] = u
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(progressReportHeader); err != nil {
		return nil, err
	}

	for _, p := range records {
		unit := byID[p.UnitID]
		quizScore := ""
		if p.QuizScore != nil {
			quizScore = strconv.FormatFloat(*p.QuizScore, 'f', -1, 64)
		}
		row := []string{
			p.StudentEmail,
			strconv.FormatUint(uint64(p.UnitID), 10),
			strconv.Itoa(unit.UnitNo),
			unit.Title,
			strconv.FormatFloat(p.TeacherCoverage, 'f', -1, 64),
			strconv.FormatFloat(p.StudentCoverage, 'f', -1, 64),
			quizScore,
			strconv.FormatBool(p.Completed),
			p.UpdatedAt.Format(util.TimeFormat),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
