package service

import (
	"context"
	"fmt"
	"institute_backend/internal/model"
	"institute_backend/internal/repository"
	"institute_backend/internal/util"
)

type AttendanceEntry struct {
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	StudentEmail string `json:"studentEmail" validate:"required,email"`
	SubjectID    uint   `json:"subjectId" validate:"required"`
	Present      *bool  `json:"present" validate:"required"`
}

type attendanceBatch struct {
	Entries []AttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

type AttendanceQuery struct {
	Date         string
	SubjectID    *uint
	StudentEmail string
}

type AttendanceService struct {
	AttendanceRepo *repository.AttendanceRepository
	Stats          StatsCache
}

func NewAttendanceService(attendanceRepo *repository.AttendanceRepository, stats StatsCache) *AttendanceService {
	return &AttendanceService{AttendanceRepo: attendanceRepo, Stats: stats}
}

// Record 整批写入，任意一条不合法则整批拒绝
func (s *AttendanceService) Record(ctx context.Context, entries []AttendanceEntry) ([]model.Attendance, error) {
	if err := util.ValidateStruct(attendanceBatch{Entries: entries}); err != nil {
		return nil, err
	}

	records := make([]model.Attendance, len(entries))
	for i, e := range entries {
		records[i] = model.Attendance{
			Date:         e.Date,
			StudentEmail: e.StudentEmail,
			SubjectID:    e.SubjectID,
			Present:      *e.Present,
		}
	}

	saved, err := s.AttendanceRepo.UpsertBatch(ctx, records)
	if err != nil {
		return nil, err
	}
	invalidate(ctx, s.Stats)
	return saved, nil
}

func (s *AttendanceService) Query(ctx context.Context, q AttendanceQuery) ([]model.Attendance, error) {
	switch {
	case q.Date != "" && q.SubjectID != nil:
		if err := util.Validate.Var(q.Date, "datetime="+util.DateFormat); err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", util.ErrInvalidInput)
		}
		return s.AttendanceRepo.FindByDateAndSubject(ctx, q.Date, *q.SubjectID)
	case q.StudentEmail != "":
		return s.AttendanceRepo.FindByStudent(ctx, q.StudentEmail, q.SubjectID)
	default:
		return nil, fmt.Errorf("%w: date and subjectId, or studentEmail, are required", util.ErrInvalidInput)
	}
}
