package service

import (
	"context"
	"fmt"
	"institute_backend/internal/model"
	"institute_backend/internal/util"
)

type StudentCoverageUpdate struct {
	StudentEmail    string   `json:"studentEmail" validate:"required,email"`
	SubjectID       uint     `json:"subjectId" validate:"required"`
	UnitID          uint     `json:"unitId" validate:"required"`
	StudentCoverage *float64 `json:"studentCoverage" validate:"required,gte=0,lte=100"`
}

type TeacherCoverageUpdate struct {
	StudentEmail    string   `json:"studentEmail" validate:"required,email"`
	SubjectID       uint     `json:"subjectId" validate:"required"`
	UnitID          uint     `json:"unitId" validate:"required"`
	TeacherCoverage *float64 `json:"teacherCoverage" validate:"required,gte=0,lte=100"`
}

// CoverageUpdate 部分更新，quizScore/completed 只能通过测验修改
type CoverageUpdate struct {
	TeacherCoverage *float64 `json:"teacherCoverage" validate:"omitempty,gte=0,lte=100"`
	StudentCoverage *float64 `json:"studentCoverage" validate:"omitempty,gte=0,lte=100"`
}

type ProgressQuery struct {
	UnitID       *uint
	StudentEmail string
	SubjectID    *uint
}

type ProgressService struct {
	Progress ProgressStore
	Stats    StatsCache
}

func NewProgressService(progress ProgressStore, stats StatsCache) *ProgressService {
	return &ProgressService{Progress: progress, Stats: stats}
}

// SetStudentCoverage 只写 student_coverage，不影响测验成绩和完成状态
func (s *ProgressService) SetStudentCoverage(ctx context.Context, req StudentCoverageUpdate) (*model.Progress, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	record, err := s.Progress.UpsertStudentCoverage(ctx, &model.Progress{
		StudentEmail:    req.StudentEmail,
		SubjectID:       req.SubjectID,
		UnitID:          req.UnitID,
		StudentCoverage: *req.StudentCoverage,
	})
	if err != nil {
		return nil, storeError(err)
	}

	invalidate(ctx, s.Stats)
	return record, nil
}

func (s *ProgressService) SetTeacherCoverage(ctx context.Context, req TeacherCoverageUpdate) (*model.Progress, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	record, err := s.Progress.UpsertTeacherCoverage(ctx, &model.Progress{
		StudentEmail:    req.StudentEmail,
		SubjectID:       req.SubjectID,
		UnitID:          req.UnitID,
		TeacherCoverage: *req.TeacherCoverage,
	})
	if err != nil {
		return nil, storeError(err)
	}

	invalidate(ctx, s.Stats)
	return record, nil
}

func (s *ProgressService) UpdateCoverage(ctx context.Context, id uint, req CoverageUpdate) (*model.Progress, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.TeacherCoverage == nil && req.StudentCoverage == nil {
		return nil, fmt.Errorf("%w: nothing to update", util.ErrInvalidInput)
	}

	record, err := s.Progress.UpdateCoverage(ctx, id, req.TeacherCoverage, req.StudentCoverage)
	if err != nil {
		return nil, storeError(err)
	}

	invalidate(ctx, s.Stats)
	return record, nil
}

func (s *ProgressService) Get(ctx context.Context, id uint) (*model.Progress, error) {
	record, err := s.Progress.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return record, nil
}

// List 按 unitId 或 studentEmail(+subjectId) 查询，二者都缺时返回 ErrInvalidInput
func (s *ProgressService) List(ctx context.Context, q ProgressQuery) ([]model.Progress, error) {
	var (
		records []model.Progress
		err     error
	)
	switch {
	case q.UnitID != nil:
		records, err = s.Progress.FindByUnit(ctx, *q.UnitID)
	case q.StudentEmail != "":
		records, err = s.Progress.FindByStudent(ctx, q.StudentEmail, q.SubjectID)
	default:
		return nil, fmt.Errorf("%w: unitId or studentEmail is required", util.ErrInvalidInput)
	}
	if err != nil {
		return nil, storeError(err)
	}
	return records, nil
}
