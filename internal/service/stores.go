package service

import (
	"context"
	"errors"
	"fmt"
	"institute_backend/internal/model"
	"institute_backend/internal/util"
)

// QuestionStore 答案库
type QuestionStore interface {
	FindByUnit(ctx context.Context, unitID uint) ([]model.Question, error)
}

// UnitStore 返回 util.ErrNotFound 表示单元不存在
type UnitStore interface {
	FindByID(ctx context.Context, id uint) (*model.Unit, error)
}

// ProgressStore 所有写入以 (studentEmail, unitId) 为键做条件 upsert，
// 只更新各自负责的列
type ProgressStore interface {
	FindByID(ctx context.Context, id uint) (*model.Progress, error)
	FindByStudentAndUnit(ctx context.Context, studentEmail string, unitID uint) (*model.Progress, error)
	FindByStudent(ctx context.Context, studentEmail string, subjectID *uint) ([]model.Progress, error)
	FindByUnit(ctx context.Context, unitID uint) ([]model.Progress, error)
	UpsertQuizResult(ctx context.Context, p *model.Progress) (*model.Progress, error)
	UpsertStudentCoverage(ctx context.Context, p *model.Progress) (*model.Progress, error)
	UpsertTeacherCoverage(ctx context.Context, p *model.Progress) (*model.Progress, error)
	UpdateCoverage(ctx context.Context, id uint, teacherCoverage, studentCoverage *float64) (*model.Progress, error)
}

// StatsCache 写入进度或考勤后用来作废统计缓存
type StatsCache interface {
	Invalidate(ctx context.Context)
}

// storeError 保留 NotFound，其它存储错误统一归为 ErrStoreFailure
func storeError(err error) error {
	if errors.Is(err, util.ErrNotFound) || errors.Is(err, util.ErrStoreFailure) {
		return err
	}
	return fmt.Errorf("%w: %v", util.ErrStoreFailure, err)
}

func invalidate(ctx context.Context, cache StatsCache) {
	if cache != nil {
		cache.Invalidate(ctx)
	}
}
