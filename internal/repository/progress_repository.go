package repository

import (
	"context"
	"institute_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// progress 表以 (student_email, unit_id) 唯一，所有写入都走条件 upsert
type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

var progressKey = []clause.Column{{Name: "student_email"}, {Name: "unit_id"}}

// upsert 插入新记录，冲突时只更新 columns 指定的列，然后在同一事务中读回
func (r *ProgressRepository) upsert(ctx context.Context, p *model.Progress, columns ...string) (*model.Progress, error) {
	p.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	var stored model.Progress
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   progressKey,
			DoUpdates: clause.AssignmentColumns(columns),
		}).Create(p).Error
		if err != nil {
			return err
		}
		return tx.Where("student_email = ? AND unit_id = ?", p.StudentEmail, p.UnitID).First(&stored).Error
	})
	if err != nil {
		return nil, wrapDBError(err, "progress")
	}
	return &stored, nil
}

// UpsertQuizResult 只覆盖 quiz_score 和 completed，不触碰 coverage
func (r *ProgressRepository) UpsertQuizResult(ctx context.Context, p *model.Progress) (*model.Progress, error) {
	return r.upsert(ctx, p, "quiz_score", "completed")
}

func (r *ProgressRepository) UpsertStudentCoverage(ctx context.Context, p *model.Progress) (*model.Progress, error) {
	return r.upsert(ctx, p, "student_coverage")
}

func (r *ProgressRepository) UpsertTeacherCoverage(ctx context.Context, p *model.Progress) (*model.Progress, error) {
	return r.upsert(ctx, p, "teacher_coverage")
}

func (r *ProgressRepository) FindByID(ctx context.Context, id uint) (*model.Progress, error) {
	var p model.Progress
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, wrapDBError(err, "progress")
	}
	return &p, nil
}

func (r *ProgressRepository) FindByStudentAndUnit(ctx context.Context, studentEmail string, unitID uint) (*model.Progress, error) {
	var p model.Progress
	err := r.DB.WithContext(ctx).
		Where("student_email = ? AND unit_id = ?", studentEmail, unitID).
		First(&p).Error
	if err != nil {
		return nil, wrapDBError(err, "progress")
	}
	return &p, nil
}

func (r *ProgressRepository) FindByStudent(ctx context.Context, studentEmail string, subjectID *uint) ([]model.Progress, error) {
	query := r.DB.WithContext(ctx).Where("student_email = ?", studentEmail)
	if subjectID != nil {
		query = query.Where("subject_id = ?", *subjectID)
	}

	var records []model.Progress
	err := query.Order("unit_id ASC").Find(&records).Error
	return records, wrapDBError(err, "progress")
}

func (r *ProgressRepository) FindByUnit(ctx context.Context, unitID uint) ([]model.Progress, error) {
	var records []model.Progress
	err := r.DB.WithContext(ctx).
		Where("unit_id = ?", unitID).
		Order("student_email ASC").
		Find(&records).Error
	return records, wrapDBError(err, "progress")
}

func (r *ProgressRepository) FindBySubject(ctx context.Context, subjectID uint) ([]model.Progress, error) {
	var records []model.Progress
	err := r.DB.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("student_email ASC, unit_id ASC").
		Find(&records).Error
	return records, wrapDBError(err, "progress")
}

// UpdateCoverage 部分更新 teacher_coverage / student_coverage，其它列忽略
func (r *ProgressRepository) UpdateCoverage(ctx context.Context, id uint, teacherCoverage, studentCoverage *float64) (*model.Progress, error) {
	updates := map[string]interface{}{}
	if teacherCoverage != nil {
		updates["teacher_coverage"] = *teacherCoverage
	}
	if studentCoverage != nil {
		updates["student_coverage"] = *studentCoverage
	}

	var stored model.Progress
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&stored, id).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&stored).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&stored, id).Error
	})
	if err != nil {
		return nil, wrapDBError(err, "progress")
	}
	return &stored, nil
}

