package repository

import (
	"context"
	"institute_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectFilter struct {
	BranchID     *uint
	TeacherEmail string
}

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	return wrapDBError(r.DB.WithContext(ctx).Create(subject).Error, "subject")
}

func (r *SubjectRepository) FindByID(ctx context.Context, id uint) (*model.Subject, error) {
	var subject model.Subject
	if err := r.DB.WithContext(ctx).First(&subject, id).Error; err != nil {
		return nil, wrapDBError(err, "subject")
	}
	return &subject, nil
}

func (r *SubjectRepository) List(ctx context.Context, filter SubjectFilter) ([]model.Subject, error) {
	query := r.DB.WithContext(ctx).Model(&model.Subject{})
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.TeacherEmail != "" {
		query = query.Where("teacher_email = ?", filter.TeacherEmail)
	}

	var subjects []model.Subject
	err := query.Order("id ASC").Find(&subjects).Error
	return subjects, wrapDBError(err, "subject")
}

func (r *SubjectRepository) Update(ctx context.Context, subject *model.Subject) error {
	return wrapDBError(r.DB.WithContext(ctx).Save(subject).Error, "subject")
}
