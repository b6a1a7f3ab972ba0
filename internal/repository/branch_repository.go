package repository

import (
	"context"
	"institute_backend/internal/model"

	"gorm.io/gorm"
)

type BranchRepository struct {
	DB *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{DB: db}
}

func (r *BranchRepository) Create(ctx context.Context, branch *model.Branch) error {
	return wrapDBError(r.DB.WithContext(ctx).Create(branch).Error, "branch")
}

func (r *BranchRepository) FindByID(ctx context.Context, id uint) (*model.Branch, error) {
	var branch model.Branch
	if err := r.DB.WithContext(ctx).First(&branch, id).Error; err != nil {
		return nil, wrapDBError(err, "branch")
	}
	return &branch, nil
}

func (r *BranchRepository) List(ctx context.Context) ([]model.Branch, error) {
	var branches []model.Branch
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&branches).Error
	return branches, wrapDBError(err, "branch")
}

func (r *BranchRepository) Update(ctx context.Context, branch *model.Branch) error {
	return wrapDBError(r.DB.WithContext(ctx).Save(branch).Error, "branch")
}
