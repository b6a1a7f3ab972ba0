package repository

import (
	"context"
	"errors"
	"institute_backend/internal/model"
	"institute_backend/internal/util"

	"gorm.io/gorm"
)

type UserFilter struct {
	Role     model.UserRole
	BranchID *uint
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.DB.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrEmailRegistered
	}
	return wrapDBError(err, "user")
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrapDBError(err, "user")
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapDBError(err, "user")
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, filter UserFilter) ([]model.User, error) {
	query := r.DB.WithContext(ctx).Model(&model.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}

	var users []model.User
	err := query.Order("name ASC").Find(&users).Error
	return users, wrapDBError(err, "user")
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	err := r.DB.WithContext(ctx).Save(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrEmailRegistered
	}
	return wrapDBError(err, "user")
}
