package service

import (
	"context"
	"institute_backend/internal/model"
	"institute_backend/internal/repository"
	"institute_backend/internal/util"
)

type CreateUserRequest struct {
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=6"`
	Name     string         `json:"name" validate:"required,max=100"`
	Role     model.UserRole `json:"role" validate:"required,oneof=admin hod teacher student"`
	BranchID *uint          `json:"branchId"`
}

type UpdateUserRequest struct {
	Email    *string         `json:"email" validate:"omitempty,email"`
	Password *string         `json:"password" validate:"omitempty,min=6"`
	Name     *string         `json:"name" validate:"omitempty,max=100"`
	Role     *model.UserRole `json:"role" validate:"omitempty,oneof=admin hod teacher student"`
	BranchID *uint           `json:"branchId"`
}

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// List 未指定角色时默认只列学生
func (s *UserService) List(ctx context.Context, filter repository.UserFilter) ([]model.User, error) {
	if filter.Role == "" {
		filter.Role = model.Student
	}
	return s.UserRepo.List(ctx, filter)
}

func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	return s.UserRepo.FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    req.Email,
		Password: hashed,
		Name:     req.Name,
		Role:     req.Role,
		BranchID: req.BranchID,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, req UpdateUserRequest) (*model.User, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.BranchID != nil {
		user.BranchID = req.BranchID
	}
	if req.Password != nil {
		hashed, err := HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.UserRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
