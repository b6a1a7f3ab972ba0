package service

import (
	"context"
	"institute_backend/internal/model"
	"institute_backend/internal/repository"
	"institute_backend/internal/util"
)

type BranchRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	HodEmail string `json:"hodEmail" validate:"omitempty,email"`
}

type BranchService struct {
	BranchRepo *repository.BranchRepository
	Stats      StatsCache
}

func NewBranchService(branchRepo *repository.BranchRepository, stats StatsCache) *BranchService {
	return &BranchService{BranchRepo: branchRepo, Stats: stats}
}

func (s *BranchService) List(ctx context.Context) ([]model.Branch, error) {
	return s.BranchRepo.List(ctx)
}

func (s *BranchService) Create(ctx context.Context, req BranchRequest) (*model.Branch, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	branch := &model.Branch{Name: req.Name, HodEmail: req.HodEmail}
	if err := s.BranchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}
	invalidate(ctx, s.Stats)
	return branch, nil
}

func (s *BranchService) Update(ctx context.Context, id uint, req BranchRequest) (*model.Branch, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	branch, err := s.BranchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	branch.Name = req.Name
	branch.HodEmail = req.HodEmail

	if err := s.BranchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}
	invalidate(ctx, s.Stats)
	return branch, nil
}
