package service

import (
	"context"
	"institute_backend/internal/model"
	"institute_backend/internal/repository"
	"institute_backend/internal/util"
)

type SubjectRequest struct {
	Name         string `json:"name" validate:"required,max=150"`
	BranchID     uint   `json:"branchId" validate:"required"`
	TeacherEmail string `json:"teacherEmail" validate:"omitempty,email"`
}

type SubjectService struct {
	SubjectRepo *repository.SubjectRepository
	BranchRepo  *repository.BranchRepository
	Stats       StatsCache
}

func NewSubjectService(subjectRepo *repository.SubjectRepository, branchRepo *repository.BranchRepository, stats StatsCache) *SubjectService {
	return &SubjectService{SubjectRepo: subjectRepo, BranchRepo: branchRepo, Stats: stats}
}

func (s *SubjectService) List(ctx context.Context, filter repository.SubjectFilter) ([]model.Subject, error) {
	return s.SubjectRepo.List(ctx, filter)
}

func (s *SubjectService) Get(ctx context.Context, id uint) (*model.Subject, error) {
	return s.SubjectRepo.FindByID(ctx, id)
}

func (s *SubjectService) Create(ctx context.Context, req SubjectRequest) (*model.Subject, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.BranchRepo.FindByID(ctx, req.BranchID); err != nil {
		return nil, err
	}

	subject := &model.Subject{Name: req.Name, BranchID: req.BranchID, TeacherEmail: req.TeacherEmail}
	if err := s.SubjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}
	invalidate(ctx, s.Stats)
	return subject, nil
}

func (s *SubjectService) Update(ctx context.Context, id uint, req SubjectRequest) (*model.Subject, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	subject, err := s.SubjectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subject.BranchID != req.BranchID {
		if _, err := s.BranchRepo.FindByID(ctx, req.BranchID); err != nil {
			return nil, err
		}
	}

	subject.Name = req.Name
	subject.BranchID = req.BranchID
	subject.TeacherEmail = req.TeacherEmail
	if err := s.SubjectRepo.Update(ctx, subject); err != nil {
		return nil, err
	}
	invalidate(ctx, s.Stats)
	return subject, nil
}
