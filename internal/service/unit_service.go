package service

import (
	"context"
	"institute_backend/internal/model"
	"institute_backend/internal/repository"
	"institute_backend/internal/util"
)

type UnitRequest struct {
	SubjectID uint   `json:"subjectId" validate:"required"`
	UnitNo    int    `json:"unitNo" validate:"required,gt=0"`
	Title     string `json:"title" validate:"required,max=255"`
	Summary   string `json:"summary"`
}

type UnitService struct {
	UnitRepo    *repository.UnitRepository
	SubjectRepo *repository.SubjectRepository
}

func NewUnitService(unitRepo *repository.UnitRepository, subjectRepo *repository.SubjectRepository) *UnitService {
	return &UnitService{UnitRepo: unitRepo, SubjectRepo: subjectRepo}
}

func (s *UnitService) ListBySubject(ctx context.Context, subjectID uint) ([]model.Unit, error) {
	return s.UnitRepo.FindBySubject(ctx, subjectID)
}

func (s *UnitService) Get(ctx context.Context, id uint) (*model.Unit, error) {
	return s.UnitRepo.FindByID(ctx, id)
}

func (s *UnitService) Create(ctx context.Context, req UnitRequest) (*model.Unit, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.SubjectRepo.FindByID(ctx, req.SubjectID); err != nil {
		return nil, err
	}

	unit := &model.Unit{SubjectID: req.SubjectID, UnitNo: req.UnitNo, Title: req.Title, Summary: req.Summary}
	if err := s.UnitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *UnitService) Update(ctx context.Context, id uint, req UnitRequest) (*model.Unit, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	unit, err := s.UnitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit.SubjectID != req.SubjectID {
		if _, err := s.SubjectRepo.FindByID(ctx, req.SubjectID); err != nil {
			return nil, err
		}
	}

	unit.SubjectID = req.SubjectID
	unit.UnitNo = req.UnitNo
	unit.Title = req.Title
	unit.Summary = req.Summary
	if err := s.UnitRepo.Update(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}
