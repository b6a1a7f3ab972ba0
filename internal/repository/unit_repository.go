package repository

import (
	"context"
	"institute_backend/internal/model"

	"gorm.io/gorm"
)

type UnitRepository struct {
	DB *gorm.DB
}

func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{DB: db}
}

func (r *UnitRepository) Create(ctx context.Context, unit *model.Unit) error {
	return wrapDBError(r.DB.WithContext(ctx).Create(unit).Error, "unit")
}

func (r *UnitRepository) FindByID(ctx context.Context, id uint) (*model.Unit, error) {
	var unit model.Unit
	if err := r.DB.WithContext(ctx).First(&unit, id).Error; err != nil {
		return nil, wrapDBError(err, "unit")
	}
	return &unit, nil
}

func (r *UnitRepository) FindBySubject(ctx context.Context, subjectID uint) ([]model.Unit, error) {
	var units []model.Unit
	err := r.DB.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("unit_no ASC").
		Find(&units).Error
	return units, wrapDBError(err, "unit")
}

func (r *UnitRepository) Update(ctx context.Context, unit *model.Unit) error {
	return wrapDBError(r.DB.WithContext(ctx).Save(unit).Error, "unit")
}
