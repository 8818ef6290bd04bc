package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/NGOKrooz/SPIN-sub000/internal/model"
)

// RotationRepository is the rotation data-access interface.
type RotationRepository interface {
	Create(ctx context.Context, rotation *model.Rotation) error
	GetByID(ctx context.Context, id string) (*model.Rotation, error)
	ListByIntern(ctx context.Context, internID string) ([]model.Rotation, error)
	// GetLatestByIntern returns the rotation with the latest start date,
	// ties broken by highest id.
	GetLatestByIntern(ctx context.Context, internID string) (*model.Rotation, error)
	Update(ctx context.Context, rotation *model.Rotation) error
	Delete(ctx context.Context, id string) error
	// CountActiveByUnit counts rotations covering day for the unit.
	CountActiveByUnit(ctx context.Context, unitID string, day time.Time) (int64, error)
	// CountOpenByUnit counts rotations for the unit whose end date is on
	// or after day; used as the unit-deletion guard.
	CountOpenByUnit(ctx context.Context, unitID string, day time.Time) (int64, error)
}

type rotationRepo struct {
	db *gorm.DB
}

// NewRotationRepo creates the GORM-backed RotationRepository.
func NewRotationRepo(db *gorm.DB) RotationRepository {
	return &rotationRepo{db: db}
}

func (r *rotationRepo) Create(ctx context.Context, rotation *model.Rotation) error {
	return r.db.WithContext(ctx).Create(rotation).Error
}

func (r *rotationRepo) GetByID(ctx context.Context, id string) (*model.Rotation, error) {
	var rotation model.Rotation
	err := r.db.WithContext(ctx).
		Preload("Unit").
		Preload("Intern").
		Where("rotation_id = ?", id).
		First(&rotation).Error
	if err != nil {
		return nil, err
	}
	return &rotation, nil
}

func (r *rotationRepo) ListByIntern(ctx context.Context, internID string) ([]model.Rotation, error) {
	var rotations []model.Rotation
	err := r.db.WithContext(ctx).
		Where("intern_id = ?", internID).
		Order("start_date ASC, rotation_id ASC").
		Find(&rotations).Error
	return rotations, err
}

func (r *rotationRepo) GetLatestByIntern(ctx context.Context, internID string) (*model.Rotation, error) {
	var rotation model.Rotation
	err := r.db.WithContext(ctx).
		Where("intern_id = ?", internID).
		Order("start_date DESC, rotation_id DESC").
		First(&rotation).Error
	if err != nil {
		return nil, err
	}
	return &rotation, nil
}

func (r *rotationRepo) Update(ctx context.Context, rotation *model.Rotation) error {
	return r.db.WithContext(ctx).Save(rotation).Error
}

func (r *rotationRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("rotation_id = ?", id).
		Delete(&model.Rotation{}).Error
}

func (r *rotationRepo) CountActiveByUnit(ctx context.Context, unitID string, day time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Rotation{}).
		Where("unit_id = ? AND start_date <= ? AND end_date >= ?", unitID, day, day).
		Count(&count).Error
	return count, err
}

func (r *rotationRepo) CountOpenByUnit(ctx context.Context, unitID string, day time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Rotation{}).
		Where("unit_id = ? AND end_date >= ?", unitID, day).
		Count(&count).Error
	return count, err
}
