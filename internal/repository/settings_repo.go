package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/NGOKrooz/SPIN-sub000/internal/model"
)

// RotationSettingsRepository reads and writes the single settings row.
type RotationSettingsRepository interface {
	Get(ctx context.Context) (*model.RotationSettings, error)
	Update(ctx context.Context, settings *model.RotationSettings) error
}

type rotationSettingsRepo struct {
	db *gorm.DB
}

// NewRotationSettingsRepo creates the GORM-backed RotationSettingsRepository.
func NewRotationSettingsRepo(db *gorm.DB) RotationSettingsRepository {
	return &rotationSettingsRepo{db: db}
}

func (r *rotationSettingsRepo) Get(ctx context.Context) (*model.RotationSettings, error) {
	var settings model.RotationSettings
	err := r.db.WithContext(ctx).
		Where("singleton = ?", true).
		First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *rotationSettingsRepo) Update(ctx context.Context, settings *model.RotationSettings) error {
	settings.Singleton = true
	return r.db.WithContext(ctx).Save(settings).Error
}
