package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/NGOKrooz/SPIN-sub000/internal/model"
)

// ExtensionReasonRepository is the append-only extension audit store.
type ExtensionReasonRepository interface {
	Create(ctx context.Context, reason *model.ExtensionReason) error
	ListByIntern(ctx context.Context, internID string) ([]model.ExtensionReason, error)
}

type extensionReasonRepo struct {
	db *gorm.DB
}

// NewExtensionReasonRepo creates the GORM-backed ExtensionReasonRepository.
func NewExtensionReasonRepo(db *gorm.DB) ExtensionReasonRepository {
	return &extensionReasonRepo{db: db}
}

func (r *extensionReasonRepo) Create(ctx context.Context, reason *model.ExtensionReason) error {
	return r.db.WithContext(ctx).Create(reason).Error
}

func (r *extensionReasonRepo) ListByIntern(ctx context.Context, internID string) ([]model.ExtensionReason, error) {
	var reasons []model.ExtensionReason
	err := r.db.WithContext(ctx).
		Where("intern_id = ?", internID).
		Order("created_at DESC").
		Find(&reasons).Error
	return reasons, err
}
