package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/NGOKrooz/SPIN-sub000/internal/model"
)

// ActivityLogRepository is the append-only audit trail store.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *model.ActivityLog) error
	List(ctx context.Context, activityType, internID string, offset, limit int) ([]model.ActivityLog, int64, error)
}

type activityLogRepo struct {
	db *gorm.DB
}

// NewActivityLogRepo creates the GORM-backed ActivityLogRepository.
func NewActivityLogRepo(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Create(ctx context.Context, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepo) List(ctx context.Context, activityType, internID string, offset, limit int) ([]model.ActivityLog, int64, error) {
	var entries []model.ActivityLog
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ActivityLog{})
	if activityType != "" {
		db = db.Where("activity_type = ?", activityType)
	}
	if internID != "" {
		db = db.Where("intern_id = ?", internID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, total, err
}
