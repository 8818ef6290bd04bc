package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/NGOKrooz/SPIN-sub000/internal/model"
)

// UnitRepository is the unit-catalog data-access interface.
type UnitRepository interface {
	Create(ctx context.Context, unit *model.Unit) error
	GetByID(ctx context.Context, id string) (*model.Unit, error)
	GetByName(ctx context.Context, name string) (*model.Unit, error)
	// List returns the catalog in rotation order.
	List(ctx context.Context) ([]model.Unit, error)
	Update(ctx context.Context, unit *model.Unit) error
	Delete(ctx context.Context, id string) error
	MaxPosition(ctx context.Context) (int, error)
	// ReorderPositions assigns position 1..n following ids, in one
	// transaction so a half-applied reorder can never be observed.
	ReorderPositions(ctx context.Context, ids []string) error
}

type unitRepo struct {
	db *gorm.DB
}

// NewUnitRepo creates the GORM-backed UnitRepository.
func NewUnitRepo(db *gorm.DB) UnitRepository {
	return &unitRepo{db: db}
}

func (r *unitRepo) Create(ctx context.Context, unit *model.Unit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

func (r *unitRepo) GetByID(ctx context.Context, id string) (*model.Unit, error) {
	var unit model.Unit
	err := r.db.WithContext(ctx).
		Where("unit_id = ?", id).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepo) GetByName(ctx context.Context, name string) (*model.Unit, error) {
	var unit model.Unit
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepo) List(ctx context.Context) ([]model.Unit, error) {
	var units []model.Unit
	err := r.db.WithContext(ctx).
		Order("position ASC, name ASC").
		Find(&units).Error
	return units, err
}

func (r *unitRepo) Update(ctx context.Context, unit *model.Unit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

func (r *unitRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("unit_id = ?", id).
		Delete(&model.Unit{}).Error
}

func (r *unitRepo) MaxPosition(ctx context.Context) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&model.Unit{}).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *unitRepo) ReorderPositions(ctx context.Context, ids []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			res := tx.Model(&model.Unit{}).
				Where("unit_id = ?", id).
				Update("position", i+1)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}
