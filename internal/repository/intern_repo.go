package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/NGOKrooz/SPIN-sub000/internal/model"
)

// InternRepository is the intern data-access interface.
type InternRepository interface {
	Create(ctx context.Context, intern *model.Intern) error
	GetByID(ctx context.Context, id string) (*model.Intern, error)
	List(ctx context.Context, batch, status string, offset, limit int) ([]model.Intern, int64, error)
	Update(ctx context.Context, intern *model.Intern) error
	// Delete removes the intern; rotations and extension reasons go with
	// it via ON DELETE CASCADE.
	Delete(ctx context.Context, id string) error
}

type internRepo struct {
	db *gorm.DB
}

// NewInternRepo creates the GORM-backed InternRepository.
func NewInternRepo(db *gorm.DB) InternRepository {
	return &internRepo{db: db}
}

func (r *internRepo) Create(ctx context.Context, intern *model.Intern) error {
	return r.db.WithContext(ctx).Create(intern).Error
}

func (r *internRepo) GetByID(ctx context.Context, id string) (*model.Intern, error) {
	var intern model.Intern
	err := r.db.WithContext(ctx).
		Where("intern_id = ?", id).
		First(&intern).Error
	if err != nil {
		return nil, err
	}
	return &intern, nil
}

func (r *internRepo) List(ctx context.Context, batch, status string, offset, limit int) ([]model.Intern, int64, error) {
	var interns []model.Intern
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Intern{})
	if batch != "" {
		db = db.Where("batch = ?", batch)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("start_date ASC, name ASC").
		Find(&interns).Error
	return interns, total, err
}

func (r *internRepo) Update(ctx context.Context, intern *model.Intern) error {
	return r.db.WithContext(ctx).Save(intern).Error
}

func (r *internRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("intern_id = ?", id).
		Delete(&model.Intern{}).Error
}
