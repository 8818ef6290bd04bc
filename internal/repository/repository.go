package repository

import "gorm.io/gorm"

// Repository aggregates every data-access interface.
type Repository struct {
	Intern          InternRepository
	Unit            UnitRepository
	Rotation        RotationRepository
	ExtensionReason ExtensionReasonRepository
	ActivityLog     ActivityLogRepository
	Settings        RotationSettingsRepository
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Intern:          NewInternRepo(db),
		Unit:            NewUnitRepo(db),
		Rotation:        NewRotationRepo(db),
		ExtensionReason: NewExtensionReasonRepo(db),
		ActivityLog:     NewActivityLogRepo(db),
		Settings:        NewRotationSettingsRepo(db),
	}
}
