package model

import "time"

// Activity types recorded by the engine.
const (
	ActivityInternRegistered = "intern_registered"
	ActivityInternUpdated    = "intern_updated"
	ActivityInternDeleted    = "intern_deleted"
	ActivityInternCompleted  = "intern_completed"
	ActivityRotationAdvanced = "rotation_advanced"
	ActivityRotationManual   = "rotation_manual"
	ActivityRotationUpdated  = "rotation_updated"
	ActivityRotationDeleted  = "rotation_deleted"
	ActivityInternExtended   = "intern_extended"
	ActivityUnitCreated      = "unit_created"
	ActivityUnitUpdated      = "unit_updated"
	ActivityUnitDeleted      = "unit_deleted"
	ActivityUnitsReordered   = "units_reordered"
	ActivitySettingsUpdated  = "settings_updated"
)

// ActivityLog maps to activity_logs: an append-only trail of every mutation
// the engine performs. Display and debugging only, never read back by the
// engine itself.
type ActivityLog struct {
	ActivityLogID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"activity_log_id"`
	ActivityType  string    `gorm:"type:varchar(50);not null"                      json:"activity_type"`
	InternID      *string   `gorm:"type:uuid"                                      json:"intern_id,omitempty"`
	UnitID        *string   `gorm:"type:uuid"                                      json:"unit_id,omitempty"`
	Description   string    `gorm:"type:text;not null"                             json:"description"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (ActivityLog) TableName() string { return "activity_logs" }
