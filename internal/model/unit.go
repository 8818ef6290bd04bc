package model

// Workload tiers, derived from patient count against the configured
// thresholds; never stored.
const (
	WorkloadLow    = "Low"
	WorkloadMedium = "Medium"
	WorkloadHigh   = "High"
)

// Unit maps to units. Units form an ordered catalog; position drives the
// round-robin traversal and reordering mutates position only.
type Unit struct {
	UnitID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"unit_id"`
	Name         string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	DurationDays int    `gorm:"not null"                                       json:"duration_days"` // 1-365
	PatientCount int    `gorm:"not null;default:0"                             json:"patient_count"`
	Position     int    `gorm:"not null"                                       json:"position"`
	BaseModel
}

// TableName sets the table name.
func (Unit) TableName() string { return "units" }

// Workload classifies the unit by patient count. Thresholds come from
// rotation_settings; the boundaries are inclusive on the high side.
func (u *Unit) Workload(mediumThreshold, highThreshold int) string {
	switch {
	case u.PatientCount >= highThreshold:
		return WorkloadHigh
	case u.PatientCount >= mediumThreshold:
		return WorkloadMedium
	default:
		return WorkloadLow
	}
}
