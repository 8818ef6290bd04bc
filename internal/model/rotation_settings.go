package model

// RotationSettings maps to rotation_settings, a single strongly-typed row.
// Workload thresholds and coverage minimums live here so the classifier
// stays configurable without a deploy.
type RotationSettings struct {
	Singleton              bool `gorm:"primaryKey;default:true" json:"-"`
	MediumPatientThreshold int  `gorm:"not null;default:20"     json:"medium_patient_threshold"`
	HighPatientThreshold   int  `gorm:"not null;default:50"     json:"high_patient_threshold"`
	MinInternsHigh         int  `gorm:"not null;default:2"      json:"min_interns_high"`
	MinInternsMedium       int  `gorm:"not null;default:1"      json:"min_interns_medium"`
	MinInternsLow          int  `gorm:"not null;default:1"      json:"min_interns_low"`
	AllowManualOverlap     bool `gorm:"not null;default:false"  json:"allow_manual_overlap"`
	BaseModel
}

// TableName sets the table name.
func (RotationSettings) TableName() string { return "rotation_settings" }
