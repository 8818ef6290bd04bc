package model

import "time"

// Extension reason codes.
const (
	ExtensionReasonIllness      = "illness"
	ExtensionReasonLeave        = "leave"
	ExtensionReasonPerformance  = "performance"
	ExtensionReasonDisciplinary = "disciplinary"
	ExtensionReasonOther        = "other"
)

// ExtensionReason maps to extension_reasons. Append-only audit record of
// every extension, including ones that adjusted no live rotation.
type ExtensionReason struct {
	ExtensionReasonID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"extension_reason_id"`
	InternID          string    `gorm:"type:uuid;not null"                             json:"intern_id"`
	Days              int       `gorm:"not null"                                       json:"days"`
	ReasonCode        string    `gorm:"type:varchar(50);not null"                      json:"reason_code"`
	Note              string    `gorm:"type:text;not null;default:''"                  json:"note,omitempty"`
	CreatedAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (ExtensionReason) TableName() string { return "extension_reasons" }
