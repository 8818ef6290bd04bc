package model

import "time"

// Intern statuses. Status is informational; the canonical "is this intern
// done" check is elapsed days against base length plus extension days.
const (
	InternStatusActive    = "Active"
	InternStatusExtended  = "Extended"
	InternStatusCompleted = "Completed"
)

// Intern batches. The two cohorts carry different mandated weekly off-days.
const (
	BatchA = "A"
	BatchB = "B"
)

// Intern maps to interns.
type Intern struct {
	InternID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"intern_id"`
	Name          string    `gorm:"type:varchar(100);not null"                     json:"name"`
	Gender        string    `gorm:"type:varchar(10);not null"                      json:"gender"` // Male | Female
	Batch         string    `gorm:"type:varchar(1);not null"                       json:"batch"`  // A | B
	StartDate     time.Time `gorm:"type:date;not null"                             json:"start_date"`
	Phone         string    `gorm:"type:varchar(20);not null;default:''"           json:"phone"`
	Status        string    `gorm:"type:varchar(20);not null;default:'Active'"     json:"status"` // Active | Extended | Completed
	ExtensionDays int       `gorm:"not null;default:0"                             json:"extension_days"`
	BaseModel
}

// TableName sets the table name.
func (Intern) TableName() string { return "interns" }
