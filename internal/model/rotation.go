package model

import "time"

// Rotation maps to rotations: one dated assignment of one intern to one
// unit, end date inclusive. Rows are only ever appended or date-extended,
// never reordered in place.
type Rotation struct {
	RotationID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"rotation_id"`
	InternID           string    `gorm:"type:uuid;not null"                             json:"intern_id"`
	UnitID             string    `gorm:"type:uuid;not null"                             json:"unit_id"`
	StartDate          time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate            time.Time `gorm:"type:date;not null"                             json:"end_date"`
	IsManualAssignment bool      `gorm:"not null;default:false"                         json:"is_manual_assignment"`
	CreatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	Intern *Intern `gorm:"foreignKey:InternID;references:InternID" json:"intern,omitempty"`
	Unit   *Unit   `gorm:"foreignKey:UnitID;references:UnitID"     json:"unit,omitempty"`
}

// TableName sets the table name.
func (Rotation) TableName() string { return "rotations" }
