package dto

// ── rotation requests ──

// CreateRotationRequest creates a manual assignment. EndDate is optional;
// when omitted it derives from the unit's duration.
type CreateRotationRequest struct {
	InternID  string `json:"intern_id"  binding:"required,uuid"`
	UnitID    string `json:"unit_id"    binding:"required,uuid"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date"   binding:"omitempty"`
}

// UpdateRotationRequest reassigns a rotation's unit and/or dates. When the
// unit changes and no end date is given, the end date derives from the new
// unit's duration.
type UpdateRotationRequest struct {
	UnitID    *string `json:"unit_id"    binding:"omitempty,uuid"`
	StartDate *string `json:"start_date" binding:"omitempty"`
	EndDate   *string `json:"end_date"   binding:"omitempty"`
}

// ConflictQueryRequest probes for overlapping rotations without writing.
type ConflictQueryRequest struct {
	InternID          string `form:"intern_id"           binding:"required,uuid"`
	StartDate         string `form:"start_date"          binding:"required"`
	EndDate           string `form:"end_date"            binding:"required"`
	ExcludeRotationID string `form:"exclude_rotation_id" binding:"omitempty,uuid"`
}

// ── rotation responses ──

// RotationResponse is the full rotation payload.
type RotationResponse struct {
	ID                 string       `json:"id"`
	InternID           string       `json:"intern_id"`
	Unit               *UnitBrief   `json:"unit,omitempty"`
	Intern             *InternBrief `json:"intern,omitempty"`
	StartDate          string       `json:"start_date"`
	EndDate            string       `json:"end_date"`
	IsManualAssignment bool         `json:"is_manual_assignment"`
	CreatedAt          string       `json:"created_at"`
}

// ConflictResponse lists the rotations a candidate range collides with.
type ConflictResponse struct {
	HasConflicts bool               `json:"has_conflicts"`
	Conflicts    []RotationResponse `json:"conflicts"`
}
