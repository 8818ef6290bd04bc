package dto

// ── unit requests ──

// CreateUnitRequest creates a catalog unit; it is appended at the end of
// the rotation order.
type CreateUnitRequest struct {
	Name         string `json:"name"          binding:"required,min=2,max=100"`
	DurationDays int    `json:"duration_days" binding:"required,min=1,max=365"`
	PatientCount int    `json:"patient_count" binding:"omitempty,min=0"`
}

// UpdateUnitRequest updates a unit.
type UpdateUnitRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=2,max=100"`
	DurationDays *int    `json:"duration_days" binding:"omitempty,min=1,max=365"`
	PatientCount *int    `json:"patient_count" binding:"omitempty,min=0"`
}

// ReorderUnitsRequest replaces the whole catalog order. Every unit id
// must appear exactly once.
type ReorderUnitsRequest struct {
	UnitIDs []string `json:"unit_ids" binding:"required,min=1,dive,required"`
}

// ── unit responses ──

// CoverageResponse is the staffing rating of one unit.
type CoverageResponse struct {
	CurrentInterns int    `json:"current_interns"`
	Status         string `json:"status"` // good | warning | critical
}

// UnitResponse is the full unit payload.
type UnitResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	DurationDays int               `json:"duration_days"`
	PatientCount int               `json:"patient_count"`
	Position     int               `json:"position"`
	Workload     string            `json:"workload"` // Low | Medium | High
	Coverage     *CoverageResponse `json:"coverage,omitempty"`
	CreatedAt    string            `json:"created_at"`
}
