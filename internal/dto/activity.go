package dto

// ActivityLogListRequest filters the audit trail.
type ActivityLogListRequest struct {
	PaginationRequest
	ActivityType string `form:"activity_type" binding:"omitempty,max=50"`
	InternID     string `form:"intern_id"     binding:"omitempty,uuid"`
}

// ActivityLogResponse is one audit trail entry.
type ActivityLogResponse struct {
	ID           string  `json:"id"`
	ActivityType string  `json:"activity_type"`
	InternID     *string `json:"intern_id,omitempty"`
	UnitID       *string `json:"unit_id,omitempty"`
	Description  string  `json:"description"`
	CreatedAt    string  `json:"created_at"`
}
