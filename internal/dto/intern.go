package dto

// ── intern requests ──

// RegisterInternRequest creates an intern and seeds their first rotation.
type RegisterInternRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=100"`
	Gender    string `json:"gender"     binding:"required,oneof=Male Female"`
	Batch     string `json:"batch"      binding:"required,oneof=A B"`
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	Phone     string `json:"phone"      binding:"omitempty,max=20"`
}

// UpdateInternRequest updates intern demographics.
type UpdateInternRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=2,max=100"`
	Batch *string `json:"batch" binding:"omitempty,oneof=A B"`
	Phone *string `json:"phone" binding:"omitempty,max=20"`
}

// InternListRequest filters the intern list.
type InternListRequest struct {
	PaginationRequest
	Batch  string `form:"batch"  binding:"omitempty,oneof=A B"`
	Status string `form:"status" binding:"omitempty,oneof=Active Extended Completed"`
}

// ── intern responses ──

// InternResponse is the full intern payload.
type InternResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Gender        string `json:"gender"`
	Batch         string `json:"batch"`
	StartDate     string `json:"start_date"`
	Phone         string `json:"phone,omitempty"`
	Status        string `json:"status"`
	ExtensionDays int    `json:"extension_days"`
	CreatedAt     string `json:"created_at"`
}
