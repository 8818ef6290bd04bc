package dto

// ExtendInternshipRequest grants or adjusts extension days. The first
// extension sets the absolute total; later requests apply Days as a
// signed delta. The resulting total must stay within 0-365.
type ExtendInternshipRequest struct {
	Days       int     `json:"days"        binding:"required"`
	ReasonCode string  `json:"reason_code" binding:"required,oneof=illness leave performance disciplinary other"`
	Note       string  `json:"note"        binding:"omitempty,max=500"`
	UnitID     *string `json:"unit_id"     binding:"omitempty,uuid"`
}

// ExtensionReasonResponse is one audit row of the extension trail.
type ExtensionReasonResponse struct {
	ID         string `json:"id"`
	InternID   string `json:"intern_id"`
	Days       int    `json:"days"`
	ReasonCode string `json:"reason_code"`
	Note       string `json:"note,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// ExtendInternshipResponse reports the updated intern and whether a live
// rotation's end date moved. RotationAdjusted=false with a nil error is a
// meaningful state: the extension was recorded but was not tied to a live
// rotation.
type ExtendInternshipResponse struct {
	Intern           InternResponse `json:"intern"`
	RotationAdjusted bool           `json:"rotation_adjusted"`
	AdjustedRotation *RotationResponse `json:"adjusted_rotation,omitempty"`
}
