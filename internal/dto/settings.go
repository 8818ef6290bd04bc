package dto

// UpdateRotationSettingsRequest adjusts the engine's configurable data.
type UpdateRotationSettingsRequest struct {
	MediumPatientThreshold *int  `json:"medium_patient_threshold" binding:"omitempty,min=1"`
	HighPatientThreshold   *int  `json:"high_patient_threshold"   binding:"omitempty,min=1"`
	MinInternsHigh         *int  `json:"min_interns_high"         binding:"omitempty,min=0"`
	MinInternsMedium       *int  `json:"min_interns_medium"       binding:"omitempty,min=0"`
	MinInternsLow          *int  `json:"min_interns_low"          binding:"omitempty,min=0"`
	AllowManualOverlap     *bool `json:"allow_manual_overlap"`
}

// RotationSettingsResponse is the settings payload.
type RotationSettingsResponse struct {
	MediumPatientThreshold int    `json:"medium_patient_threshold"`
	HighPatientThreshold   int    `json:"high_patient_threshold"`
	MinInternsHigh         int    `json:"min_interns_high"`
	MinInternsMedium       int    `json:"min_interns_medium"`
	MinInternsLow          int    `json:"min_interns_low"`
	AllowManualOverlap     bool   `json:"allow_manual_overlap"`
	UpdatedAt              string `json:"updated_at"`
}
