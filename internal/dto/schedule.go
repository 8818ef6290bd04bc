package dto

// ScheduleEntryResponse is one line of an intern's schedule. Synthetic
// upcoming entries have no rotation id or dates yet.
type ScheduleEntryResponse struct {
	RotationID         string `json:"rotation_id,omitempty"`
	UnitID             string `json:"unit_id"`
	UnitName           string `json:"unit_name"`
	StartDate          string `json:"start_date,omitempty"`
	EndDate            string `json:"end_date,omitempty"`
	IsManualAssignment bool   `json:"is_manual_assignment,omitempty"`
	UnitDeleted        bool   `json:"unit_deleted,omitempty"`
}

// AdvanceResponse reports what the lazy auto-advance did during a
// schedule read.
type AdvanceResponse struct {
	Advanced bool   `json:"advanced"`
	Reason   string `json:"reason,omitempty"` // set when no advance was performed
}

// ScheduleResponse is the full schedule view for one intern.
type ScheduleResponse struct {
	Intern    InternResponse          `json:"intern"`
	Completed []ScheduleEntryResponse `json:"completed"`
	Current   *ScheduleEntryResponse  `json:"current"`
	Upcoming  []ScheduleEntryResponse `json:"upcoming"`
	Advance   AdvanceResponse         `json:"advance"`
}
