package leave

type CreateLeaveRequestRequest struct {
	PersonnelID string `json:"personnel_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	Reason      string `json:"reason"`
}

type RejectLeaveRequestRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type LeaveRequestResponse struct {
	ID              string  `json:"id"`
	PersonnelID     string  `json:"personnel_id"`
	LeaveTypeID     string  `json:"leave_type_id"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Status          string  `json:"status"`
	Reason          string  `json:"reason,omitempty"`
	DecidedBy       *string `json:"decided_by,omitempty"`
	DecidedAt       *string `json:"decided_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type LeaveHistoryResponse struct {
	ID              string  `json:"id"`
	LeaveTypeID     string  `json:"leave_type_id"`
	LeaveTypeName   string  `json:"leave_type_name"`
	MaxDays         int     `json:"max_days"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Status          string  `json:"status"`
	Reason          string  `json:"reason,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type EligibilityResponse struct {
	Eligible      bool   `json:"eligible"`
	LeaveTypeName string `json:"leave_type_name,omitempty"`
	MaxDays       int    `json:"max_days,omitempty"`
}
