package events

import "time"

const LeaveRequestLifecycleTopic = "hr.leave.request.lifecycle.v1"

// LeaveRequestEvent is published for every lifecycle change of a leave
// request (created, approved, rejected). Downstream consumers (notifications,
// data warehouse) key on PersonnelID.
type LeaveRequestEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	LeaveRequestID string    `json:"leave_request_id"`
	PersonnelID    string    `json:"personnel_id"`
	LeaveTypeID    string    `json:"leave_type_id"`
	Status         string    `json:"status"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	OccurredAt     time.Time `json:"occurred_at"`
}

const (
	LeaveRequestCreated  = "leave_request_created"
	LeaveRequestApproved = "leave_request_approved"
	LeaveRequestRejected = "leave_request_rejected"
)
