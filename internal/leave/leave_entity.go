package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// LeaveRequest rows are written and read through raw SQL so that the
// eligibility reads and the insert share one transaction. Dates are civil
// dates (DATE columns), both ends inclusive.
type LeaveRequest struct {
	ID              uuid.UUID
	PersonnelID     uuid.UUID
	LeaveTypeID     uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	Status          string
	Reason          string
	DecidedBy       *uuid.UUID
	DecidedAt       *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EligibleLeaveType is the slice of a leave type the evaluator needs:
// only event-based rows qualify, and the entitlement drives the end date.
type EligibleLeaveType struct {
	ID             uuid.UUID
	Name           string
	MaxDays        int
	RequiredGender *string
}

// HistoryItem is a leave request joined with its type for listing.
type HistoryItem struct {
	LeaveRequest
	LeaveTypeName string
	MaxDays       int
}
