package events

import "time"

const PersonnelCreatedTopic = "hr.personnel.lifecycle.v1"

type PersonnelCreatedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	PersonnelID string    `json:"personnel_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}
