package domain

import "time"

// EventType identifies the state transition a timeline event records.
type EventType string

const (
	EventTaskCreated   EventType = "TASK_CREATED"
	EventTaskCompleted EventType = "TASK_COMPLETED"
	EventTaskDeleted   EventType = "TASK_DELETED"
	EventFocusStarted  EventType = "FOCUS_STARTED"
	EventFocusEnded    EventType = "FOCUS_ENDED"
)

// TimelineEvent is an append-only audit-log entry. Events survive deletion
// of the entity they describe; metadata carries the display snapshot taken
// at emission time.
type TimelineEvent struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Type      EventType         `json:"type"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// TimelineDay groups the events of one calendar day for chronological display.
// Date is formatted YYYY-MM-DD in the configured reference timezone.
type TimelineDay struct {
	Date   string          `json:"date"`
	Events []TimelineEvent `json:"events"`
}
