package domain

import (
	"math"
	"time"
)

// FocusSession represents one continuous block of tracked work.
// EndedAt is nil while the session is running; at most one session per user
// may be unterminated at any time (enforced at the storage boundary).
type FocusSession struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	Mode           SessionMode `json:"mode"`
	Project        Project     `json:"project"`
	StartedAt      time.Time   `json:"started_at"`
	EndedAt        *time.Time  `json:"ended_at,omitempty"`
	PlannedMinutes int         `json:"planned_minutes,omitempty"`
	Rating         int         `json:"rating,omitempty"`
	Note           string      `json:"note,omitempty"`
}

// IsActive reports whether the session is still running.
func (s *FocusSession) IsActive() bool {
	return s != nil && s.EndedAt == nil
}

// DurationMinutes returns the rounded whole-minute duration of an ended
// session, or 0 while the session is active. Derived, never persisted.
func (s *FocusSession) DurationMinutes() int {
	if s == nil || s.EndedAt == nil {
		return 0
	}
	return int(math.Round(s.EndedAt.Sub(s.StartedAt).Minutes()))
}

// IsRated reports whether a rating was recorded at end time.
func (s *FocusSession) IsRated() bool {
	return s != nil && s.Rating >= 1 && s.Rating <= 5
}
