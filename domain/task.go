package domain

import "time"

// Task represents a user-owned activity item.
// CompletedAt is non-nil iff Completed is true; the pair is always flipped
// together by the toggle operation.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Project     Project    `json:"project"`
	Type        TaskType   `json:"type"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Completed
}

// DueBetween reports whether the task has a deadline inside [from, to).
func (t *Task) DueBetween(from, to time.Time) bool {
	if t == nil || t.Deadline == nil {
		return false
	}
	return !t.Deadline.Before(from) && t.Deadline.Before(to)
}
