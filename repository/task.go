package repository

import (
	"context"
	"time"

	"github.com/oureon/trackr/domain"
)

// TaskFilter bounds a task listing. When CreatedOrDueFrom/To are set, a task
// matches if it was created in the window OR its deadline falls in it (the
// "of today" union). DueFrom/To filter on deadline alone.
type TaskFilter struct {
	UserID           string
	CreatedOrDueFrom *time.Time
	CreatedOrDueTo   *time.Time
	DueFrom          *time.Time
	DueTo            *time.Time
	Limit            int
	Offset           int
}

type TaskRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	// ToggleCompletion flips the completed flag and sets or clears
	// completedAt in the same write.
	ToggleCompletion(ctx context.Context, userID, id string, now time.Time) (*domain.Task, error)
	// Delete removes the task and returns its last state so callers can
	// record what was deleted.
	Delete(ctx context.Context, userID, id string) (*domain.Task, error)

	CountCompletedBetween(ctx context.Context, userID string, from, to time.Time) (int, error)
	CountCreatedBetween(ctx context.Context, userID string, from, to time.Time) (int, error)
	CountCreatedOrDueBetween(ctx context.Context, userID string, from, to time.Time) (int, error)
	// ListUpcoming returns incomplete tasks with a deadline in [from, to),
	// ascending by deadline, at most limit rows.
	ListUpcoming(ctx context.Context, userID string, from, to time.Time, limit int) ([]domain.Task, error)
}
