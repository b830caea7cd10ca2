package repository

import (
	"context"
	"time"

	"github.com/oureon/trackr/domain"
)

type TimelineRepository interface {
	// Append records an immutable event. The log is append-only: nothing
	// ever updates or removes rows, including deletion of the entity the
	// event describes.
	Append(ctx context.Context, event domain.TimelineEvent) error
	// ListBetween returns events with createdAt in [from, to), ascending.
	ListBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.TimelineEvent, error)
}
