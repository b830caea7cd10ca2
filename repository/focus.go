package repository

import (
	"context"
	"time"

	"github.com/oureon/trackr/domain"
)

// EndParams carries the values applied by the end transition. Rating and
// note can only be set here, never on a running session.
type EndParams struct {
	EndedAt time.Time
	Rating  int
	Note    string
}

type FocusSessionRepository interface {
	// Start inserts the session only if the user has no unterminated
	// session. The check and the insert are one atomic statement; a lost
	// race returns domain.ErrActiveSessionExists.
	Start(ctx context.Context, session *domain.FocusSession) (*domain.FocusSession, error)
	GetByID(ctx context.Context, userID, id string) (*domain.FocusSession, error)
	// GetActive returns (nil, nil) when the user is idle.
	GetActive(ctx context.Context, userID string) (*domain.FocusSession, error)
	// End terminates the session via a conditional update. It returns
	// domain.ErrSessionNotFound when the id does not exist for the user and
	// domain.ErrSessionAlreadyEnded when endedAt was already set.
	End(ctx context.Context, userID, id string, params EndParams) (*domain.FocusSession, error)
	// ListStartedBetween returns sessions with startedAt in [from, to),
	// newest first.
	ListStartedBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.FocusSession, error)
}
