package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oureon/trackr/domain"
	"github.com/oureon/trackr/repository"
)

type focusSessionRepository struct {
	pool *pgxpool.Pool
}

// NewFocusSessionRepository returns a Postgres-backed FocusSessionRepository.
func NewFocusSessionRepository(pool *pgxpool.Pool) repository.FocusSessionRepository {
	return &focusSessionRepository{pool: pool}
}

const focusColumns = `id, user_id, mode, project, started_at, ended_at, planned_minutes, rating, note`

func (r *focusSessionRepository) Start(ctx context.Context, session *domain.FocusSession) (*domain.FocusSession, error) {
	if session == nil {
		return nil, domain.ErrInvalidPayload
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	// The insert and the no-active-session check are one statement.
	// A partial unique index on (user_id) WHERE ended_at IS NULL backs
	// this up against any race the visibility rules let through.
	const query = `
	INSERT INTO focus_sessions (id, user_id, mode, project, started_at, planned_minutes)
	SELECT $1, $2, $3, $4, $5, $6
	WHERE NOT EXISTS (
		SELECT 1 FROM focus_sessions WHERE user_id = $2 AND ended_at IS NULL
	)
	RETURNING started_at
	`

	err := r.pool.QueryRow(ctx, query,
		session.ID,
		session.UserID,
		session.Mode,
		session.Project,
		session.StartedAt,
		nullPositive(session.PlannedMinutes),
	).Scan(&session.StartedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrActiveSessionExists
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrActiveSessionExists
		}
		return nil, err
	}

	return session, nil
}

func (r *focusSessionRepository) GetByID(ctx context.Context, userID, id string) (*domain.FocusSession, error) {
	const query = `
	SELECT ` + focusColumns + `
	FROM focus_sessions
	WHERE id = $1 AND user_id = $2
	`
	row := r.pool.QueryRow(ctx, query, id, userID)
	return scanFocusSession(row)
}

func (r *focusSessionRepository) GetActive(ctx context.Context, userID string) (*domain.FocusSession, error) {
	const query = `
	SELECT ` + focusColumns + `
	FROM focus_sessions
	WHERE user_id = $1 AND ended_at IS NULL
	`
	row := r.pool.QueryRow(ctx, query, userID)
	session, err := scanFocusSession(row)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

func (r *focusSessionRepository) End(ctx context.Context, userID, id string, params repository.EndParams) (*domain.FocusSession, error) {
	const query = `
	UPDATE focus_sessions
	SET ended_at = $3,
		rating = COALESCE($4, rating),
		note = COALESCE($5, note)
	WHERE id = $1 AND user_id = $2 AND ended_at IS NULL
	RETURNING ` + focusColumns + `
	`

	var note interface{}
	if params.Note != "" {
		note = params.Note
	}

	row := r.pool.QueryRow(ctx, query, id, userID, params.EndedAt, nullPositive(params.Rating), note)
	session, err := scanFocusSession(row)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, err
	}

	// No row matched: either the session never existed for this user or it
	// already ended. Look it up to report which.
	existing, lookupErr := r.GetByID(ctx, userID, id)
	if lookupErr != nil {
		return nil, lookupErr
	}
	if existing.EndedAt != nil {
		return nil, domain.ErrSessionAlreadyEnded
	}
	return nil, domain.ErrSessionNotFound
}

func (r *focusSessionRepository) ListStartedBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.FocusSession, error) {
	const query = `
	SELECT ` + focusColumns + `
	FROM focus_sessions
	WHERE user_id = $1 AND started_at >= $2 AND started_at < $3
	ORDER BY started_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.FocusSession
	for rows.Next() {
		session, err := scanFocusSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

func scanFocusSession(row interface {
	Scan(dest ...interface{}) error
}) (*domain.FocusSession, error) {
	var session domain.FocusSession
	var (
		endedAt *time.Time
		planned *int
		rating  *int
		note    *string
	)

	if err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.Mode,
		&session.Project,
		&session.StartedAt,
		&endedAt,
		&planned,
		&rating,
		&note,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	session.EndedAt = endedAt
	if planned != nil {
		session.PlannedMinutes = *planned
	}
	if rating != nil {
		session.Rating = *rating
	}
	if note != nil {
		session.Note = *note
	}
	return &session, nil
}

func nullPositive(v int) interface{} {
	if v <= 0 {
		return nil
	}
	return v
}
