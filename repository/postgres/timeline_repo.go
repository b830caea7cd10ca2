package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oureon/trackr/domain"
	"github.com/oureon/trackr/repository"
)

type timelineRepository struct {
	pool *pgxpool.Pool
}

// NewTimelineRepository returns a Postgres-backed TimelineRepository.
func NewTimelineRepository(pool *pgxpool.Pool) repository.TimelineRepository {
	return &timelineRepository{pool: pool}
}

func (r *timelineRepository) Append(ctx context.Context, event domain.TimelineEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO timeline_events (id, user_id, type, metadata, created_at)
	VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
	`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.UserID,
		event.Type,
		marshalMap(event.Metadata),
		nullTime(event.CreatedAt),
	)
	return err
}

func (r *timelineRepository) ListBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.TimelineEvent, error) {
	const query = `
	SELECT id, user_id, type, metadata, created_at
	FROM timeline_events
	WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
	ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.TimelineEvent
	for rows.Next() {
		var event domain.TimelineEvent
		var metadata []byte
		if err := rows.Scan(&event.ID, &event.UserID, &event.Type, &metadata, &event.CreatedAt); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			_ = json.Unmarshal(metadata, &event.Metadata)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
