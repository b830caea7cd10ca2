package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oureon/trackr/domain"
	"github.com/oureon/trackr/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, user_id, title, description, project, type, deadline, completed, completed_at, created_at, updated_at`

func (r *taskRepository) GetByID(ctx context.Context, userID, id string) (*domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE id = $1 AND user_id = $2
	`
	row := r.pool.QueryRow(ctx, query, id, userID)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE user_id = $1
	  AND ($2::timestamptz IS NULL OR created_at >= $2 AND created_at < $3
	       OR deadline IS NOT NULL AND deadline >= $2 AND deadline < $3)
	  AND ($4::timestamptz IS NULL OR deadline IS NOT NULL AND deadline >= $4 AND deadline < $5)
	ORDER BY created_at DESC
	LIMIT $6 OFFSET $7
	`
	rows, err := r.pool.Query(ctx, query,
		filter.UserID,
		filter.CreatedOrDueFrom, filter.CreatedOrDueTo,
		filter.DueFrom, filter.DueTo,
		clampLimit(filter.Limit), filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, user_id, title, description, project, type, deadline)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING completed, created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Project,
		task.Type,
		task.Deadline,
	).Scan(&task.Completed, &task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $3,
		description = $4,
		project = $5,
		type = $6,
		deadline = $7,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Project,
		task.Type,
		task.Deadline,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

func (r *taskRepository) ToggleCompletion(ctx context.Context, userID, id string, now time.Time) (*domain.Task, error) {
	// Flip flag and timestamp in one statement so completed and
	// completed_at can never disagree.
	const query = `
	UPDATE tasks
	SET completed = NOT completed,
		completed_at = CASE WHEN NOT completed THEN $3::timestamptz ELSE NULL END,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING ` + taskColumns + `
	`
	row := r.pool.QueryRow(ctx, query, id, userID, now)
	return scanTask(row)
}

func (r *taskRepository) Delete(ctx context.Context, userID, id string) (*domain.Task, error) {
	const query = `
	DELETE FROM tasks
	WHERE id = $1 AND user_id = $2
	RETURNING ` + taskColumns + `
	`
	row := r.pool.QueryRow(ctx, query, id, userID)
	return scanTask(row)
}

func (r *taskRepository) CountCompletedBetween(ctx context.Context, userID string, from, to time.Time) (int, error) {
	const query = `
	SELECT COUNT(*) FROM tasks
	WHERE user_id = $1 AND completed AND completed_at >= $2 AND completed_at < $3
	`
	return r.count(ctx, query, userID, from, to)
}

func (r *taskRepository) CountCreatedBetween(ctx context.Context, userID string, from, to time.Time) (int, error) {
	const query = `
	SELECT COUNT(*) FROM tasks
	WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
	`
	return r.count(ctx, query, userID, from, to)
}

func (r *taskRepository) CountCreatedOrDueBetween(ctx context.Context, userID string, from, to time.Time) (int, error) {
	const query = `
	SELECT COUNT(*) FROM tasks
	WHERE user_id = $1
	  AND (created_at >= $2 AND created_at < $3
	       OR deadline IS NOT NULL AND deadline >= $2 AND deadline < $3)
	`
	return r.count(ctx, query, userID, from, to)
}

func (r *taskRepository) ListUpcoming(ctx context.Context, userID string, from, to time.Time, limit int) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE user_id = $1 AND NOT completed
	  AND deadline IS NOT NULL AND deadline >= $2 AND deadline < $3
	ORDER BY deadline ASC
	LIMIT $4
	`
	rows, err := r.pool.Query(ctx, query, userID, from, to, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *taskRepository) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func collectTasks(rows pgx.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		deadline    *time.Time
		completedAt *time.Time
	)

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Project,
		&task.Type,
		&deadline,
		&task.Completed,
		&completedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Deadline = deadline
	task.CompletedAt = completedAt
	return &task, nil
}
