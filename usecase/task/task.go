package task

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/oureon/trackr/domain"
	"github.com/oureon/trackr/pkg/clock"
	"github.com/oureon/trackr/repository"
	"github.com/oureon/trackr/usecase"
)

type UseCase struct {
	tasks  repository.TaskRepository
	events usecase.EventRecorder
	clock  clock.Clock
	loc    *time.Location
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, events usecase.EventRecorder, clk clock.Clock, loc *time.Location, logger *zap.Logger) *UseCase {
	if clk == nil {
		clk = clock.System()
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		events: events,
		clock:  clk,
		loc:    loc,
		logger: logger,
	}
}

// CreateParams carries the attributes of a new task. Project and Type fall
// back to Personal/study when empty.
type CreateParams struct {
	Title       string
	Description string
	Project     domain.Project
	Type        domain.TaskType
	Deadline    *time.Time
}

// UpdateParams updates only the fields whose pointers are non-nil.
// Completion is never updated here; ToggleComplete owns that transition.
type UpdateParams struct {
	Title       *string
	Description *string
	Project     *domain.Project
	Type        *domain.TaskType
	Deadline    *time.Time
}

func (uc *UseCase) Create(ctx context.Context, userID string, params CreateParams) (*domain.Task, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "task title is required")
	}
	if params.Project == "" {
		params.Project = domain.ProjectPersonal
	}
	if params.Type == "" {
		params.Type = domain.TaskTypeStudy
	}
	if !params.Project.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "invalid project")
	}
	if !params.Type.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "invalid task type")
	}

	task := &domain.Task{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(params.Description),
		Project:     params.Project,
		Type:        params.Type,
		Deadline:    params.Deadline,
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, userID, domain.EventTaskCreated, map[string]string{
		"title":   created.Title,
		"project": string(created.Project),
		"type":    string(created.Type),
	})

	return created, nil
}

// List applies the requested scope: "today" matches tasks created today or
// due today, "week" matches tasks due within the next seven days, anything
// else returns everything the user owns.
func (uc *UseCase) List(ctx context.Context, userID, scope string, limit, offset int) ([]domain.Task, error) {
	now := uc.clock.Now()
	filter := repository.TaskFilter{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	}

	switch scope {
	case "today":
		from, to := usecase.DayWindow(now, uc.loc)
		filter.CreatedOrDueFrom = &from
		filter.CreatedOrDueTo = &to
	case "week":
		to := now.AddDate(0, 0, 7)
		filter.DueFrom = &now
		filter.DueTo = &to
	}

	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, userID, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, userID, id)
}

func (uc *UseCase) Update(ctx context.Context, userID, id string, params UpdateParams) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, domain.NewError(domain.ErrCodeInvalid, "task title is required")
		}
		task.Title = title
	}
	if params.Description != nil {
		task.Description = strings.TrimSpace(*params.Description)
	}
	if params.Project != nil {
		if !params.Project.Valid() {
			return nil, domain.NewError(domain.ErrCodeInvalid, "invalid project")
		}
		task.Project = *params.Project
	}
	if params.Type != nil {
		if !params.Type.Valid() {
			return nil, domain.NewError(domain.ErrCodeInvalid, "invalid task type")
		}
		task.Type = *params.Type
	}
	if params.Deadline != nil {
		task.Deadline = params.Deadline
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ToggleComplete flips the completed flag. Re-opening a task clears
// completedAt; only the completed direction emits a timeline event, since
// the audit log has no "uncompleted" transition.
func (uc *UseCase) ToggleComplete(ctx context.Context, userID, id string) (*domain.Task, error) {
	task, err := uc.tasks.ToggleCompletion(ctx, userID, id, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	if task.Completed {
		uc.record(ctx, userID, domain.EventTaskCompleted, map[string]string{
			"title":   task.Title,
			"project": string(task.Project),
		})
	}
	return task, nil
}

func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	task, err := uc.tasks.Delete(ctx, userID, id)
	if err != nil {
		return err
	}

	// The earlier TASK_CREATED event stays; the log records history, not
	// current existence.
	uc.record(ctx, userID, domain.EventTaskDeleted, map[string]string{
		"title":   task.Title,
		"project": string(task.Project),
	})
	return nil
}

func (uc *UseCase) record(ctx context.Context, userID string, eventType domain.EventType, metadata map[string]string) {
	if uc.events == nil {
		return
	}
	event := domain.TimelineEvent{
		UserID:    userID,
		Type:      eventType,
		Metadata:  metadata,
		CreatedAt: uc.clock.Now(),
	}
	if err := uc.events.Record(ctx, event); err != nil {
		uc.logger.Error("failed to record timeline event", zap.String("type", string(eventType)), zap.Error(err))
	}
}
