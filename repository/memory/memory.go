// Package memory provides in-memory implementations of the record store
// interfaces. They mirror the Postgres query contract, including the atomic
// start guard, and back the usecase test suites.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oureon/trackr/domain"
	"github.com/oureon/trackr/repository"
)

// TaskStore is an in-memory TaskRepository.
type TaskStore struct {
	mu    sync.Mutex
	tasks map[string]domain.Task
}

func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string]domain.Task)}
}

func (s *TaskStore) GetByID(_ context.Context, userID, id string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok || task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	copied := task
	return &copied, nil
}

func (s *TaskStore) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tasks []domain.Task
	for _, task := range s.tasks {
		if task.UserID != filter.UserID {
			continue
		}
		if filter.CreatedOrDueFrom != nil {
			createdIn := inWindow(task.CreatedAt, *filter.CreatedOrDueFrom, *filter.CreatedOrDueTo)
			dueIn := task.DueBetween(*filter.CreatedOrDueFrom, *filter.CreatedOrDueTo)
			if !createdIn && !dueIn {
				continue
			}
		}
		if filter.DueFrom != nil && !task.DueBetween(*filter.DueFrom, *filter.DueTo) {
			continue
		}
		tasks = append(tasks, task)
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })

	if filter.Offset > 0 {
		if filter.Offset >= len(tasks) {
			return nil, nil
		}
		tasks = tasks[filter.Offset:]
	}
	if filter.Limit > 0 && len(tasks) > filter.Limit {
		tasks = tasks[:filter.Limit]
	}
	return tasks, nil
}

func (s *TaskStore) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	task.UpdatedAt = task.CreatedAt
	s.tasks[task.ID] = *task
	return task, nil
}

func (s *TaskStore) Update(_ context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return domain.ErrTaskNotFound
	}
	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = time.Now()
	s.tasks[task.ID] = *task
	return nil
}

func (s *TaskStore) ToggleCompletion(_ context.Context, userID, id string, now time.Time) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}

	task.Completed = !task.Completed
	if task.Completed {
		completedAt := now
		task.CompletedAt = &completedAt
	} else {
		task.CompletedAt = nil
	}
	task.UpdatedAt = now
	s.tasks[id] = task

	copied := task
	return &copied, nil
}

func (s *TaskStore) Delete(_ context.Context, userID, id string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	delete(s.tasks, id)
	copied := task
	return &copied, nil
}

func (s *TaskStore) CountCompletedBetween(_ context.Context, userID string, from, to time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, task := range s.tasks {
		if task.UserID == userID && task.Completed && task.CompletedAt != nil && inWindow(*task.CompletedAt, from, to) {
			n++
		}
	}
	return n, nil
}

func (s *TaskStore) CountCreatedBetween(_ context.Context, userID string, from, to time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, task := range s.tasks {
		if task.UserID == userID && inWindow(task.CreatedAt, from, to) {
			n++
		}
	}
	return n, nil
}

func (s *TaskStore) CountCreatedOrDueBetween(_ context.Context, userID string, from, to time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, task := range s.tasks {
		if task.UserID != userID {
			continue
		}
		if inWindow(task.CreatedAt, from, to) || task.DueBetween(from, to) {
			n++
		}
	}
	return n, nil
}

func (s *TaskStore) ListUpcoming(_ context.Context, userID string, from, to time.Time, limit int) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tasks []domain.Task
	for _, task := range s.tasks {
		if task.UserID == userID && !task.Completed && task.DueBetween(from, to) {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Deadline.Before(*tasks[j].Deadline) })
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks, nil
}

// FocusStore is an in-memory FocusSessionRepository.
type FocusStore struct {
	mu       sync.Mutex
	sessions map[string]domain.FocusSession
}

func NewFocusStore() *FocusStore {
	return &FocusStore{sessions: make(map[string]domain.FocusSession)}
}

func (s *FocusStore) Start(_ context.Context, session *domain.FocusSession) (*domain.FocusSession, error) {
	if session == nil {
		return nil, domain.ErrInvalidPayload
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Check and insert under one lock, matching the single-statement
	// conditional insert of the Postgres implementation.
	for _, existing := range s.sessions {
		if existing.UserID == session.UserID && existing.EndedAt == nil {
			return nil, domain.ErrActiveSessionExists
		}
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	s.sessions[session.ID] = *session
	return session, nil
}

func (s *FocusStore) GetByID(_ context.Context, userID, id string) (*domain.FocusSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok || session.UserID != userID {
		return nil, domain.ErrSessionNotFound
	}
	copied := session
	return &copied, nil
}

func (s *FocusStore) GetActive(_ context.Context, userID string) (*domain.FocusSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, session := range s.sessions {
		if session.UserID == userID && session.EndedAt == nil {
			copied := session
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *FocusStore) End(_ context.Context, userID, id string, params repository.EndParams) (*domain.FocusSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok || session.UserID != userID {
		return nil, domain.ErrSessionNotFound
	}
	if session.EndedAt != nil {
		return nil, domain.ErrSessionAlreadyEnded
	}

	endedAt := params.EndedAt
	session.EndedAt = &endedAt
	if params.Rating > 0 {
		session.Rating = params.Rating
	}
	if params.Note != "" {
		session.Note = params.Note
	}
	s.sessions[id] = session

	copied := session
	return &copied, nil
}

func (s *FocusStore) ListStartedBetween(_ context.Context, userID string, from, to time.Time) ([]domain.FocusSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sessions []domain.FocusSession
	for _, session := range s.sessions {
		if session.UserID == userID && inWindow(session.StartedAt, from, to) {
			sessions = append(sessions, session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartedAt.After(sessions[j].StartedAt) })
	return sessions, nil
}

// TimelineStore is an in-memory TimelineRepository.
type TimelineStore struct {
	mu     sync.Mutex
	events []domain.TimelineEvent
}

func NewTimelineStore() *TimelineStore {
	return &TimelineStore{}
}

func (s *TimelineStore) Append(_ context.Context, event domain.TimelineEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	s.events = append(s.events, event)
	return nil
}

func (s *TimelineStore) ListBetween(_ context.Context, userID string, from, to time.Time) ([]domain.TimelineEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []domain.TimelineEvent
	for _, event := range s.events {
		if event.UserID == userID && inWindow(event.CreatedAt, from, to) {
			events = append(events, event)
		}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].CreatedAt.Before(events[j].CreatedAt) })
	return events, nil
}

func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

var (
	_ repository.TaskRepository         = (*TaskStore)(nil)
	_ repository.FocusSessionRepository = (*FocusStore)(nil)
	_ repository.TimelineRepository     = (*TimelineStore)(nil)
)
