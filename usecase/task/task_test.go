package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oureon/trackr/domain"
	"github.com/oureon/trackr/pkg/clock"
	"github.com/oureon/trackr/repository/memory"
)

type eventSink struct {
	events []domain.TimelineEvent
}

func (s *eventSink) Record(_ context.Context, event domain.TimelineEvent) error {
	s.events = append(s.events, event)
	return nil
}

func (s *eventSink) types() []domain.EventType {
	out := make([]domain.EventType, len(s.events))
	for i, e := range s.events {
		out[i] = e.Type
	}
	return out
}

func newTestUseCase(t *testing.T, now time.Time) (*UseCase, *eventSink) {
	t.Helper()
	sink := &eventSink{}
	uc := New(memory.NewTaskStore(), sink, clock.Fixed(now), time.UTC, nil)
	return uc, sink
}

func TestCreateDefaultsAndTrimming(t *testing.T) {
	uc, sink := newTestUseCase(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	created, err := uc.Create(context.Background(), "u1", CreateParams{Title: "  read chapter 4  "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Title != "read chapter 4" {
		t.Errorf("title = %q, want trimmed", created.Title)
	}
	if created.Project != domain.ProjectPersonal || created.Type != domain.TaskTypeStudy {
		t.Errorf("defaults = %q/%q, want Personal/study", created.Project, created.Type)
	}
	if created.Completed || created.CompletedAt != nil {
		t.Error("new task must start incomplete with nil completedAt")
	}
	if len(sink.events) != 1 || sink.events[0].Type != domain.EventTaskCreated {
		t.Fatalf("events = %v, want one TASK_CREATED", sink.types())
	}
	if sink.events[0].Metadata["title"] != "read chapter 4" {
		t.Errorf("event title = %q, want snapshot of the task", sink.events[0].Metadata["title"])
	}
}

func TestCreateValidation(t *testing.T) {
	uc, _ := newTestUseCase(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	tests := []struct {
		name   string
		params CreateParams
	}{
		{"empty title", CreateParams{Title: "   "}},
		{"unknown project", CreateParams{Title: "x", Project: "Skunkworks"}},
		{"unknown type", CreateParams{Title: "x", Type: "chores"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), "u1", tt.params)
			if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
				t.Errorf("err = %v, want INVALID", err)
			}
		})
	}
}

func TestToggleCompleteFlipsPairTogether(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	uc, sink := newTestUseCase(t, now)
	ctx := context.Background()

	created, err := uc.Create(ctx, "u1", CreateParams{Title: "ship it"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	done, err := uc.ToggleComplete(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if !done.Completed || done.CompletedAt == nil {
		t.Fatalf("after toggle: completed=%v completedAt=%v, want true with timestamp", done.Completed, done.CompletedAt)
	}
	if !done.CompletedAt.Equal(now) {
		t.Errorf("completedAt = %v, want clock now %v", done.CompletedAt, now)
	}

	reopened, err := uc.ToggleComplete(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("second ToggleComplete: %v", err)
	}
	if reopened.Completed || reopened.CompletedAt != nil {
		t.Fatalf("after reopen: completed=%v completedAt=%v, want false with nil", reopened.Completed, reopened.CompletedAt)
	}

	// Only the completing direction is a timeline transition.
	want := []domain.EventType{domain.EventTaskCreated, domain.EventTaskCompleted}
	got := sink.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	uc, _ := newTestUseCase(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	created, err := uc.Create(ctx, "u1", CreateParams{Title: "draft report", Description: "for monday"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newTitle := "final report"
	newProject := domain.ProjectGA
	updated, err := uc.Update(ctx, "u1", created.ID, UpdateParams{Title: &newTitle, Project: &newProject})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "final report" || updated.Project != domain.ProjectGA {
		t.Errorf("updated = %q/%q, want final report/GA", updated.Title, updated.Project)
	}
	if updated.Description != "for monday" {
		t.Errorf("description = %q, want untouched", updated.Description)
	}

	empty := "  "
	if _, err := uc.Update(ctx, "u1", created.ID, UpdateParams{Title: &empty}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Errorf("blank title err = %v, want INVALID", err)
	}

	bad := domain.Project("Skunkworks")
	if _, err := uc.Update(ctx, "u1", created.ID, UpdateParams{Project: &bad}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Errorf("bad project err = %v, want INVALID", err)
	}
}

func TestDeleteEmitsEventAndKeepsHistory(t *testing.T) {
	uc, sink := newTestUseCase(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	created, err := uc.Create(ctx, "u1", CreateParams{Title: "obsolete"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := uc.Delete(ctx, "u1", created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := uc.Get(ctx, "u1", created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("Get after delete err = %v, want ErrTaskNotFound", err)
	}
	if err := uc.Delete(ctx, "u1", created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("second Delete err = %v, want ErrTaskNotFound", err)
	}

	// TASK_CREATED stays in the log; deletion appends, never removes.
	got := sink.types()
	if len(got) != 2 || got[0] != domain.EventTaskCreated || got[1] != domain.EventTaskDeleted {
		t.Fatalf("events = %v, want [TASK_CREATED TASK_DELETED]", got)
	}
	if sink.events[1].Metadata["title"] != "obsolete" {
		t.Errorf("delete event title = %q, want snapshot", sink.events[1].Metadata["title"])
	}
}

func TestListScopes(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	store := memory.NewTaskStore()
	uc := New(store, nil, clock.Fixed(now), time.UTC, nil)
	ctx := context.Background()

	dueToday := now.Add(2 * time.Hour)
	dueIn5 := now.AddDate(0, 0, 5)
	dueIn10 := now.AddDate(0, 0, 10)

	seed := []domain.Task{
		{UserID: "u1", Title: "created today", CreatedAt: now.Add(-2 * time.Hour)},
		{UserID: "u1", Title: "old, due today", CreatedAt: now.AddDate(0, 0, -5), Deadline: &dueToday},
		{UserID: "u1", Title: "due in 5 days", CreatedAt: now.AddDate(0, 0, -5), Deadline: &dueIn5},
		{UserID: "u1", Title: "due in 10 days", CreatedAt: now.AddDate(0, 0, -5), Deadline: &dueIn10},
	}
	for i := range seed {
		if _, err := store.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	today, err := uc.List(ctx, "u1", "today", 0, 0)
	if err != nil {
		t.Fatalf("List today: %v", err)
	}
	if len(today) != 2 {
		t.Errorf("today scope = %d tasks, want 2 (created today or due today)", len(today))
	}

	week, err := uc.List(ctx, "u1", "week", 0, 0)
	if err != nil {
		t.Fatalf("List week: %v", err)
	}
	if len(week) != 2 {
		t.Errorf("week scope = %d tasks, want 2 (due within seven days)", len(week))
	}

	all, err := uc.List(ctx, "u1", "all", 0, 0)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("all scope = %d tasks, want 4", len(all))
	}
}
