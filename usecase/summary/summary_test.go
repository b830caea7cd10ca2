package summary

import (
	"context"
	"testing"
	"time"

	"github.com/oureon/trackr/domain"
	"github.com/oureon/trackr/pkg/clock"
	"github.com/oureon/trackr/repository/memory"
)

func ended(project domain.Project, startedAt time.Time, minutes, rating int) domain.FocusSession {
	endedAt := startedAt.Add(time.Duration(minutes) * time.Minute)
	return domain.FocusSession{
		UserID:    "u1",
		Project:   project,
		StartedAt: startedAt,
		EndedAt:   &endedAt,
		Rating:    rating,
	}
}

func active(project domain.Project, startedAt time.Time) domain.FocusSession {
	return domain.FocusSession{UserID: "u1", Project: project, StartedAt: startedAt}
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name               string
		completed, created int
		want               int
	}{
		{"nothing created", 0, 0, 0},
		{"nothing created but completed carryover", 2, 0, 0},
		{"half", 1, 2, 50},
		{"rounds up", 2, 3, 67},
		{"all done", 4, 4, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionRate(tt.completed, tt.created); got != tt.want {
				t.Errorf("CompletionRate(%d, %d) = %d, want %d", tt.completed, tt.created, got, tt.want)
			}
		})
	}
}

func TestSumEndedMinutes(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	sessions := []domain.FocusSession{
		ended(domain.ProjectGA, base, 25, 0),
		ended(domain.ProjectGA, base.Add(time.Hour), 50, 3),
		active(domain.ProjectGA, base.Add(2*time.Hour)),
	}
	if got := SumEndedMinutes(sessions); got != 75 {
		t.Errorf("SumEndedMinutes = %d, want 75 (active contributes zero)", got)
	}
	if got := SumEndedMinutes(nil); got != 0 {
		t.Errorf("SumEndedMinutes(nil) = %d, want 0", got)
	}
}

func TestMostActiveProject(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("empty", func(t *testing.T) {
		if got := MostActiveProject(nil); got != nil {
			t.Errorf("MostActiveProject(nil) = %+v, want nil", got)
		}
	})

	t.Run("clear winner", func(t *testing.T) {
		sessions := []domain.FocusSession{
			ended(domain.ProjectPoly, base, 25, 0),
			ended(domain.ProjectPoly, base.Add(time.Hour), 25, 0),
			ended(domain.ProjectGA, base.Add(2*time.Hour), 25, 0),
		}
		got := MostActiveProject(sessions)
		if got == nil || got.Name != domain.ProjectPoly || got.Sessions != 2 {
			t.Errorf("MostActiveProject = %+v, want Poly with 2", got)
		}
	})

	t.Run("tie breaks lexicographically", func(t *testing.T) {
		sessions := []domain.FocusSession{
			ended(domain.ProjectPoly, base, 25, 0),
			ended(domain.ProjectGA, base.Add(time.Hour), 25, 0),
		}
		got := MostActiveProject(sessions)
		if got == nil || got.Name != domain.ProjectGA {
			t.Errorf("MostActiveProject = %+v, want GA on tie", got)
		}
	})

	t.Run("active sessions count too", func(t *testing.T) {
		sessions := []domain.FocusSession{
			active(domain.ProjectOureon, base),
		}
		got := MostActiveProject(sessions)
		if got == nil || got.Name != domain.ProjectOureon || got.Sessions != 1 {
			t.Errorf("MostActiveProject = %+v, want Oureon with 1", got)
		}
	})
}

func TestAverageRating(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("none rated", func(t *testing.T) {
		sessions := []domain.FocusSession{
			ended(domain.ProjectGA, base, 25, 0),
			active(domain.ProjectGA, base.Add(time.Hour)),
		}
		if got := AverageRating(sessions); got != nil {
			t.Errorf("AverageRating = %v, want nil", *got)
		}
	})

	t.Run("rounds to one decimal", func(t *testing.T) {
		sessions := []domain.FocusSession{
			ended(domain.ProjectGA, base, 25, 3),
			ended(domain.ProjectGA, base.Add(time.Hour), 25, 4),
			ended(domain.ProjectGA, base.Add(2*time.Hour), 25, 4),
		}
		got := AverageRating(sessions)
		if got == nil || *got != 3.7 {
			t.Errorf("AverageRating = %v, want 3.7", got)
		}
	})
}

func TestDaily(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	ctx := context.Background()

	tasks := memory.NewTaskStore()
	sessions := memory.NewFocusStore()
	uc := New(tasks, sessions, clock.Fixed(now), time.UTC, Config{}, nil)

	dueToday := now.Add(2 * time.Hour)
	dueTomorrow := now.Add(26 * time.Hour)
	doneAt := now.Add(-time.Hour)

	seed := []domain.Task{
		{UserID: "u1", Title: "created today", CreatedAt: now.Add(-3 * time.Hour)},
		{UserID: "u1", Title: "done today", CreatedAt: now.Add(-5 * time.Hour), Completed: true, CompletedAt: &doneAt},
		{UserID: "u1", Title: "old but due today", CreatedAt: now.AddDate(0, 0, -4), Deadline: &dueToday},
		{UserID: "u1", Title: "due tomorrow", CreatedAt: now.AddDate(0, 0, -4), Deadline: &dueTomorrow},
		{UserID: "u2", Title: "someone else", CreatedAt: now},
	}
	for i := range seed {
		if _, err := tasks.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	for _, s := range []domain.FocusSession{
		ended(domain.ProjectGA, now.Add(-4*time.Hour), 25, 4),
		ended(domain.ProjectGA, now.AddDate(0, 0, -1), 60, 5), // yesterday, outside the day window
	} {
		copied := s
		if _, err := sessions.Start(ctx, &copied); err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}

	got, err := uc.Daily(ctx, "u1")
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}

	if got.TasksCompletedToday != 1 {
		t.Errorf("tasksCompletedToday = %d, want 1", got.TasksCompletedToday)
	}
	// Created today (2) plus due today (1); the union, not the sum of overlaps.
	if got.TotalTasksToday != 3 {
		t.Errorf("totalTasksToday = %d, want 3", got.TotalTasksToday)
	}
	if got.SessionsToday != 1 {
		t.Errorf("sessionsToday = %d, want 1", got.SessionsToday)
	}
	if got.TotalMinutesToday != 25 {
		t.Errorf("totalMinutesToday = %d, want 25", got.TotalMinutesToday)
	}
	// Both deadlines fall inside the three-day upcoming horizon.
	if len(got.UpcomingDeadlines) != 2 {
		t.Fatalf("upcomingDeadlines = %d, want 2", len(got.UpcomingDeadlines))
	}
	if got.UpcomingDeadlines[0].Title != "old but due today" {
		t.Errorf("first upcoming = %q, want soonest deadline first", got.UpcomingDeadlines[0].Title)
	}
}

func TestDailyEmptyState(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	uc := New(memory.NewTaskStore(), memory.NewFocusStore(), clock.Fixed(now), time.UTC, Config{}, nil)

	got, err := uc.Daily(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if got.TasksCompletedToday != 0 || got.TotalTasksToday != 0 || got.SessionsToday != 0 || got.TotalMinutesToday != 0 {
		t.Errorf("empty state = %+v, want all zeros", got)
	}
	if got.UpcomingDeadlines == nil || len(got.UpcomingDeadlines) != 0 {
		t.Errorf("upcomingDeadlines = %v, want empty non-nil slice", got.UpcomingDeadlines)
	}
}

func TestWeekly(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	ctx := context.Background()

	tasks := memory.NewTaskStore()
	sessions := memory.NewFocusStore()
	uc := New(tasks, sessions, clock.Fixed(now), time.UTC, Config{}, nil)

	doneAt := now.AddDate(0, 0, -2)
	seed := []domain.Task{
		{UserID: "u1", Title: "a", CreatedAt: now.AddDate(0, 0, -3), Completed: true, CompletedAt: &doneAt},
		{UserID: "u1", Title: "b", CreatedAt: now.AddDate(0, 0, -1)},
		{UserID: "u1", Title: "too old", CreatedAt: now.AddDate(0, 0, -10)},
	}
	for i := range seed {
		if _, err := tasks.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	for _, s := range []domain.FocusSession{
		ended(domain.ProjectPoly, now.AddDate(0, 0, -2), 30, 4),
		ended(domain.ProjectPoly, now.AddDate(0, 0, -1), 60, 5),
		ended(domain.ProjectGA, now.AddDate(0, 0, -20), 90, 1), // outside the week
	} {
		copied := s
		if _, err := sessions.Start(ctx, &copied); err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}

	got, err := uc.Weekly(ctx, "u1")
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}

	if got.TotalMinutesLastWeek != 90 {
		t.Errorf("totalMinutesLastWeek = %d, want 90", got.TotalMinutesLastWeek)
	}
	if got.TotalSessionsLastWeek != 2 {
		t.Errorf("totalSessionsLastWeek = %d, want 2", got.TotalSessionsLastWeek)
	}
	if got.TasksCreatedLastWeek != 2 || got.TasksCompletedLastWeek != 1 {
		t.Errorf("created/completed = %d/%d, want 2/1", got.TasksCreatedLastWeek, got.TasksCompletedLastWeek)
	}
	if got.CompletionRate != 50 {
		t.Errorf("completionRate = %d, want 50", got.CompletionRate)
	}
	if got.MostActiveProject == nil || got.MostActiveProject.Name != domain.ProjectPoly {
		t.Errorf("mostActiveProject = %+v, want Poly", got.MostActiveProject)
	}
	if got.AverageRating == nil || *got.AverageRating != 4.5 {
		t.Errorf("averageRating = %v, want 4.5", got.AverageRating)
	}
}
