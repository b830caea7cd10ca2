package insights

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/oureon/trackr/domain"
	"github.com/oureon/trackr/pkg/clock"
	"github.com/oureon/trackr/repository/memory"
)

func ended(startedAt time.Time, minutes int) domain.FocusSession {
	endedAt := startedAt.Add(time.Duration(minutes) * time.Minute)
	return domain.FocusSession{
		UserID:    "u1",
		Project:   domain.ProjectGA,
		StartedAt: startedAt,
		EndedAt:   &endedAt,
	}
}

func TestAvgSessionDuration(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		sessions []domain.FocusSession
		want     int
	}{
		{"empty", nil, 0},
		{"only active", []domain.FocusSession{{StartedAt: base}}, 0},
		{"rounds mean", []domain.FocusSession{
			ended(base, 25),
			ended(base.Add(time.Hour), 30),
		}, 28},
		{"ignores active", []domain.FocusSession{
			ended(base, 40),
			{StartedAt: base.Add(2 * time.Hour)},
		}, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AvgSessionDuration(tt.sessions); got != tt.want {
				t.Errorf("AvgSessionDuration = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysWithFocus(t *testing.T) {
	day := func(offset int) time.Time {
		return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}

	sessions := []domain.FocusSession{
		ended(day(0), 25),
		ended(day(0).Add(3*time.Hour), 25), // same day, counted once
		ended(day(-2), 25),
		{UserID: "u1", StartedAt: day(-4)}, // active, does not count
	}
	if got := DaysWithFocus(sessions, time.UTC); got != 2 {
		t.Errorf("DaysWithFocus = %d, want 2", got)
	}
	if got := DaysWithFocus(nil, time.UTC); got != 0 {
		t.Errorf("DaysWithFocus(nil) = %d, want 0", got)
	}
}

func TestStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time {
		return now.AddDate(0, 0, offset).Add(-5 * time.Hour)
	}

	tests := []struct {
		name     string
		sessions []domain.FocusSession
		want     int
	}{
		{"no sessions", nil, 0},
		{"today only", []domain.FocusSession{ended(day(0), 25)}, 1},
		{"three consecutive days ending today", []domain.FocusSession{
			ended(day(0), 25), ended(day(-1), 25), ended(day(-2), 25),
		}, 3},
		{"grace: nothing today, run ends yesterday", []domain.FocusSession{
			ended(day(-1), 25), ended(day(-2), 25),
		}, 2},
		{"two skipped days reset", []domain.FocusSession{
			ended(day(-2), 25), ended(day(-3), 25),
		}, 0},
		{"gap inside run stops the walk", []domain.FocusSession{
			ended(day(0), 25), ended(day(-1), 25), ended(day(-3), 25),
		}, 2},
		{"active session does not extend", []domain.FocusSession{
			{UserID: "u1", StartedAt: day(0)}, ended(day(-1), 25),
		}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.sessions, now, time.UTC); got != tt.want {
				t.Errorf("Streak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakUsesReferenceTimezone(t *testing.T) {
	// 01:00 UTC on Mar 10 is still Mar 9 in UTC-5. A session from "yesterday
	// evening" local time must keep the streak alive.
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)

	session := ended(time.Date(2026, 3, 8, 22, 0, 0, 0, time.UTC), 25) // Mar 8 in both zones
	if got := Streak([]domain.FocusSession{session}, now, loc); got != 1 {
		t.Errorf("Streak = %d, want 1 (grace day in local time)", got)
	}
	if got := Streak([]domain.FocusSession{session}, now, time.UTC); got != 0 {
		t.Errorf("Streak in UTC = %d, want 0 (two days back)", got)
	}
}

func TestSuggest(t *testing.T) {
	t.Run("no sessions yields starter nudge", func(t *testing.T) {
		got := Suggest(Metrics{}, 3)
		if len(got) != 1 || !strings.Contains(got[0], "No focus sessions") {
			t.Errorf("Suggest = %v, want the no-sessions nudge only", got)
		}
	})

	t.Run("caps at max in priority order", func(t *testing.T) {
		m := Metrics{
			CompletionRate:     20,
			TasksCreated:       5,
			SessionsCount:      2,
			AvgSessionDuration: 10,
			DaysWithFocus:      2,
		}
		got := Suggest(m, 2)
		if len(got) != 2 {
			t.Fatalf("Suggest = %d messages, want 2", len(got))
		}
		if !strings.Contains(got[0], "completion rate is 20%") {
			t.Errorf("first = %q, want completion-rate message first", got[0])
		}
		if !strings.Contains(got[1], "2 of the last 7 days") {
			t.Errorf("second = %q, want days-with-focus message", got[1])
		}
	})

	t.Run("streak praise", func(t *testing.T) {
		got := Suggest(Metrics{SessionsCount: 5, AvgSessionDuration: 30, DaysWithFocus: 5, CompletionRate: 80, Streak: 4}, 3)
		if len(got) != 1 || !strings.Contains(got[0], "4-day streak") {
			t.Errorf("Suggest = %v, want the streak message only", got)
		}
	})

	t.Run("healthy week yields nothing, never nil", func(t *testing.T) {
		got := Suggest(Metrics{SessionsCount: 5, AvgSessionDuration: 30, DaysWithFocus: 5, CompletionRate: 80, Streak: 2}, 3)
		if got == nil {
			t.Fatal("Suggest returned nil, want empty slice")
		}
		if len(got) != 0 {
			t.Errorf("Suggest = %v, want empty", got)
		}
	})
}

func TestWeekly(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	ctx := context.Background()

	tasks := memory.NewTaskStore()
	sessions := memory.NewFocusStore()
	uc := New(tasks, sessions, clock.Fixed(now), time.UTC, Config{}, nil)

	doneAt := now.AddDate(0, 0, -1)
	seed := []domain.Task{
		{UserID: "u1", Title: "a", CreatedAt: now.AddDate(0, 0, -2), Completed: true, CompletedAt: &doneAt},
		{UserID: "u1", Title: "b", CreatedAt: now.AddDate(0, 0, -1)},
	}
	for i := range seed {
		if _, err := tasks.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	// 50 + 50 minutes across two days inside the week, plus a session ten
	// days back that only the streak lookback can see.
	for _, s := range []domain.FocusSession{
		ended(now.Add(-6*time.Hour), 50),
		ended(now.AddDate(0, 0, -1), 50),
		ended(now.AddDate(0, 0, -10), 30),
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

	if got.TotalFocusMinutes != 100 {
		t.Errorf("totalFocusMinutes = %d, want 100", got.TotalFocusMinutes)
	}
	if got.TotalFocusHours != 1.7 {
		t.Errorf("totalFocusHours = %v, want 1.7", got.TotalFocusHours)
	}
	if got.SessionsCount != 2 {
		t.Errorf("sessionsCount = %d, want 2", got.SessionsCount)
	}
	if got.AvgSessionDuration != 50 {
		t.Errorf("avgSessionDuration = %d, want 50", got.AvgSessionDuration)
	}
	if got.DaysWithFocus != 2 {
		t.Errorf("daysWithFocus = %d, want 2", got.DaysWithFocus)
	}
	if got.Streak != 2 {
		t.Errorf("streak = %d, want 2", got.Streak)
	}
	if got.CompletionRate != 50 {
		t.Errorf("completionRate = %d, want 50", got.CompletionRate)
	}
	if got.MostActiveProject != string(domain.ProjectGA) {
		t.Errorf("mostActiveProject = %q, want GA", got.MostActiveProject)
	}
	if got.Suggestions == nil {
		t.Error("suggestions must never be nil")
	}
}
