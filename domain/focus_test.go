package domain

import (
	"testing"
	"time"
)

func TestFocusSessionDurationMinutes(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	endAfter := func(d time.Duration) *time.Time {
		e := start.Add(d)
		return &e
	}

	tests := []struct {
		name    string
		session *FocusSession
		want    int
	}{
		{"nil receiver", nil, 0},
		{"active session", &FocusSession{StartedAt: start}, 0},
		{"exact half hour", &FocusSession{StartedAt: start, EndedAt: endAfter(30 * time.Minute)}, 30},
		{"rounds half up", &FocusSession{StartedAt: start, EndedAt: endAfter(90 * time.Second)}, 2},
		{"rounds down", &FocusSession{StartedAt: start, EndedAt: endAfter(25*time.Minute + 20*time.Second)}, 25},
		{"zero-length", &FocusSession{StartedAt: start, EndedAt: endAfter(0)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.DurationMinutes(); got != tt.want {
				t.Errorf("DurationMinutes = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFocusSessionIsActive(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	if (&FocusSession{StartedAt: start}).IsActive() != true {
		t.Error("session without endedAt should be active")
	}
	if (&FocusSession{StartedAt: start, EndedAt: &end}).IsActive() {
		t.Error("ended session should not be active")
	}
	var nilSession *FocusSession
	if nilSession.IsActive() {
		t.Error("nil session should not be active")
	}
}

func TestFocusSessionIsRated(t *testing.T) {
	for rating, want := range map[int]bool{0: false, 1: true, 3: true, 5: true, 6: false, -1: false} {
		s := &FocusSession{Rating: rating}
		if got := s.IsRated(); got != want {
			t.Errorf("IsRated(rating=%d) = %v, want %v", rating, got, want)
		}
	}
}
