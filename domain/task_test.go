package domain

import (
	"testing"
	"time"
)

func TestTaskDueBetween(t *testing.T) {
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	at := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name     string
		deadline *time.Time
		want     bool
	}{
		{"no deadline", nil, false},
		{"inside", at(from.Add(12 * time.Hour)), true},
		{"exactly at from is included", at(from), true},
		{"exactly at to is excluded", at(to), false},
		{"before", at(from.Add(-time.Minute)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{Deadline: tt.deadline}
			if got := task.DueBetween(from, to); got != tt.want {
				t.Errorf("DueBetween = %v, want %v", got, tt.want)
			}
		})
	}
}
