package postgres

import (
	"testing"
	"time"
)

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero falls back", 0, 100},
		{"negative falls back", -5, 100},
		{"within bounds", 25, 25},
		{"upper bound", 100, 100},
		{"above bound clamps", 500, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampLimit(tt.limit); got != tt.want {
				t.Errorf("clampLimit(%d) = %d, want %d", tt.limit, got, tt.want)
			}
		})
	}
}

func TestMarshalMap(t *testing.T) {
	if got := marshalMap(nil); got != nil {
		t.Errorf("marshalMap(nil) = %q, want nil", got)
	}
	if got := marshalMap(map[string]string{"title": "x"}); string(got) != `{"title":"x"}` {
		t.Errorf("marshalMap = %q, want {\"title\":\"x\"}", got)
	}
}

func TestNullTime(t *testing.T) {
	if got := nullTime(time.Time{}); got != nil {
		t.Errorf("nullTime(zero) = %v, want nil", got)
	}
	instant := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if got := nullTime(instant); got != instant {
		t.Errorf("nullTime = %v, want %v", got, instant)
	}
}
