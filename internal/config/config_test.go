package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AppName != "trackr" {
		t.Errorf("AppName = %q, want trackr", cfg.AppName)
	}
	if cfg.HTTP.Port != "8080" {
		t.Errorf("HTTP.Port = %q, want 8080", cfg.HTTP.Port)
	}
	if cfg.Analytics.Timezone != "UTC" {
		t.Errorf("Analytics.Timezone = %q, want UTC", cfg.Analytics.Timezone)
	}
	if cfg.Analytics.MaxSuggestions != 3 || cfg.Analytics.StreakLookbackDays != 30 {
		t.Errorf("Analytics knobs = %d/%d, want 3/30", cfg.Analytics.MaxSuggestions, cfg.Analytics.StreakLookbackDays)
	}
	if cfg.Database.URL == "" {
		t.Error("Database.URL should be derived from parts when not set")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("ANALYTICS_TIMEZONE", "Asia/Singapore")
	t.Setenv("ANALYTICS_MAX_SUGGESTIONS", "5")
	t.Setenv("SERVER_READ_TIMEOUT", "30s")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Port != "9999" {
		t.Errorf("HTTP.Port = %q, want 9999", cfg.HTTP.Port)
	}
	if cfg.Analytics.Timezone != "Asia/Singapore" {
		t.Errorf("Analytics.Timezone = %q, want Asia/Singapore", cfg.Analytics.Timezone)
	}
	if cfg.Analytics.MaxSuggestions != 5 {
		t.Errorf("Analytics.MaxSuggestions = %d, want 5", cfg.Analytics.MaxSuggestions)
	}
	if cfg.HTTP.ReadTimeout != 30*time.Second {
		t.Errorf("ReadTimeout = %v, want 30s", cfg.HTTP.ReadTimeout)
	}
	// Bare integers are read as seconds.
	if cfg.Context.RequestTimeout != 7*time.Second {
		t.Errorf("RequestTimeout = %v, want 7s", cfg.Context.RequestTimeout)
	}
}

func TestAnalyticsLocationFallsBackToUTC(t *testing.T) {
	bad := AnalyticsConfig{Timezone: "Not/AZone"}
	if got := bad.Location(); got != time.UTC {
		t.Errorf("Location = %v, want UTC fallback", got)
	}
	utc := AnalyticsConfig{Timezone: "UTC"}
	if got := utc.Location(); got != time.UTC {
		t.Errorf("Location = %v, want UTC", got)
	}
}
