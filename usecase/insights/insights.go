package insights

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/oureon/trackr/domain"
	"github.com/oureon/trackr/pkg/clock"
	"github.com/oureon/trackr/repository"
	"github.com/oureon/trackr/usecase"
	"github.com/oureon/trackr/usecase/summary"
)

// Config tunes the insight engine. LookbackDays bounds how far back the
// streak walk can reach; MaxSuggestions caps the rule output.
type Config struct {
	LookbackDays   int
	MaxSuggestions int
}

// UseCase derives streaks, averages and rule-based suggestions. It consumes
// the same window queries the aggregator does plus per-day session
// existence; it never re-reads raw collections beyond that.
type UseCase struct {
	tasks    repository.TaskRepository
	sessions repository.FocusSessionRepository
	clock    clock.Clock
	loc      *time.Location
	cfg      Config
	logger   *zap.Logger
}

func New(tasks repository.TaskRepository, sessions repository.FocusSessionRepository, clk clock.Clock, loc *time.Location, cfg Config, logger *zap.Logger) *UseCase {
	if clk == nil {
		clk = clock.System()
	}
	if loc == nil {
		loc = time.UTC
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 30
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		sessions: sessions,
		clock:    clk,
		loc:      loc,
		cfg:      cfg,
		logger:   logger,
	}
}

// Metrics is the snapshot the suggestion rules evaluate against. Keeping it
// a plain struct makes the decision table testable without storage.
type Metrics struct {
	CompletionRate     int
	TasksCreated       int
	SessionsCount      int
	AvgSessionDuration int
	DaysWithFocus      int
	Streak             int
}

// Weekly computes the full insight payload for the trailing seven days.
func (uc *UseCase) Weekly(ctx context.Context, userID string) (*domain.WeeklyInsights, error) {
	now := uc.clock.Now()
	weekFrom, weekTo := usecase.TrailingWindow(now, 7)

	weekSessions, err := uc.sessions.ListStartedBetween(ctx, userID, weekFrom, weekTo)
	if err != nil {
		return nil, err
	}
	lookFrom, lookTo := usecase.TrailingWindow(now, uc.cfg.LookbackDays)
	lookback, err := uc.sessions.ListStartedBetween(ctx, userID, lookFrom, lookTo)
	if err != nil {
		return nil, err
	}
	created, err := uc.tasks.CountCreatedBetween(ctx, userID, weekFrom, weekTo)
	if err != nil {
		return nil, err
	}
	completed, err := uc.tasks.CountCompletedBetween(ctx, userID, weekFrom, weekTo)
	if err != nil {
		return nil, err
	}

	minutes := summary.SumEndedMinutes(weekSessions)
	metrics := Metrics{
		CompletionRate:     summary.CompletionRate(completed, created),
		TasksCreated:       created,
		SessionsCount:      len(weekSessions),
		AvgSessionDuration: AvgSessionDuration(weekSessions),
		DaysWithFocus:      DaysWithFocus(weekSessions, uc.loc),
		Streak:             Streak(lookback, now, uc.loc),
	}

	result := &domain.WeeklyInsights{
		TotalFocusMinutes:  minutes,
		TotalFocusHours:    math.Round(10*float64(minutes)/60) / 10,
		SessionsCount:      metrics.SessionsCount,
		AvgSessionDuration: metrics.AvgSessionDuration,
		TasksCreated:       created,
		TasksCompleted:     completed,
		CompletionRate:     metrics.CompletionRate,
		DaysWithFocus:      metrics.DaysWithFocus,
		Streak:             metrics.Streak,
		Suggestions:        Suggest(metrics, uc.cfg.MaxSuggestions),
	}
	if top := summary.MostActiveProject(weekSessions); top != nil {
		result.MostActiveProject = string(top.Name)
	}
	return result, nil
}

// AvgSessionDuration is the mean durationMinutes over ended sessions,
// rounded to the nearest whole minute; 0 when nothing ended.
func AvgSessionDuration(sessions []domain.FocusSession) int {
	var sum, n int
	for i := range sessions {
		if sessions[i].EndedAt != nil {
			sum += sessions[i].DurationMinutes()
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// DaysWithFocus counts distinct calendar days carrying at least one ended
// session. Sessions bucket by the day they started in loc.
func DaysWithFocus(sessions []domain.FocusSession, loc *time.Location) int {
	days := endedSessionDays(sessions, loc)
	return len(days)
}

// Streak is the length of the maximal run of consecutive calendar days with
// at least one ended session, ending today or yesterday. A streak survives
// one day of grace: no session yet today still counts yesterday's run, but
// two skipped days reset it to zero.
func Streak(sessions []domain.FocusSession, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	days := endedSessionDays(sessions, loc)
	if len(days) == 0 {
		return 0
	}

	local := now.In(loc)
	cursor := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	if !days[usecase.DayKey(cursor, loc)] {
		cursor = cursor.AddDate(0, 0, -1)
		if !days[usecase.DayKey(cursor, loc)] {
			return 0
		}
	}

	streak := 0
	for days[usecase.DayKey(cursor, loc)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

func endedSessionDays(sessions []domain.FocusSession, loc *time.Location) map[string]bool {
	days := make(map[string]bool)
	for i := range sessions {
		if sessions[i].EndedAt != nil {
			days[usecase.DayKey(sessions[i].StartedAt, loc)] = true
		}
	}
	return days
}
