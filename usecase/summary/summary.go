package summary

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/oureon/trackr/domain"
	"github.com/oureon/trackr/pkg/clock"
	"github.com/oureon/trackr/repository"
	"github.com/oureon/trackr/usecase"
)

// Config bounds the upcoming-deadline view of the daily summary.
type Config struct {
	UpcomingDays  int
	UpcomingLimit int
}

// UseCase is the window aggregator. Every result is a pure function of the
// stored records and the clock's "now"; nothing here is incrementally
// maintained or cached.
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
	if cfg.UpcomingDays <= 0 {
		cfg.UpcomingDays = 3
	}
	if cfg.UpcomingLimit <= 0 {
		cfg.UpcomingLimit = 5
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

// Daily reduces today's records. A task counts as "of today" when it was
// created today or is due today (union, not intersection), and active
// sessions contribute zero minutes until ended: no partial credit for
// unfinished work.
func (uc *UseCase) Daily(ctx context.Context, userID string) (*domain.DailySummary, error) {
	now := uc.clock.Now()
	from, to := usecase.DayWindow(now, uc.loc)

	completed, err := uc.tasks.CountCompletedBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	total, err := uc.tasks.CountCreatedOrDueBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	sessions, err := uc.sessions.ListStartedBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	upcoming, err := uc.tasks.ListUpcoming(ctx, userID, now, now.AddDate(0, 0, uc.cfg.UpcomingDays), uc.cfg.UpcomingLimit)
	if err != nil {
		return nil, err
	}
	if upcoming == nil {
		upcoming = []domain.Task{}
	}

	return &domain.DailySummary{
		TasksCompletedToday: completed,
		TotalTasksToday:     total,
		SessionsToday:       len(sessions),
		TotalMinutesToday:   SumEndedMinutes(sessions),
		UpcomingDeadlines:   upcoming,
	}, nil
}

// Weekly reduces the trailing seven days ending at now.
func (uc *UseCase) Weekly(ctx context.Context, userID string) (*domain.WeeklySummary, error) {
	now := uc.clock.Now()
	from, to := usecase.TrailingWindow(now, 7)

	sessions, err := uc.sessions.ListStartedBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	created, err := uc.tasks.CountCreatedBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	completed, err := uc.tasks.CountCompletedBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	return &domain.WeeklySummary{
		TotalMinutesLastWeek:   SumEndedMinutes(sessions),
		TotalSessionsLastWeek:  len(sessions),
		TasksCreatedLastWeek:   created,
		TasksCompletedLastWeek: completed,
		CompletionRate:         CompletionRate(completed, created),
		MostActiveProject:      MostActiveProject(sessions),
		AverageRating:          AverageRating(sessions),
	}, nil
}

// SumEndedMinutes totals durationMinutes over ended sessions only.
func SumEndedMinutes(sessions []domain.FocusSession) int {
	var total int
	for i := range sessions {
		total += sessions[i].DurationMinutes()
	}
	return total
}

// CompletionRate returns round(100*completed/created) clamped to a defined
// 0 when nothing was created, never a division by zero.
func CompletionRate(completed, created int) int {
	if created <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(created)))
}

// MostActiveProject picks the project with the highest session count.
// Ties break lexicographically by project name so the result is
// deterministic regardless of map iteration order.
func MostActiveProject(sessions []domain.FocusSession) *domain.ProjectActivity {
	counts := make(map[domain.Project]int)
	for i := range sessions {
		if sessions[i].Project != "" {
			counts[sessions[i].Project]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	projects := make([]domain.Project, 0, len(counts))
	for p := range counts {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i] < projects[j] })

	best := projects[0]
	for _, p := range projects[1:] {
		if counts[p] > counts[best] {
			best = p
		}
	}
	return &domain.ProjectActivity{Name: best, Sessions: counts[best]}
}

// AverageRating returns the mean rating over ended, rated sessions rounded
// to one decimal, or nil when no rated session exists.
func AverageRating(sessions []domain.FocusSession) *float64 {
	var sum, n int
	for i := range sessions {
		s := &sessions[i]
		if s.EndedAt != nil && s.IsRated() {
			sum += s.Rating
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := math.Round(10*float64(sum)/float64(n)) / 10
	return &avg
}
