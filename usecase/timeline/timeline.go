package timeline

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/oureon/trackr/domain"
	"github.com/oureon/trackr/pkg/clock"
	"github.com/oureon/trackr/repository"
	"github.com/oureon/trackr/usecase"
)

// UseCase projects the append-only event log into day-grouped views.
// Re-querying the same window with the same "now" yields the same result,
// modulo events interleaved since.
type UseCase struct {
	events repository.TimelineRepository
	clock  clock.Clock
	loc    *time.Location
	logger *zap.Logger
}

func New(events repository.TimelineRepository, clk clock.Clock, loc *time.Location, logger *zap.Logger) *UseCase {
	if clk == nil {
		clk = clock.System()
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		events: events,
		clock:  clk,
		loc:    loc,
		logger: logger,
	}
}

// List returns the events of the requested range ("today" or the trailing
// week) grouped by calendar day, newest day first, events within a day in
// the order they happened.
func (uc *UseCase) List(ctx context.Context, userID, rng string) ([]domain.TimelineDay, error) {
	now := uc.clock.Now()

	var from, to time.Time
	switch rng {
	case "today":
		from, to = usecase.DayWindow(now, uc.loc)
	default:
		from, to = usecase.TrailingWindow(now, 7)
	}

	events, err := uc.events.ListBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	return GroupByDay(events, uc.loc), nil
}

// GroupByDay buckets events by calendar day in loc. Days sort descending,
// events inside a day keep ascending time order.
func GroupByDay(events []domain.TimelineEvent, loc *time.Location) []domain.TimelineDay {
	if loc == nil {
		loc = time.UTC
	}

	buckets := make(map[string][]domain.TimelineEvent)
	for _, event := range events {
		key := usecase.DayKey(event.CreatedAt, loc)
		buckets[key] = append(buckets[key], event)
	}

	days := make([]domain.TimelineDay, 0, len(buckets))
	for date, dayEvents := range buckets {
		sort.SliceStable(dayEvents, func(i, j int) bool {
			return dayEvents[i].CreatedAt.Before(dayEvents[j].CreatedAt)
		})
		days = append(days, domain.TimelineDay{Date: date, Events: dayEvents})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date > days[j].Date })

	return days
}
