package focus

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/oureon/trackr/domain"
	"github.com/oureon/trackr/pkg/clock"
	"github.com/oureon/trackr/repository"
	"github.com/oureon/trackr/usecase"
)

// UseCase is the session lifecycle manager. Per user it is a two-state
// machine, Idle and Active; the transition guard lives in the repository's
// atomic Start so concurrent starts cannot both win.
type UseCase struct {
	sessions repository.FocusSessionRepository
	events   usecase.EventRecorder
	clock    clock.Clock
	loc      *time.Location
	logger   *zap.Logger
}

func New(sessions repository.FocusSessionRepository, events usecase.EventRecorder, clk clock.Clock, loc *time.Location, logger *zap.Logger) *UseCase {
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
		sessions: sessions,
		events:   events,
		clock:    clk,
		loc:      loc,
		logger:   logger,
	}
}

// StartParams carries the caller-chosen attributes of a new session.
type StartParams struct {
	Mode           domain.SessionMode
	Project        domain.Project
	PlannedMinutes int
}

// Start creates a session with startedAt = now. It fails with a conflict
// when the user already has an active session; the caller must end that one
// first. Elapsed time is never tracked server-side: clients derive it from
// startedAt, which keeps the model resumable after a crash or reconnect.
func (uc *UseCase) Start(ctx context.Context, userID string, params StartParams) (*domain.FocusSession, error) {
	if params.Mode == "" {
		params.Mode = domain.ModeStudy
	}
	if params.Project == "" {
		params.Project = domain.ProjectPersonal
	}
	if !params.Mode.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "invalid session mode")
	}
	if !params.Project.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "invalid project")
	}
	if params.PlannedMinutes < 0 {
		return nil, domain.NewError(domain.ErrCodeInvalid, "planned minutes must be a positive integer")
	}

	session := &domain.FocusSession{
		UserID:         userID,
		Mode:           params.Mode,
		Project:        params.Project,
		StartedAt:      uc.clock.Now(),
		PlannedMinutes: params.PlannedMinutes,
	}

	created, err := uc.sessions.Start(ctx, session)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, created.UserID, domain.EventFocusStarted, map[string]string{
		"mode":           string(created.Mode),
		"project":        string(created.Project),
		"plannedMinutes": strconv.Itoa(created.PlannedMinutes),
	})

	return created, nil
}

// End terminates the session exactly once. Rating and note may only be set
// here; the rating check lives in the core because it protects the
// integrity of rating-based insights, not just the transport surface.
func (uc *UseCase) End(ctx context.Context, userID, id string, rating int, note string) (*domain.FocusSession, error) {
	if rating != 0 && (rating < 1 || rating > 5) {
		return nil, domain.ErrInvalidRating
	}

	ended, err := uc.sessions.End(ctx, userID, id, repository.EndParams{
		EndedAt: uc.clock.Now(),
		Rating:  rating,
		Note:    note,
	})
	if err != nil {
		return nil, err
	}

	metadata := map[string]string{
		"mode":          string(ended.Mode),
		"project":       string(ended.Project),
		"actualMinutes": strconv.Itoa(ended.DurationMinutes()),
	}
	if ended.IsRated() {
		metadata["rating"] = strconv.Itoa(ended.Rating)
	}
	uc.record(ctx, ended.UserID, domain.EventFocusEnded, metadata)

	return ended, nil
}

// Active returns the running session or nil. Pure read, no side effects.
func (uc *UseCase) Active(ctx context.Context, userID string) (*domain.FocusSession, error) {
	return uc.sessions.GetActive(ctx, userID)
}

// List returns sessions whose startedAt falls in the requested range
// ("today" or the trailing week), newest first, together with the summed
// minutes of the ended ones. Active sessions contribute zero minutes.
func (uc *UseCase) List(ctx context.Context, userID, rng string) ([]domain.FocusSession, int, error) {
	now := uc.clock.Now()

	var from, to time.Time
	switch rng {
	case "today":
		from, to = usecase.DayWindow(now, uc.loc)
	default:
		from, to = usecase.TrailingWindow(now, 7)
	}

	sessions, err := uc.sessions.ListStartedBetween(ctx, userID, from, to)
	if err != nil {
		return nil, 0, err
	}

	var total int
	for i := range sessions {
		total += sessions[i].DurationMinutes()
	}
	return sessions, total, nil
}

func (uc *UseCase) record(ctx context.Context, userID string, eventType domain.EventType, metadata map[string]string) {
	if uc.events == nil {
		return
	}
	event := domain.TimelineEvent{
		UserID:    userID,
		Type:      eventType,
		Metadata:  metadata,
		CreatedAt: uc.clock.Now(),
	}
	if err := uc.events.Record(ctx, event); err != nil {
		uc.logger.Error("failed to record timeline event", zap.String("type", string(eventType)), zap.Error(err))
	}
}
