package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/oureon/trackr/domain"
	"github.com/oureon/trackr/internal/infrastructure/buffer"
	"github.com/oureon/trackr/repository"
	"github.com/oureon/trackr/usecase"
)

// TimelineRecorder appends events to Postgres and falls back to the local
// buffer when the append fails, so mutations never fail on audit writes.
type TimelineRecorder struct {
	timeline  repository.TimelineRepository
	processor *BufferProcessor
	logger    *zap.Logger
}

func NewTimelineRecorder(timeline repository.TimelineRepository, processor *BufferProcessor, logger *zap.Logger) *TimelineRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimelineRecorder{
		timeline:  timeline,
		processor: processor,
		logger:    logger,
	}
}

func (r *TimelineRecorder) Record(ctx context.Context, event domain.TimelineEvent) error {
	err := r.timeline.Append(ctx, event)
	if err == nil {
		return nil
	}
	if r.processor == nil {
		return err
	}

	payload, marshalErr := json.Marshal(event)
	if marshalErr != nil {
		return marshalErr
	}
	item := buffer.Item{
		UserID:   event.UserID,
		Entity:   buffer.EntityTimelineEvent,
		Data:     payload,
		Priority: 4,
	}
	if bufErr := r.processor.BufferOperation(ctx, item); bufErr != nil {
		r.logger.Error("failed to buffer timeline event", zap.Error(bufErr))
		return err
	}
	r.logger.Warn("timeline event buffered", zap.String("type", string(event.Type)), zap.Error(err))
	return nil
}

var _ usecase.EventRecorder = (*TimelineRecorder)(nil)
