package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/oureon/trackr/domain"
	"github.com/oureon/trackr/internal/infrastructure/buffer"
	"github.com/oureon/trackr/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// ProcessorConfig controls how frequently the buffer is drained.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// BufferProcessor replays locally buffered timeline events into Postgres
// once connectivity returns.
type BufferProcessor struct {
	store    *buffer.Store
	monitor  ConnectionHealth
	timeline repository.TimelineRepository
	logger   *zap.Logger
	cron     *cron.Cron
	cfg      ProcessorConfig
}

func NewBufferProcessor(
	store *buffer.Store,
	monitor ConnectionHealth,
	timeline repository.TimelineRepository,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *BufferProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bp := &BufferProcessor{
		store:    store,
		monitor:  monitor,
		timeline: timeline,
		logger:   logger,
		cfg:      cfg,
		cron:     cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = bp.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := bp.Drain(ctx); err != nil {
			bp.logger.Error("buffer drain failed", zap.Error(err))
		}
	})

	return bp
}

// Start launches the cron scheduler.
func (bp *BufferProcessor) Start() {
	if bp == nil || bp.cron == nil {
		return
	}
	bp.cron.Start()
	bp.logger.Info("buffer processor started")
}

// Stop gracefully stops the scheduler.
func (bp *BufferProcessor) Stop(ctx context.Context) {
	if bp == nil || bp.cron == nil {
		return
	}
	stopCtx := bp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	bp.logger.Info("buffer processor stopped")
}

// BufferOperation enqueues an item for later replay.
func (bp *BufferProcessor) BufferOperation(ctx context.Context, item buffer.Item) error {
	if bp == nil || bp.store == nil {
		return domain.ErrInvalidPayload
	}
	return bp.store.Enqueue(item)
}

// Drain processes buffered items synchronously.
func (bp *BufferProcessor) Drain(ctx context.Context) error {
	if bp == nil || bp.store == nil {
		return nil
	}
	if bp.monitor != nil && !bp.monitor.IsOnline() {
		bp.logger.Debug("skipping buffer drain (offline)")
		return nil
	}

	items, err := bp.store.GetBatch(bp.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := bp.replay(ctx, item); err != nil {
			item.Retries++
			if item.Retries >= bp.cfg.MaxRetries {
				bp.logger.Error("dropping buffered item after max retries",
					zap.String("id", item.ID),
					zap.String("entity", item.Entity),
					zap.Error(err))
				_ = bp.store.Remove(item)
				continue
			}
			bp.logger.Warn("replay failed, requeueing",
				zap.String("id", item.ID),
				zap.Int("retries", item.Retries),
				zap.Error(err))
			_ = bp.store.Remove(item)
			_ = bp.store.Requeue(item)
			continue
		}

		if err := bp.store.Remove(item); err != nil {
			bp.logger.Warn("failed to remove replayed item", zap.String("id", item.ID), zap.Error(err))
		}
	}
	return nil
}

func (bp *BufferProcessor) replay(ctx context.Context, item buffer.Item) error {
	switch item.Entity {
	case buffer.EntityTimelineEvent:
		var event domain.TimelineEvent
		if err := json.Unmarshal(item.Data, &event); err != nil {
			return err
		}
		return bp.timeline.Append(ctx, event)
	default:
		return fmt.Errorf("unknown buffered entity %q", item.Entity)
	}
}
