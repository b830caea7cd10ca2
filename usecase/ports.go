package usecase

import (
	"context"

	"github.com/oureon/trackr/domain"
)

// EventRecorder abstracts timeline emission so mutating usecases stay
// storage-agnostic. Implementations are expected to be best-effort durable:
// an append that cannot reach primary storage is buffered locally rather
// than failing the mutation that produced it.
type EventRecorder interface {
	Record(ctx context.Context, event domain.TimelineEvent) error
}
