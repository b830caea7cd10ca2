package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const EntityTimelineEvent = "timeline_event"

// Item represents a write that should be retried when primary storage is
// unavailable. Today the only buffered entity is the timeline event: audit
// entries must not be lost, and the mutation that produced them must not
// fail on a storage hiccup.
type Item struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Entity    string          `json:"entity"`
	Data      json.RawMessage `json:"data"`
	Priority  int             `json:"priority"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Priority <= 0 || i.Priority > 5 {
		i.Priority = 3
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
