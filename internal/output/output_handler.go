package output

import (
	"context"

	"github.com/manifest-network/adacoin/internal/models"
)

// OutputHandler persists journal events.
type OutputHandler interface {
	WriteEvent(ctx context.Context, event *models.Event) error
	Close() error
}

// Resumable is implemented by outputs that keep events from earlier runs. A journal writing to one
// must number its events after GetLatestSeq, or it would overwrite or interleave with them.
type Resumable interface {
	GetLatestSeq(ctx context.Context) (uint64, error)
}
