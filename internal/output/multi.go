package output

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/manifest-network/adacoin/internal/models"
)

// MultiHandler writes every event to all of its handlers concurrently.
type MultiHandler struct {
	handlers []OutputHandler
}

func NewMultiHandler(handlers ...OutputHandler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Len returns the number of wrapped handlers.
func (m *MultiHandler) Len() int {
	return len(m.handlers)
}

func (m *MultiHandler) WriteEvent(ctx context.Context, event *models.Event) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, h := range m.handlers {
		eg.Go(func() error {
			return h.WriteEvent(ctx, event)
		})
	}
	return eg.Wait()
}

// GetLatestSeq returns the highest latest sequence number among the resumable handlers, so that a
// journal over several outputs continues after the furthest one.
func (m *MultiHandler) GetLatestSeq(ctx context.Context) (uint64, error) {
	var latest uint64
	for _, h := range m.handlers {
		r, ok := h.(Resumable)
		if !ok {
			continue
		}
		seq, err := r.GetLatestSeq(ctx)
		if err != nil {
			return 0, err
		}
		latest = max(latest, seq)
	}
	return latest, nil
}

// Close closes every handler, even after a failure, and returns the joined errors.
func (m *MultiHandler) Close() error {
	var errs []error
	for _, h := range m.handlers {
		if err := h.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
