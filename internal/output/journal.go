package output

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/manifest-network/adacoin/internal/ledger"
	"github.com/manifest-network/adacoin/internal/models"
)

// Journal is a ledger.EventSink that numbers events and writes them through an OutputHandler.
// Write failures are logged and counted; they never reach the ledger.
type Journal struct {
	ctx     context.Context
	handler OutputHandler

	mu       sync.Mutex
	seq      uint64
	failures int
}

// NewJournal returns a journal whose first event gets sequence number lastSeq+1.
func NewJournal(ctx context.Context, handler OutputHandler, lastSeq uint64) *Journal {
	return &Journal{ctx: ctx, handler: handler, seq: lastSeq}
}

func (j *Journal) Emit(e ledger.Event) {
	j.mu.Lock()
	defer j.mu.Unlock()

	data, err := json.Marshal(e)
	if err != nil {
		slog.Error("Failed to marshal ledger event", "type", e.Type, "error", err)
		j.failures++
		return
	}

	j.seq++
	event := &models.Event{Seq: j.seq, Type: string(e.Type), Data: data}
	if err := j.handler.WriteEvent(j.ctx, event); err != nil {
		slog.Error("Failed to write ledger event", "seq", event.Seq, "type", event.Type, "error", err)
		j.failures++
	}
}

// Seq returns the sequence number of the last event emitted.
func (j *Journal) Seq() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.seq
}

// Failures returns how many events could not be written.
func (j *Journal) Failures() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.failures
}
