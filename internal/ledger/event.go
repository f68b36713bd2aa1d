package ledger

import (
	"log/slog"
	"time"
)

// EventType names a ledger event.
type EventType string

const (
	EventBlockCreated     EventType = "block_created"
	EventBlockRejected    EventType = "block_rejected"
	EventBalanceComputed  EventType = "balance_computed"
	EventTimestampAnomaly EventType = "timestamp_anomaly"
	EventBlockAmended     EventType = "block_amended"
	EventChainRebuilt     EventType = "chain_rebuilt"
)

// Event describes something the ledger did. Fields that do not apply to a type are left empty.
type Event struct {
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Index      int       `json:"index,omitempty"`
	Timestamp  string    `json:"ts,omitempty"`
	TID        string    `json:"tid,omitempty"`
	Hash       string    `json:"hash,omitempty"`
	Kind       Kind      `json:"kind,omitempty"`
	Message    string    `json:"message,omitempty"`
	Value      string    `json:"value,omitempty"`
	Balance    string    `json:"balance,omitempty"`
}

// EventSink receives ledger events. Implementations must not block for long and must not panic;
// the ledger does not wait on or check the outcome of an Emit.
type EventSink interface {
	Emit(Event)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// SlogSink writes events to a slog.Logger. A nil Logger uses slog.Default().
type SlogSink struct {
	Logger *slog.Logger
}

func (s SlogSink) Emit(e Event) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []any{"type", string(e.Type)}
	if e.Timestamp != "" {
		attrs = append(attrs, "ts", e.Timestamp)
	}
	if e.TID != "" {
		attrs = append(attrs, "tid", e.TID)
	}
	if e.Index != 0 {
		attrs = append(attrs, "index", e.Index)
	}
	if e.Hash != "" {
		attrs = append(attrs, "hash", e.Hash)
	}
	if e.Balance != "" {
		attrs = append(attrs, "balance", e.Balance)
	}

	switch e.Type {
	case EventBlockRejected:
		logger.Warn("Block rejected", append(attrs, "kind", string(e.Kind), "error", e.Message, "value", e.Value)...)
	case EventTimestampAnomaly:
		logger.Warn("Timestamp anomaly", append(attrs, "error", e.Message)...)
	default:
		logger.Debug("Ledger event", attrs...)
	}
}

// SinkFunc adapts a function to EventSink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }
