package sql

import (
	"database/sql"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// JournalCollectorFactory builds a collector that queries the PostgreSQL event journal.
type JournalCollectorFactory func(db *sql.DB) (prometheus.Collector, error)

type namedFactory struct {
	name    string
	factory JournalCollectorFactory
}

// JournalRegistry holds the journal collectors known to the metrics server, in registration order.
type JournalRegistry struct {
	factories []namedFactory
}

func NewJournalRegistry() *JournalRegistry {
	return &JournalRegistry{}
}

// Register adds a factory under name, which identifies it in errors.
func (r *JournalRegistry) Register(name string, factory JournalCollectorFactory) {
	r.factories = append(r.factories, namedFactory{name: name, factory: factory})
}

// CreateJournalCollectors builds every registered collector against db. The journal must be the
// database opened by the PostgreSQL output handler, where api.events and api.rejections exist.
func (r *JournalRegistry) CreateJournalCollectors(db *sql.DB) ([]prometheus.Collector, error) {
	if db == nil {
		return nil, errors.New("journal database is nil")
	}

	collectors := make([]prometheus.Collector, 0, len(r.factories))
	for _, f := range r.factories {
		collector, err := f.factory(db)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to create journal collector %q", f.name)
		}
		collectors = append(collectors, collector)
	}
	return collectors, nil
}

var DefaultJournalRegistry = NewJournalRegistry()

func RegisterJournalCollector(name string, factory JournalCollectorFactory) {
	DefaultJournalRegistry.Register(name, factory)
}
