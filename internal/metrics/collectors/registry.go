package collectors

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// ChainReader is the read side of a chain shared with its writer, such as wallet.Wallet.
type ChainReader interface {
	Len() int
	IsValid() bool
	BalanceAmount() decimal.Decimal
}

// ChainCollectorFactory is a function type that creates a collector reading a chain
type ChainCollectorFactory func(chain ChainReader, extraParams ...interface{}) (prometheus.Collector, error)

type Registry struct {
	factories []ChainCollectorFactory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make([]ChainCollectorFactory, 0),
	}
}

func (r *Registry) Register(factory ChainCollectorFactory) {
	r.factories = append(r.factories, factory)
}

// CreateCollectors instantiates all collectors using the provided parameters
func (r *Registry) CreateCollectors(chain ChainReader, extraParams ...interface{}) ([]prometheus.Collector, error) {
	if chain == nil {
		return nil, errors.New("chain is nil")
	}

	collectors := make([]prometheus.Collector, 0, len(r.factories))
	for _, factory := range r.factories {
		collector, err := factory(chain, extraParams...)
		if err != nil {
			return nil, err
		}
		collectors = append(collectors, collector)
	}
	return collectors, nil
}

var DefaultRegistry = NewRegistry()

func RegisterCollectorFactory(factory ChainCollectorFactory) {
	DefaultRegistry.Register(factory)
}
