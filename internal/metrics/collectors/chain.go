package collectors

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ChainCollector reports the size, integrity and balance of an in-memory chain.
type ChainCollector struct {
	chain   ChainReader
	blocks  *prometheus.Desc
	valid   *prometheus.Desc
	balance *prometheus.Desc
}

func NewChainCollector(chain ChainReader) *ChainCollector {
	labels := prometheus.Labels{"source": "memory"}
	return &ChainCollector{
		chain: chain,
		blocks: prometheus.NewDesc(
			prometheus.BuildFQName("adacoin", "chain", "blocks"),
			"Number of blocks in the chain, genesis included",
			nil,
			labels,
		),
		valid: prometheus.NewDesc(
			prometheus.BuildFQName("adacoin", "chain", "valid"),
			"1 when every block passes the tamper and link checks",
			nil,
			labels,
		),
		balance: prometheus.NewDesc(
			prometheus.BuildFQName("adacoin", "chain", "balance"),
			"Current balance in the ledger currency",
			nil,
			labels,
		),
	}
}

func (c *ChainCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.blocks
	ch <- c.valid
	ch <- c.balance
}

func (c *ChainCollector) Collect(ch chan<- prometheus.Metric) {
	valid := 0.0
	if c.chain.IsValid() {
		valid = 1
	}
	balance, _ := c.chain.BalanceAmount().Float64()

	ch <- prometheus.MustNewConstMetric(c.blocks, prometheus.GaugeValue, float64(c.chain.Len()))
	ch <- prometheus.MustNewConstMetric(c.valid, prometheus.GaugeValue, valid)
	ch <- prometheus.MustNewConstMetric(c.balance, prometheus.GaugeValue, balance)
}

func init() {
	RegisterCollectorFactory(func(chain ChainReader, extraParams ...interface{}) (prometheus.Collector, error) {
		return NewChainCollector(chain), nil
	})
}
