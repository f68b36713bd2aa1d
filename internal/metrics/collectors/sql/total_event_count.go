package sql

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

const TotalEventCountQuery = `SELECT COUNT(*) FROM api.events`

// TotalEventCountCollector is a Prometheus collector that counts journaled ledger events
type TotalEventCountCollector struct {
	db              *sql.DB
	totalEventCount *prometheus.Desc
}

func NewTotalEventCountCollector(db *sql.DB) *TotalEventCountCollector {
	return &TotalEventCountCollector{
		db: db,
		totalEventCount: prometheus.NewDesc(
			prometheus.BuildFQName("adacoin", "journal_events", "total_count"),
			"Total journaled ledger event count",
			nil,
			prometheus.Labels{"source": "postgres"},
		),
	}
}

func (c *TotalEventCountCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalEventCount
}

func (c *TotalEventCountCollector) Collect(ch chan<- prometheus.Metric) {
	var count int64
	err := c.db.QueryRow(TotalEventCountQuery).Scan(&count)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.totalEventCount, err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.totalEventCount, prometheus.CounterValue, float64(count))
}

func init() {
	RegisterJournalCollector("events_total_count", func(db *sql.DB) (prometheus.Collector, error) {
		return NewTotalEventCountCollector(db), nil
	})
}
