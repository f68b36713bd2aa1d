package sql

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

// Rejections without an error kind were refused by policy, e.g. a credit above the ceiling.
const TotalRejectionCountQuery = `
	SELECT COALESCE(NULLIF(kind, ''), 'policy') AS kind, COUNT(*)
	FROM api.rejections
	GROUP BY 1
	ORDER BY 1`

// TotalRejectionCountCollector counts rejected blocks per error kind
type TotalRejectionCountCollector struct {
	db                  *sql.DB
	totalRejectedBlocks *prometheus.Desc
}

func NewTotalRejectionCountCollector(db *sql.DB) *TotalRejectionCountCollector {
	return &TotalRejectionCountCollector{
		db: db,
		totalRejectedBlocks: prometheus.NewDesc(
			prometheus.BuildFQName("adacoin", "journal_rejections", "total_count"),
			"Total rejected block count by error kind",
			[]string{"kind"},
			prometheus.Labels{"source": "postgres"},
		),
	}
}

func (c *TotalRejectionCountCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalRejectedBlocks
}

func (c *TotalRejectionCountCollector) Collect(ch chan<- prometheus.Metric) {
	rows, err := c.db.Query(TotalRejectionCountQuery)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.totalRejectedBlocks, err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var count int64
		if err := rows.Scan(&kind, &count); err != nil {
			ch <- prometheus.NewInvalidMetric(c.totalRejectedBlocks, err)
			return
		}
		ch <- prometheus.MustNewConstMetric(c.totalRejectedBlocks, prometheus.CounterValue, float64(count), kind)
	}
	if err := rows.Err(); err != nil {
		ch <- prometheus.NewInvalidMetric(c.totalRejectedBlocks, err)
	}
}

func init() {
	RegisterJournalCollector("rejections_total_count", func(db *sql.DB) (prometheus.Collector, error) {
		return NewTotalRejectionCountCollector(db), nil
	})
}
