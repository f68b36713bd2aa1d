package metrics_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/manifest-network/adacoin/internal/metrics"
	"github.com/manifest-network/adacoin/internal/metrics/collectors"
	sqlcollectors "github.com/manifest-network/adacoin/internal/metrics/collectors/sql"
)

type stubChain struct {
	blocks  int
	valid   bool
	balance decimal.Decimal
}

func (s stubChain) Len() int                       { return s.blocks }
func (s stubChain) IsValid() bool                  { return s.valid }
func (s stubChain) BalanceAmount() decimal.Decimal { return s.balance }

func shutdown(t *testing.T, server interface{ Shutdown(context.Context) error }) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))
}

func TestCreateMetricsServer(t *testing.T) {
	t.Run("StartServer", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		// Collectors are gathered concurrently.
		mock.MatchExpectationsInOrder(false)
		mock.ExpectQuery(regexp.QuoteMeta(sqlcollectors.TotalEventCountQuery)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(28))
		mock.ExpectQuery(regexp.QuoteMeta(sqlcollectors.TotalRejectionCountQuery)).
			WillReturnRows(sqlmock.NewRows([]string{"kind", "count"}).AddRow("D01", 3).AddRow("policy", 1))

		cs, err := sqlcollectors.DefaultJournalRegistry.CreateJournalCollectors(db)
		require.NoError(t, err)
		chainCollectors, err := collectors.DefaultRegistry.CreateCollectors(stubChain{blocks: 4, valid: true, balance: decimal.RequireFromString("23.96")})
		require.NoError(t, err)
		cs = append(cs, chainCollectors...)

		server, err := metrics.CreateMetricsServer("127.0.0.1:0", cs...)
		require.NoError(t, err)
		defer shutdown(t, server)

		resp, err := resty.New().SetTimeout(time.Second).R().Get("http://" + server.Addr + "/metrics")
		require.NoError(t, err, "Failed to connect to metrics server")
		require.Equal(t, 200, resp.StatusCode(), "Expected status code 200: %s", resp.String())

		body := resp.String()
		require.Contains(t, body, `adacoin_journal_events_total_count{source="postgres"} 28`)
		require.Contains(t, body, `adacoin_journal_rejections_total_count{kind="D01",source="postgres"} 3`)
		require.Contains(t, body, `adacoin_journal_rejections_total_count{kind="policy",source="postgres"} 1`)
		require.Contains(t, body, `adacoin_chain_blocks{source="memory"} 4`)
		require.Contains(t, body, `adacoin_chain_valid{source="memory"} 1`)
		require.Contains(t, body, `adacoin_chain_balance{source="memory"} 23.96`)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("WhenInvalidAddress", func(t *testing.T) {
		_, err := metrics.CreateMetricsServer("invalid-address😆")
		require.Error(t, err)
	})

	t.Run("WhenInvalidPort", func(t *testing.T) {
		_, err := metrics.CreateMetricsServer("localhost:99999")
		require.Error(t, err)
	})

	t.Run("WhenDuplicateCollector", func(t *testing.T) {
		c := collectors.NewChainCollector(stubChain{})
		_, err := metrics.CreateMetricsServer("127.0.0.1:0", c, c)
		require.Error(t, err)
	})

	t.Run("ValidPort", func(t *testing.T) {
		server, err := metrics.CreateMetricsServer("127.0.0.1:0")
		require.NoError(t, err)
		defer shutdown(t, server)
	})
}

func TestChainCollector(t *testing.T) {
	c := collectors.NewChainCollector(stubChain{blocks: 1, valid: false, balance: decimal.Zero})
	registry := prometheus.NewPedanticRegistry()
	require.NoError(t, registry.Register(c))

	families, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, families, 3)

	values := map[string]float64{}
	for _, f := range families {
		values[f.GetName()] = f.GetMetric()[0].GetGauge().GetValue()
	}
	require.Equal(t, 1.0, values["adacoin_chain_blocks"])
	require.Equal(t, 0.0, values["adacoin_chain_valid"])
	require.Equal(t, 0.0, values["adacoin_chain_balance"])
}

func TestRegistriesRejectNil(t *testing.T) {
	_, err := sqlcollectors.DefaultJournalRegistry.CreateJournalCollectors(nil)
	require.Error(t, err)

	_, err = collectors.DefaultRegistry.CreateCollectors(nil)
	require.Error(t, err)
}

func TestJournalRegistry(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cs, err := sqlcollectors.DefaultJournalRegistry.CreateJournalCollectors(db)
	require.NoError(t, err)
	require.Len(t, cs, 2)

	r := sqlcollectors.NewJournalRegistry()
	r.Register("events", func(db *sql.DB) (prometheus.Collector, error) {
		return sqlcollectors.NewTotalEventCountCollector(db), nil
	})
	r.Register("broken", func(*sql.DB) (prometheus.Collector, error) {
		return nil, errors.New("boom")
	})
	_, err = r.CreateJournalCollectors(db)
	require.ErrorContains(t, err, `failed to create journal collector "broken": boom`)
}
