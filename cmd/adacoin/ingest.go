package adacoin

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/manifest-network/adacoin/internal/config"
	"github.com/manifest-network/adacoin/internal/ledger"
	"github.com/manifest-network/adacoin/internal/metrics"
	"github.com/manifest-network/adacoin/internal/metrics/collectors"
	sqlcollectors "github.com/manifest-network/adacoin/internal/metrics/collectors/sql"
	"github.com/manifest-network/adacoin/internal/output"
	"github.com/manifest-network/adacoin/internal/output/postgresql"
	"github.com/manifest-network/adacoin/internal/output/redis"
	"github.com/manifest-network/adacoin/internal/wallet"
)

var IngestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Args:  cobra.ExactArgs(1),
	Short: "Append transactions from a JSON file to a chain",
	Long: `Read a JSON array of {"ts", "tid", "credit" | "debit"} records and append each one as a block.
Rejected records are logged and skipped. Ledger events can be journaled to JSON files, a TSV file,
PostgreSQL and a Redis stream at the same time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonConfig := config.LoadJSONConfigFromCLI()
		tsvConfig := config.LoadTSVConfigFromCLI()
		postgresConfig := config.LoadPostgresConfigFromCLI()
		if err := postgresConfig.Validate(); err != nil {
			return err
		}
		redisConfig := config.LoadRedisConfigFromCLI()
		if err := redisConfig.Validate(); err != nil {
			return err
		}
		metricsConfig := config.LoadMetricsConfigFromCLI()
		if err := metricsConfig.Validate(); err != nil {
			return err
		}

		records, err := readRecords(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		handleInterrupt(cancel)

		multi, pg, lastSeq, err := openJournal(ctx, jsonConfig, tsvConfig, postgresConfig, redisConfig)
		if err != nil {
			return err
		}

		var sink ledger.EventSink = ledger.SlogSink{}
		var journal *output.Journal
		if multi.Len() > 0 {
			defer func() {
				if err := multi.Close(); err != nil {
					slog.Error("Failed to close journal", "error", err)
				}
			}()
			journal = output.NewJournal(ctx, multi, lastSeq)
			sink = journal
		}

		w, err := newWallet(sink)
		if err != nil {
			return err
		}

		if metricsConfig.EnablePrometheus {
			cs, err := collectors.DefaultRegistry.CreateCollectors(w)
			if err != nil {
				return fmt.Errorf("failed to create chain collectors: %w", err)
			}
			if pg != nil {
				sqlCs, err := sqlcollectors.DefaultJournalRegistry.CreateJournalCollectors(stdlib.OpenDBFromPool(pg.GetPool()))
				if err != nil {
					return fmt.Errorf("failed to create journal collectors: %w", err)
				}
				cs = append(cs, sqlCs...)
			}
			server, err := metrics.CreateMetricsServer(metricsConfig.PrometheusAddr, cs...)
			if err != nil {
				return fmt.Errorf("failed to start metrics server: %w", err)
			}
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Failed to shut down metrics server", "error", err)
				}
			}()
		}

		slog.Info("Starting ingestion", "file", args[0], "records", len(records))
		rejected, err := ingest(ctx, w, records, viper.GetBool("generate-tid"))
		if err != nil {
			return err
		}
		slog.Info("Ingestion complete", "blocks", w.Len(), "rejected", rejected)

		if err := printSummary(w, rejected); err != nil {
			return err
		}
		if journal != nil && journal.Failures() > 0 {
			slog.Warn("Some ledger events were not journaled", "failures", journal.Failures(), "seq", journal.Seq())
		}

		if metricsConfig.EnablePrometheus {
			slog.Info("Serving metrics until interrupted", "addr", metricsConfig.PrometheusAddr)
			<-ctx.Done()
		}
		return nil
	},
}

func init() {
	IngestCmd.Flags().String("json-out", "", "Journal ledger events as JSON files under this directory")
	IngestCmd.Flags().String("tsv-out", "", "Journal ledger events to events.tsv under this directory")
	IngestCmd.Flags().String("postgres-conn", "", "Journal ledger events to this PostgreSQL database")
	IngestCmd.Flags().Uint("postgres-max-conns", 4, "Maximum PostgreSQL pool connections (advanced)")
	IngestCmd.Flags().String("redis-addr", "", "Journal ledger events to a stream on this Redis server (host:port)")
	IngestCmd.Flags().String("redis-stream", "adacoin:events", "Redis stream receiving ledger events")
	IngestCmd.Flags().Bool("generate-tid", false, "Assign a random transaction id to records without one")
	IngestCmd.Flags().Bool("enable-prometheus", false, "Enable Prometheus metrics server")
	IngestCmd.Flags().String("prometheus-addr", "0.0.0.0:2112", "Address and port of the Prometheus metrics server")

	if err := viper.BindPFlags(IngestCmd.Flags()); err != nil {
		slog.Error("Failed to bind IngestCmd flags", "error", err)
	}
}

// openJournal opens every enabled output and returns them as one handler, together with the
// PostgreSQL handler when there is one and the last sequence number already journaled by any of them.
func openJournal(ctx context.Context, jsonConfig config.JSONConfig, tsvConfig config.TSVConfig, postgresConfig config.PostgresConfig, redisConfig config.RedisConfig) (*output.MultiHandler, *postgresql.PostgresOutputHandler, uint64, error) {
	var (
		handlers []output.OutputHandler
		pg       *postgresql.PostgresOutputHandler
	)
	fail := func(err error) (*output.MultiHandler, *postgresql.PostgresOutputHandler, uint64, error) {
		if closeErr := output.NewMultiHandler(handlers...).Close(); closeErr != nil {
			slog.Error("Failed to close journal", "error", closeErr)
		}
		return nil, nil, 0, err
	}

	if jsonConfig.Enabled() {
		h, err := output.NewJSONOutputHandler(jsonConfig.Output)
		if err != nil {
			return fail(fmt.Errorf("failed to create JSON output handler: %w", err))
		}
		handlers = append(handlers, h)
	}
	if tsvConfig.Enabled() {
		h, err := output.NewTSVOutputHandler(tsvConfig.Output)
		if err != nil {
			return fail(fmt.Errorf("failed to create TSV output handler: %w", err))
		}
		handlers = append(handlers, h)
	}
	if postgresConfig.Enabled() {
		h, err := postgresql.NewPostgresOutputHandler(postgresConfig.ConnString, postgresConfig.MaxConns)
		if err != nil {
			return fail(fmt.Errorf("failed to create PostgreSQL output handler: %w", err))
		}
		handlers = append(handlers, h)
		pg = h
	}
	if redisConfig.Enabled() {
		h, err := redis.NewRedisOutputHandler(ctx, redisConfig.Addr, redisConfig.Stream)
		if err != nil {
			return fail(fmt.Errorf("failed to create Redis output handler: %w", err))
		}
		handlers = append(handlers, h)
	}

	multi := output.NewMultiHandler(handlers...)
	lastSeq, err := multi.GetLatestSeq(ctx)
	if err != nil {
		return fail(fmt.Errorf("failed to read the journal position: %w", err))
	}
	if lastSeq > 0 {
		slog.Info("Resuming journal", "seq", lastSeq)
	}
	return multi, pg, lastSeq, nil
}

// readRecords loads the mapping form of each transaction, plus its "ts" key. Field values are
// checked per record by recordFields, so one malformed record does not fail the whole file.
func readRecords(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return records, nil
}

var recordKeys = []string{"ts", "tid", "credit", "debit"}

// recordFields returns the string fields of a record. A null value counts as absent; any other
// non-string value makes the record unusable.
func recordFields(record map[string]any) (map[string]string, error) {
	fields := make(map[string]string, len(recordKeys))
	for _, key := range recordKeys {
		switch v := record[key].(type) {
		case nil:
		case string:
			fields[key] = v
		default:
			return nil, fmt.Errorf("field %q must be a string, got %T", key, v)
		}
	}
	return fields, nil
}

// ingest appends every record to w and returns how many were rejected. Rejections are not errors;
// only cancellation stops the loop.
func ingest(ctx context.Context, w *wallet.Wallet, records []map[string]any, generateTID bool) (int, error) {
	var bar *progressbar.ProgressBar
	if len(records) > 1 {
		bar = progressbar.NewOptions(
			len(records),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetDescription("Appending blocks..."),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		if err := bar.RenderBlank(); err != nil {
			return 0, fmt.Errorf("failed to render progress bar: %w", err)
		}
	}

	rejected := 0
	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return rejected, fmt.Errorf("ingestion interrupted at record %d: %w", i, err)
		}

		if fields, err := recordFields(record); err != nil {
			rejected++
			slog.Warn("Record rejected", "index", i, "error", err)
		} else {
			tx := ledger.TransactionFromMap(fields)
			if tx.ID() == "" && generateTID {
				tid := uuid.NewString()
				tx.TID = &tid
			}

			if err := w.Add(fields["ts"], tx); err != nil {
				rejected++
				attrs := []any{"index", i, "ts", fields["ts"], "tid", tx.ID(), "error", err}
				if kind, ok := ledger.KindOf(err); ok {
					attrs = append(attrs, "kind", string(kind))
				}
				slog.Warn("Block rejected", attrs...)
			} else {
				slog.Debug("Block added", "index", i, "ts", fields["ts"], "tid", tx.ID())
			}
		}

		if bar != nil {
			if err := bar.Add(1); err != nil {
				return rejected, fmt.Errorf("failed to update progress bar: %w", err)
			}
		}
	}

	if bar != nil {
		if err := bar.Finish(); err != nil {
			return rejected, fmt.Errorf("failed to finish progress bar: %w", err)
		}
	}
	return rejected, nil
}

// handleInterrupt handles interrupt signals for graceful shutdown.
func handleInterrupt(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		slog.Info("Received interrupt signal, shutting down...")
		cancel()
	}()
}
