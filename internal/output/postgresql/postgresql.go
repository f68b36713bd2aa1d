package postgresql

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/manifest-network/adacoin/internal/models"
)

//go:embed migrations/*
var migrationsFS embed.FS

type PostgresOutputHandler struct {
	pool *pgxpool.Pool
}

func (h *PostgresOutputHandler) GetPool() *pgxpool.Pool {
	return h.pool
}

func NewPostgresOutputHandler(connString string, maxConns uint) (*PostgresOutputHandler, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL connection string: %w", err)
	}

	if maxConns > math.MaxInt32 {
		return nil, fmt.Errorf("max connections exceeds maximum int32 value")
	}
	config.MaxConns = int32(maxConns)

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	handler := &PostgresOutputHandler{
		pool: pool,
	}

	// Run migrations. This is idempotent.
	if err = handler.runMigrations(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return handler, nil
}

// GetLatestEvent returns the event with the highest sequence number, or nil when the journal is empty.
func (h *PostgresOutputHandler) GetLatestEvent(ctx context.Context) (*models.Event, error) {
	var event models.Event
	err := h.pool.QueryRow(ctx, `
		SELECT seq, type
		FROM api.events
		ORDER BY seq DESC
		LIMIT 1
	`).Scan(&event.Seq, &event.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No rows found
		}
		return nil, fmt.Errorf("failed to get the latest event: %w", err)
	}
	return &event, nil
}

// GetLatestSeq returns the sequence number of the latest event, or 0 when the journal is empty.
func (h *PostgresOutputHandler) GetLatestSeq(ctx context.Context) (uint64, error) {
	event, err := h.GetLatestEvent(ctx)
	if err != nil || event == nil {
		return 0, err
	}
	return event.Seq, nil
}

func (h *PostgresOutputHandler) WriteEvent(ctx context.Context, event *models.Event) error {
	_, err := h.pool.Exec(ctx, `
		INSERT INTO api.events (seq, type, data) VALUES ($1, $2, $3)
		ON CONFLICT (seq) DO UPDATE SET type = EXCLUDED.type, data = EXCLUDED.data;
	`, event.Seq, event.Type, event.Data)
	if err != nil {
		return fmt.Errorf("failed to write ledger event: %w", err)
	}
	return nil
}

func (h *PostgresOutputHandler) runMigrations() error {
	slog.Info("Running PostgreSQL migrations...")

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := migratepgx.WithInstance(stdlib.OpenDBFromPool(h.pool), &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (h *PostgresOutputHandler) Close() error {
	slog.Info("Closing PostgreSQL connection pool")
	h.pool.Close()
	slog.Info("PostgreSQL connection pool closed")
	return nil
}
