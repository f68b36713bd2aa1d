package config

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/viper"
)

// PostgresConfig selects the PostgreSQL event journal. An empty ConnString disables it.
type PostgresConfig struct {
	ConnString string
	MaxConns   uint `validate:"gte=1"`
}

func (c PostgresConfig) Enabled() bool {
	return c.ConnString != ""
}

func (c PostgresConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid PostgreSQL configuration: %w", err)
	}

	_, err := pgxpool.ParseConfig(c.ConnString)
	if err != nil {
		return fmt.Errorf("failed to parse PostgreSQL connection string: %w", err)
	}

	return nil
}

func LoadPostgresConfigFromCLI() PostgresConfig {
	return PostgresConfig{
		ConnString: viper.GetString("postgres-conn"),
		MaxConns:   viper.GetUint("postgres-max-conns"),
	}
}
