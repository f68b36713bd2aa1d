package config

import (
	"fmt"
	"net"

	"github.com/spf13/viper"
)

// RedisConfig selects the Redis stream journal. An empty Addr disables it.
type RedisConfig struct {
	Addr   string
	Stream string `validate:"required_with=Addr"`
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

func (c RedisConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid Redis configuration: %w", err)
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("invalid Redis address %q: %w", c.Addr, err)
	}
	return nil
}

func LoadRedisConfigFromCLI() RedisConfig {
	return RedisConfig{
		Addr:   viper.GetString("redis-addr"),
		Stream: viper.GetString("redis-stream"),
	}
}
