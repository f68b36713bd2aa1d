package config

import (
	"fmt"
	"net"

	"github.com/spf13/viper"
)

type MetricsConfig struct {
	EnablePrometheus bool
	PrometheusAddr   string `validate:"required_if=EnablePrometheus true"`
}

func (c MetricsConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid metrics configuration: %w", err)
	}
	if !c.EnablePrometheus {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.PrometheusAddr); err != nil {
		return fmt.Errorf("invalid Prometheus address %q: %w", c.PrometheusAddr, err)
	}
	return nil
}

func LoadMetricsConfigFromCLI() MetricsConfig {
	return MetricsConfig{
		EnablePrometheus: viper.GetBool("enable-prometheus"),
		PrometheusAddr:   viper.GetString("prometheus-addr"),
	}
}
