package config

import (
	"github.com/spf13/viper"
)

// TSVConfig selects the TSV event journal. An empty Output disables it.
type TSVConfig struct {
	Output string
}

func (c TSVConfig) Enabled() bool {
	return c.Output != ""
}

func LoadTSVConfigFromCLI() TSVConfig {
	return TSVConfig{
		Output: viper.GetString("tsv-out"),
	}
}
