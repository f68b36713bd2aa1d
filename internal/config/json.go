package config

import (
	"github.com/spf13/viper"
)

// JSONConfig selects the JSON event journal. An empty Output disables it.
type JSONConfig struct {
	Output string
}

func (c JSONConfig) Enabled() bool {
	return c.Output != ""
}

func LoadJSONConfigFromCLI() JSONConfig {
	return JSONConfig{
		Output: viper.GetString("json-out"),
	}
}
