package adacoin

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/manifest-network/adacoin/internal/config"
	"github.com/manifest-network/adacoin/internal/ledger"
	"github.com/manifest-network/adacoin/internal/wallet"
)

var (
	validLogLevels = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	validLogLevelsStr = strings.Join(slices.Sorted(maps.Keys(validLogLevels)), "|")
)

var RootCmd = &cobra.Command{
	Use:   "adacoin",
	Short: "Hash-linked ledger",
	Long:  `adacoin records credits and debits in a tamper-evident, hash-linked chain of blocks.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := viper.GetString("logLevel")
		if err := setLogLevel(logLevel); err != nil {
			return err
		}
		slog.Debug("Application started", "version", Version)
		return nil
	},
}

// setLogLevel sets the log level
func setLogLevel(logLevel string) error {
	level, exists := validLogLevels[logLevel]
	if !exists {
		return fmt.Errorf("invalid log level: %s. Valid log levels are: %s", logLevel, validLogLevelsStr)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// newWallet builds a wallet from the ledger flags, reporting events to sink.
func newWallet(sink ledger.EventSink) (*wallet.Wallet, error) {
	ledgerConfig := config.LoadLedgerConfigFromCLI()
	if err := ledgerConfig.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("Command-line arguments", "ledgerConfig", ledgerConfig)

	return wallet.New(append(ledgerConfig.Options(), ledger.WithSink(sink))...), nil
}

func init() {
	RootCmd.PersistentFlags().StringP("logLevel", "l", "info", fmt.Sprintf("set log level (%s)", validLogLevelsStr))
	RootCmd.PersistentFlags().String("credit-ceiling", ledger.DefaultCreditCeiling.StringFixed(2), "Largest accepted credit (n.nn)")
	RootCmd.PersistentFlags().Uint("max-age-days", ledger.DefaultMaxAgeDays, "Oldest accepted block date, in days")
	RootCmd.PersistentFlags().String("currency-symbol", ledger.DefaultCurrencySymbol, "Currency symbol used to format balances")
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		slog.Error("Failed to bind rootCmd flags", "error", err)
	}

	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true

	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.adacoin")
	viper.AddConfigPath("/etc/adacoin")

	viper.SetEnvPrefix("adacoin")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(demoCmd)
	RootCmd.AddCommand(IngestCmd)
	RootCmd.AddCommand(currencyCmd)
	RootCmd.AddCommand(dateCmd)
	RootCmd.AddCommand(exportTSVCmd)
	RootCmd.AddCommand(exportXLSXCmd)
}

// Execute runs the root command.
func Execute() {
	if err := viper.ReadInConfig(); err == nil {
		slog.Info("Using config file", "file", viper.ConfigFileUsed())
	} else {
		slog.Info("No config file found")
	}

	if err := RootCmd.Execute(); err != nil {
		slog.Error("An error occurred", "error", err)
		os.Exit(1)
	}
}
