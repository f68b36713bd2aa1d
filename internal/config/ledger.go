package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/manifest-network/adacoin/internal/ledger"
)

var validate = validator.New()

type LedgerConfig struct {
	CreditCeiling  string `validate:"required,numeric"`
	MaxAgeDays     uint   `validate:"gte=1"`
	CurrencySymbol string `validate:"required"`
}

func (c LedgerConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid ledger configuration: %w", err)
	}
	if !ledger.IsValidCurrency(c.CreditCeiling) {
		return fmt.Errorf("credit ceiling must be formatted as n.nn, got %q", c.CreditCeiling)
	}
	return nil
}

// Options converts the configuration into chain options. Call Validate first.
func (c LedgerConfig) Options() []ledger.Option {
	return []ledger.Option{
		ledger.WithCreditCeiling(decimal.RequireFromString(c.CreditCeiling)),
		ledger.WithMaxAgeDays(int(c.MaxAgeDays)),
		ledger.WithCurrencySymbol(c.CurrencySymbol),
	}
}

func LoadLedgerConfigFromCLI() LedgerConfig {
	return LedgerConfig{
		CreditCeiling:  viper.GetString("credit-ceiling"),
		MaxAgeDays:     viper.GetUint("max-age-days"),
		CurrencySymbol: viper.GetString("currency-symbol"),
	}
}
