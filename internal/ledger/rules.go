package ledger

import (
	"github.com/shopspring/decimal"
)

const (
	DefaultMaxAgeDays     = 180
	DefaultCurrencySymbol = "£"
)

// DefaultCreditCeiling is the largest credit a single transaction may carry.
var DefaultCreditCeiling = decimal.RequireFromString("1000.00")

// Rules is the policy a chain applies to its blocks.
type Rules struct {
	CreditCeiling  decimal.Decimal
	MaxAgeDays     int
	CurrencySymbol string
	Timestamps     *TimestampService
}

// DefaultRules returns the stock policy reading the system clock.
func DefaultRules() *Rules {
	return &Rules{
		CreditCeiling:  DefaultCreditCeiling,
		MaxAgeDays:     DefaultMaxAgeDays,
		CurrencySymbol: DefaultCurrencySymbol,
		Timestamps:     NewTimestampService(nil, nil),
	}
}

// Money is an amount in the ledger currency.
type Money struct {
	Amount decimal.Decimal
	Symbol string
}

// String renders the amount with two decimals behind the symbol, with the sign in front: -£12.34.
func (m Money) String() string {
	if m.Amount.IsNegative() {
		return "-" + m.Symbol + m.Amount.Neg().StringFixed(2)
	}
	return m.Symbol + m.Amount.StringFixed(2)
}
