package ledger

import "regexp"

// currencyPattern accepts an unsigned integer part and exactly two fractional digits.
var currencyPattern = regexp.MustCompile(`^\d+\.\d{2}$`)

// IsValidCurrency reports whether value is formatted as n.nn.
func IsValidCurrency(value string) bool {
	return currencyPattern.MatchString(value)
}
