package utils

import (
	"github.com/shopspring/decimal"
)

// AmountPrecision is the number of fraction digits shown for parking amounts.
const AmountPrecision = 2

// FormatAmount renders amount with currency, e.g. "80.00 TL".
func FormatAmount(amount decimal.Decimal, currency string) string {
	s := amount.StringFixed(AmountPrecision)
	if currency == "" {
		return s
	}
	return s + " " + currency
}
