package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultUnitRate is the price of one started minute.
var DefaultUnitRate = decimal.NewFromInt(10)

// DefaultCurrency is the label shown next to amounts.
const DefaultCurrency = "TL"

// Tariff prices a parking session per started minute.
type Tariff struct {
	UnitRate decimal.Decimal
	Currency string
}

// DefaultTariff returns the tariff used when nothing is configured.
func DefaultTariff() Tariff {
	return Tariff{UnitRate: DefaultUnitRate, Currency: DefaultCurrency}
}

// BillableMinutes rounds elapsed up to whole minutes at millisecond resolution.
// Every exit bills at least one minute, including a zero or negative elapsed
// time caused by clock skew between writers.
func BillableMinutes(elapsed time.Duration) int64 {
	ms := elapsed.Milliseconds()
	if ms <= 0 {
		return 1
	}
	minutes := ms / 60000
	if ms%60000 != 0 {
		minutes++
	}
	return minutes
}

// Price returns the billable minutes and the amount for elapsed.
func (t Tariff) Price(elapsed time.Duration) (int64, decimal.Decimal) {
	minutes := BillableMinutes(elapsed)
	return minutes, t.UnitRate.Mul(decimal.NewFromInt(minutes))
}
