// Package money provides rounding-safe helpers for currency amounts.
//
// Amounts are shopspring decimals carried at full precision and rounded only
// at currency boundaries. The minor unit is fixed at two decimal places
// (cents); splitting never loses or invents a cent.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MinorUnitPlaces is the number of decimal places of the currency minor unit.
const MinorUnitPlaces = 2

// Truncate cuts an amount down to the currency minor unit.
func Truncate(amount decimal.Decimal) decimal.Decimal {
	return amount.Truncate(MinorUnitPlaces)
}

// Split divides total into n parts. Each part is truncated to the minor
// unit and the residual is added to the last part, so the parts always sum
// exactly to total. n must be at least 1.
func Split(total decimal.Decimal, n int) []decimal.Decimal {
	share := total.Div(decimal.NewFromInt(int64(n))).Truncate(MinorUnitPlaces)
	parts := make([]decimal.Decimal, n)
	running := decimal.Zero
	for i := 0; i < n-1; i++ {
		parts[i] = share
		running = running.Add(share)
	}
	parts[n-1] = total.Sub(running)
	return parts
}

// FromMinorUnits converts an integer count of minor units (cents) to an amount.
func FromMinorUnits(units int64) decimal.Decimal {
	return decimal.New(units, -MinorUnitPlaces)
}

// ToMinorUnits converts an amount to its integer count of minor units,
// truncating any sub-cent precision.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Truncate(MinorUnitPlaces).Shift(MinorUnitPlaces).IntPart()
}

// Format renders an amount at minor-unit precision with an optional
// currency code, e.g. "1234.50 EUR".
func Format(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return amount.StringFixed(MinorUnitPlaces)
	}
	return fmt.Sprintf("%s %s", amount.StringFixed(MinorUnitPlaces), currency)
}
