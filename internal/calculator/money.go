package calculator

import "github.com/shopspring/decimal"

// Tolerance is the smallest magnitude a balance must exceed to count as owed.
var Tolerance = decimal.New(1, -2)

// RoundCents rounds an amount to the nearest cent, half away from zero.
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// IsSettled reports whether an amount is within one cent of zero.
func IsSettled(amount decimal.Decimal) bool {
	return RoundCents(amount).Abs().LessThanOrEqual(Tolerance)
}
