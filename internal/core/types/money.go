// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors; intermediate
// computation keeps full precision and rounding happens once, at the
// persistence/presentation boundary.
type Money = decimal.Decimal

// MoneyScale is the number of fractional digits stored and displayed.
const MoneyScale = 2

// RoundingTolerance is the maximum acceptable drift between independently
// rounded amounts (one minor currency unit).
var RoundingTolerance = decimal.New(1, -MoneyScale) // 0.01

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// RoundMoney rounds to minor-unit precision using half-up rounding.
// Call only at the persistence or presentation boundary.
func RoundMoney(m Money) Money {
	return m.Round(MoneyScale)
}

// WithinTolerance reports whether two amounts differ by less than one
// minor currency unit. Used where the difference itself must be negligible,
// like balance checks.
func WithinTolerance(a, b Money) bool {
	return a.Sub(b).Abs().LessThan(RoundingTolerance)
}

// DriftWithinMinorUnit reports whether two amounts differ by at most one
// minor currency unit. Independently rounded amounts (net, vat, gross of
// one line) can legitimately drift by exactly 0.01.
func DriftWithinMinorUnit(a, b Money) bool {
	return a.Sub(b).Abs().LessThanOrEqual(RoundingTolerance)
}
