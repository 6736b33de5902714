// Package billing provides the pure tax computation functions for
// commercial documents: per-line totals, document aggregation and
// reverse VAT derivation from gross turnover.
//
// All functions are deterministic, side-effect free and safe for
// concurrent use. Amounts are decimal; full precision is kept internally
// and rounding happens once, at the persistence boundary.
package billing

import (
	"github.com/shopspring/decimal"

	"fakturator/internal/core/apperror"
	"fakturator/internal/core/types"
)

// Standard VAT rates (percent). Other rates compute normally but are a
// reportable anomaly, not a computation error.
var standardVATRates = []decimal.Decimal{
	decimal.Zero,
	decimal.NewFromInt(10),
	decimal.NewFromInt(20),
}

var hundred = decimal.NewFromInt(100)

// IsStandardRate reports whether rate belongs to the fixed VAT rate set.
func IsStandardRate(rate decimal.Decimal) bool {
	for _, r := range standardVATRates {
		if rate.Equal(r) {
			return true
		}
	}
	return false
}

// LineTotals holds the computed amounts for a single document line.
type LineTotals struct {
	Net   types.Money `json:"net"`
	VAT   types.Money `json:"vat"`
	Gross types.Money `json:"gross"`
}

// Compute calculates net, VAT and gross for one line.
//
//	net   = quantity * unitPrice
//	vat   = net * rate / 100
//	gross = net + vat
//
// Quantity must be positive and unitPrice non-negative; violations surface
// as InvalidAmount, never as clamped values.
func Compute(quantity, unitPrice, vatRate decimal.Decimal) (LineTotals, error) {
	if quantity.Sign() <= 0 {
		return LineTotals{}, apperror.NewInvalidAmount("quantity", quantity.String()).
			WithDetail("reason", "quantity must be positive")
	}
	if unitPrice.Sign() < 0 {
		return LineTotals{}, apperror.NewInvalidAmount("unitPrice", unitPrice.String())
	}

	net := quantity.Mul(unitPrice)
	vat := net.Mul(vatRate).Div(hundred)

	return LineTotals{
		Net:   net,
		VAT:   vat,
		Gross: net.Add(vat),
	}, nil
}

// DocumentTotals holds the aggregated amounts of a document.
type DocumentTotals struct {
	Net   types.Money `json:"net"`
	VAT   types.Money `json:"vat"`
	Gross types.Money `json:"gross"`
}

// Aggregate sums per-line totals into document totals.
// An empty list yields all zeros; a draft may be saved without lines.
// Summing before rounding keeps Gross = Net + VAT exact.
func Aggregate(lines []LineTotals) DocumentTotals {
	totals := DocumentTotals{
		Net:   decimal.Zero,
		VAT:   decimal.Zero,
		Gross: decimal.Zero,
	}
	for _, line := range lines {
		totals.Net = totals.Net.Add(line.Net)
		totals.VAT = totals.VAT.Add(line.VAT)
		totals.Gross = totals.Gross.Add(line.Gross)
	}
	return totals
}

// Rounded returns totals rounded to minor-unit precision for persistence.
func (t DocumentTotals) Rounded() DocumentTotals {
	return DocumentTotals{
		Net:   types.RoundMoney(t.Net),
		VAT:   types.RoundMoney(t.VAT),
		Gross: types.RoundMoney(t.Gross),
	}
}

// Rounded returns line totals rounded to minor-unit precision.
func (t LineTotals) Rounded() LineTotals {
	return LineTotals{
		Net:   types.RoundMoney(t.Net),
		VAT:   types.RoundMoney(t.VAT),
		Gross: types.RoundMoney(t.Gross),
	}
}
