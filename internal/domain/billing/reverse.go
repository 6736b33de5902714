package billing

import (
	"github.com/shopspring/decimal"

	"fakturator/internal/core/apperror"
	"fakturator/internal/core/types"
)

// ProfitTaxRate is the flat profit tax applied to the net base of a
// periodic calculation. A policy constant, not user-configurable.
var ProfitTaxRate = decimal.RequireFromString("0.15")

// reverseDivisionPrecision bounds the non-terminating division when
// deriving the net base (e.g. gross / 1.2).
const reverseDivisionPrecision = 8

// ReverseResult holds the amounts derived from a known gross turnover.
type ReverseResult struct {
	NetBase   types.Money `json:"netBase"`
	VATAmount types.Money `json:"vatAmount"`
	ProfitTax types.Money `json:"profitTax"`
}

// ReverseCalculate derives the net base and VAT from gross turnover for a
// periodic tax calculation (obracun).
//
//	netBase   = gross / (1 + rate/100)
//	vatAmount = gross - netBase
//	profitTax = netBase * 0.15
//
// A zero rate means netBase == gross and zero VAT. Negative turnover is an
// input error, not a computation.
func ReverseCalculate(grossTurnover, vatRatePercent decimal.Decimal) (ReverseResult, error) {
	if grossTurnover.Sign() < 0 {
		return ReverseResult{}, apperror.NewInvalidAmount("grossTurnover", grossTurnover.String())
	}

	var netBase decimal.Decimal
	if vatRatePercent.IsZero() {
		netBase = grossTurnover
	} else {
		divisor := decimal.NewFromInt(1).Add(vatRatePercent.Div(hundred))
		netBase = grossTurnover.DivRound(divisor, reverseDivisionPrecision)
	}

	return ReverseResult{
		NetBase:   netBase,
		VATAmount: grossTurnover.Sub(netBase),
		ProfitTax: netBase.Mul(ProfitTaxRate),
	}, nil
}

// Rounded returns the result rounded to minor-unit precision.
func (r ReverseResult) Rounded() ReverseResult {
	return ReverseResult{
		NetBase:   types.RoundMoney(r.NetBase),
		VATAmount: types.RoundMoney(r.VATAmount),
		ProfitTax: types.RoundMoney(r.ProfitTax),
	}
}
