// Package balance validates double-entry balance sheets.
//
// The validator is a pure read-time computation: it sums the asset,
// liability and equity trees and reports whether the accounting equality
// holds within rounding tolerance. Imbalance is a reported boolean, never
// an error; the caller decides how to surface it.
package balance

import (
	"time"

	"github.com/shopspring/decimal"

	"fakturator/internal/core/types"
)

// CurrentAssets groups short-term asset positions.
type CurrentAssets struct {
	Cash               types.Money `json:"cash"`
	AccountsReceivable types.Money `json:"accountsReceivable"`
	Inventory          types.Money `json:"inventory"`
	Other              types.Money `json:"other"`
}

// FixedAssets groups long-term asset positions.
type FixedAssets struct {
	Equipment types.Money `json:"equipment"`
	Buildings types.Money `json:"buildings"`
	Land      types.Money `json:"land"`
	Other     types.Money `json:"other"`
}

// Assets is the asset side of the sheet.
type Assets struct {
	Current CurrentAssets `json:"currentAssets"`
	Fixed   FixedAssets   `json:"fixedAssets"`
}

// CurrentLiabilities groups short-term obligations.
type CurrentLiabilities struct {
	AccountsPayable types.Money `json:"accountsPayable"`
	ShortTermLoans  types.Money `json:"shortTermLoans"`
	TaxesPayable    types.Money `json:"taxesPayable"`
	Other           types.Money `json:"other"`
}

// LongTermLiabilities groups long-term obligations.
type LongTermLiabilities struct {
	BankLoans types.Money `json:"bankLoans"`
	Leases    types.Money `json:"leases"`
	Other     types.Money `json:"other"`
}

// Liabilities is the liability side of the sheet.
type Liabilities struct {
	Current  CurrentLiabilities  `json:"currentLiabilities"`
	LongTerm LongTermLiabilities `json:"longTermLiabilities"`
}

// Equity groups owner capital positions.
type Equity struct {
	OwnerEquity             types.Money `json:"ownerEquity"`
	RetainedEarnings        types.Money `json:"retainedEarnings"`
	AdditionalPaidInCapital types.Money `json:"additionalPaidInCapital"`
}

// Snapshot is a balance sheet at a point in time.
// Leaf values are expected to be non-negative currency amounts; the
// validator only sums them, it does not enforce signs.
type Snapshot struct {
	Date        time.Time   `json:"date"`
	Assets      Assets      `json:"assets"`
	Liabilities Liabilities `json:"liabilities"`
	Equity      Equity      `json:"equity"`
}

// Summary holds the computed totals and the equality check result.
type Summary struct {
	TotalAssets               types.Money `json:"totalAssets"`
	TotalLiabilities          types.Money `json:"totalLiabilities"`
	TotalEquity               types.Money `json:"totalEquity"`
	TotalLiabilitiesAndEquity types.Money `json:"totalLiabilitiesAndEquity"`
	IsBalanced                bool        `json:"isBalanced"`
}

func sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Validate computes the totals of a snapshot and checks the accounting
// equality |assets - (liabilities + equity)| < 0.01.
// Never fails: imbalance is reported, not raised.
func Validate(s Snapshot) Summary {
	totalAssets := sum(
		s.Assets.Current.Cash,
		s.Assets.Current.AccountsReceivable,
		s.Assets.Current.Inventory,
		s.Assets.Current.Other,
		s.Assets.Fixed.Equipment,
		s.Assets.Fixed.Buildings,
		s.Assets.Fixed.Land,
		s.Assets.Fixed.Other,
	)

	totalLiabilities := sum(
		s.Liabilities.Current.AccountsPayable,
		s.Liabilities.Current.ShortTermLoans,
		s.Liabilities.Current.TaxesPayable,
		s.Liabilities.Current.Other,
		s.Liabilities.LongTerm.BankLoans,
		s.Liabilities.LongTerm.Leases,
		s.Liabilities.LongTerm.Other,
	)

	totalEquity := sum(
		s.Equity.OwnerEquity,
		s.Equity.RetainedEarnings,
		s.Equity.AdditionalPaidInCapital,
	)

	liabilitiesAndEquity := totalLiabilities.Add(totalEquity)

	return Summary{
		TotalAssets:               totalAssets,
		TotalLiabilities:          totalLiabilities,
		TotalEquity:               totalEquity,
		TotalLiabilitiesAndEquity: liabilitiesAndEquity,
		IsBalanced:                types.WithinTolerance(totalAssets, liabilitiesAndEquity),
	}
}
