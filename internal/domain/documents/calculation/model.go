// Package calculation provides the periodic tax calculation document
// (obracun). Instead of line items it carries a gross turnover for the
// period; net base, VAT and profit tax are derived from it.
package calculation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fakturator/internal/core/apperror"
	"fakturator/internal/core/entity"
	"fakturator/internal/core/types"
	"fakturator/internal/domain/billing"
)

// NumberPrefix is the numerator prefix for calculation documents.
const NumberPrefix = "OBR"

// Calculation represents one periodic tax calculation.
type Calculation struct {
	entity.Document

	// Period is the label of the covered period, e.g. "Q1" or "januar".
	Period string `db:"period" json:"period"`
	Year   int    `db:"year" json:"year"`

	GrossTurnover types.Money `db:"gross_turnover" json:"grossTurnover"`
	VATRate       types.Money `db:"vat_rate" json:"vatRate"`

	// Derived amounts, stored rounded. Recomputed on every save.
	NetBase   types.Money `db:"net_base" json:"netBase"`
	VATAmount types.Money `db:"vat_amount" json:"vatAmount"`
	ProfitTax types.Money `db:"profit_tax" json:"profitTax"`

	ShareToken *string `db:"share_token" json:"-"`
}

// New creates a new draft calculation for the given period.
func New(period string, year int) *Calculation {
	return &Calculation{
		Document:      entity.NewDocument(),
		Period:        period,
		Year:          year,
		GrossTurnover: decimal.Zero,
		VATRate:       decimal.NewFromInt(20),
		NetBase:       decimal.Zero,
		VATAmount:     decimal.Zero,
		ProfitTax:     decimal.Zero,
	}
}

// Recalculate derives net base, VAT and profit tax from the gross turnover.
func (c *Calculation) Recalculate() error {
	result, err := billing.ReverseCalculate(c.GrossTurnover, c.VATRate)
	if err != nil {
		return err
	}
	rounded := result.Rounded()
	c.NetBase = rounded.NetBase
	c.VATAmount = rounded.VATAmount
	c.ProfitTax = rounded.ProfitTax
	return nil
}

// PeriodStart maps the document year to a reference date for numbering.
func (c *Calculation) PeriodStart() time.Time {
	return time.Date(c.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// Validate implements entity.Validatable.
func (c *Calculation) Validate(ctx context.Context) error {
	if err := c.Document.Validate(ctx); err != nil {
		return err
	}

	if c.Period == "" {
		return apperror.NewValidation("period is required").
			WithDetail("field", "period")
	}
	if c.Year < 2000 || c.Year > 2100 {
		return apperror.NewValidation("year is out of range").
			WithDetail("field", "year").
			WithDetail("value", c.Year)
	}
	if c.GrossTurnover.Sign() < 0 {
		return apperror.NewInvalidAmount("grossTurnover", c.GrossTurnover.String())
	}
	if c.VATRate.Sign() < 0 {
		return apperror.NewInvalidAmount("vatRate", c.VATRate.String())
	}

	return nil
}

// HasShareToken reports whether a public token was generated for this document.
func (c *Calculation) HasShareToken() bool {
	return c.ShareToken != nil && *c.ShareToken != ""
}
