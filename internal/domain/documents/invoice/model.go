// Package invoice provides the Invoice document (faktura) and its proforma
// variant (predracun). Both share one model and lifecycle; the kind decides
// the number prefix and the public URL segment.
package invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fakturator/internal/core/apperror"
	"fakturator/internal/core/entity"
	"fakturator/internal/core/id"
	"fakturator/internal/core/types"
	"fakturator/internal/domain/billing"
)

// Kind distinguishes a final invoice from a non-binding proforma.
type Kind string

const (
	KindInvoice  Kind = "invoice"  // faktura
	KindProforma Kind = "proforma" // predracun
)

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	return k == KindInvoice || k == KindProforma
}

// NumberPrefix returns the numerator prefix encoded into document numbers.
func (k Kind) NumberPrefix() string {
	if k == KindProforma {
		return "PR"
	}
	return "FAK"
}

// PaymentMethod enumerates how an invoice is settled.
type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
)

// Invoice represents an invoice or proforma document.
//
// Totals are always recomputed from the lines, never hand-edited, and are
// persisted together with the lines in a single write.
type Invoice struct {
	entity.Document

	Kind Kind `db:"kind" json:"kind"`

	// DueDate is the payment deadline
	DueDate *time.Time `db:"due_date" json:"dueDate,omitempty"`

	// Counterparty (embedded; a small shop bills a handful of partners,
	// so the document carries the partner data it was issued with)
	CounterpartyName  string `db:"counterparty_name" json:"counterpartyName"`
	CounterpartyAddr  string `db:"counterparty_addr" json:"counterpartyAddress,omitempty"`
	CounterpartyTaxID string `db:"counterparty_tax_id" json:"counterpartyTaxId,omitempty"`
	CounterpartyRegID string `db:"counterparty_reg_id" json:"counterpartyRegId,omitempty"`

	PaymentMethod PaymentMethod `db:"payment_method" json:"paymentMethod"`

	// ShareToken is the opaque public access token.
	// Nil until sharing is explicitly requested.
	ShareToken *string `db:"share_token" json:"-"`

	// Totals (recomputed from lines, stored rounded)
	TotalNet   types.Money `db:"total_net" json:"totalNet"`
	TotalVAT   types.Money `db:"total_vat" json:"totalVat"`
	TotalGross types.Money `db:"total_gross" json:"totalGross"`

	// Table part: document lines
	Lines []Line `db:"-" json:"lines"`
}

// Line is one position of an invoice.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	Description string `db:"description" json:"description"`

	Quantity  types.Money `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
	VATRate   types.Money `db:"vat_rate" json:"vatRate"`

	// Derived amounts, stored rounded
	Net   types.Money `db:"net" json:"net"`
	VAT   types.Money `db:"vat" json:"vat"`
	Gross types.Money `db:"gross" json:"gross"`
}

// New creates a new draft invoice or proforma.
func New(kind Kind, counterpartyName string) *Invoice {
	return &Invoice{
		Document:         entity.NewDocument(),
		Kind:             kind,
		CounterpartyName: counterpartyName,
		PaymentMethod:    PaymentBankTransfer,
		TotalNet:         decimal.Zero,
		TotalVAT:         decimal.Zero,
		TotalGross:       decimal.Zero,
		Lines:            make([]Line, 0),
	}
}

// AddLine appends a line and recalculates document totals.
func (inv *Invoice) AddLine(description string, quantity, unitPrice, vatRate decimal.Decimal) error {
	totals, err := billing.Compute(quantity, unitPrice, vatRate)
	if err != nil {
		return err
	}

	rounded := totals.Rounded()
	inv.Lines = append(inv.Lines, Line{
		LineID:      id.New(),
		LineNo:      len(inv.Lines) + 1,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		VATRate:     vatRate,
		Net:         rounded.Net,
		VAT:         rounded.VAT,
		Gross:       rounded.Gross,
	})

	return inv.RecalculateTotals()
}

// RecalculateTotals recomputes all derived line amounts and document totals
// from the raw quantities and prices. Totals are summed at full precision
// and rounded once; the rounded identity TotalGross = TotalNet + TotalVAT
// holds to within one minor unit.
func (inv *Invoice) RecalculateTotals() error {
	lineTotals := make([]billing.LineTotals, 0, len(inv.Lines))
	for i := range inv.Lines {
		lt, err := billing.Compute(inv.Lines[i].Quantity, inv.Lines[i].UnitPrice, inv.Lines[i].VATRate)
		if err != nil {
			return err
		}
		rounded := lt.Rounded()
		inv.Lines[i].Net = rounded.Net
		inv.Lines[i].VAT = rounded.VAT
		inv.Lines[i].Gross = rounded.Gross
		inv.Lines[i].LineNo = i + 1
		lineTotals = append(lineTotals, lt)
	}

	totals := billing.Aggregate(lineTotals).Rounded()
	inv.TotalNet = totals.Net
	inv.TotalVAT = totals.VAT
	inv.TotalGross = totals.Gross
	return nil
}

// NonStandardRates returns VAT rates used by lines that fall outside the
// fixed rate set. Reported as an anomaly, never rejected.
func (inv *Invoice) NonStandardRates() []string {
	var rates []string
	seen := map[string]bool{}
	for _, line := range inv.Lines {
		key := line.VATRate.String()
		if !billing.IsStandardRate(line.VATRate) && !seen[key] {
			seen[key] = true
			rates = append(rates, key)
		}
	}
	return rates
}

// Validate implements entity.Validatable.
// Submission requires a counterparty name and at least one line with a
// description; a draft in an intermediate UI state is saved via drafts only.
func (inv *Invoice) Validate(ctx context.Context) error {
	if err := inv.Document.Validate(ctx); err != nil {
		return err
	}

	if !inv.Kind.IsValid() {
		return apperror.NewValidation("unknown document kind").
			WithDetail("field", "kind").
			WithDetail("value", string(inv.Kind))
	}

	if inv.CounterpartyName == "" {
		return apperror.NewValidation("counterparty name is required").
			WithDetail("field", "counterpartyName")
	}

	if len(inv.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range inv.Lines {
		if line.Description == "" {
			return apperror.NewValidation("line description is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity.Sign() <= 0 {
			return apperror.NewInvalidAmount("quantity", line.Quantity.String()).
				WithDetail("lineNo", i+1)
		}
		if line.UnitPrice.Sign() < 0 {
			return apperror.NewInvalidAmount("unitPrice", line.UnitPrice.String()).
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// HasShareToken reports whether a public token was generated for this document.
func (inv *Invoice) HasShareToken() bool {
	return inv.ShareToken != nil && *inv.ShareToken != ""
}
