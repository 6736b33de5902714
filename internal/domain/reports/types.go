// Package reports filters the document collection and produces aggregate
// totals. Summaries sum the totals persisted on each document; the line
// math is never re-run here.
package reports

import (
	"time"

	"fakturator/internal/core/entity"
	"fakturator/internal/core/id"
	"fakturator/internal/core/types"
)

// Period selects a calendar window relative to "now".
type Period string

const (
	PeriodAll           Period = "all"
	PeriodCurrentMonth  Period = "current_month"
	PeriodPreviousMonth Period = "previous_month"
	PeriodCurrentYear   Period = "current_year"
)

// IsValid reports whether p is a known period.
func (p Period) IsValid() bool {
	switch p {
	case PeriodAll, PeriodCurrentMonth, PeriodPreviousMonth, PeriodCurrentYear:
		return true
	}
	return false
}

// DocType classifies a row in the unified report view.
type DocType string

const (
	DocInvoice     DocType = "invoice"
	DocProforma    DocType = "proforma"
	DocCalculation DocType = "calculation"
)

// Query is one report request. All set predicates apply conjunctively.
type Query struct {
	Period     Period
	DocType    DocType       // empty matches all types
	Status     entity.Status // empty matches all statuses
	SearchText string        // matches counterparty name or document number
}

// DefaultQuery matches everything.
func DefaultQuery() Query {
	return Query{Period: PeriodAll}
}

// DocumentRow is the flattened report view of one document of any type.
// Amounts are the persisted document totals.
type DocumentRow struct {
	ID           id.ID         `db:"id" json:"id"`
	Number       string        `db:"number" json:"number"`
	DocType      DocType       `db:"doc_type" json:"docType"`
	Date         time.Time     `db:"date" json:"date"`
	Status       entity.Status `db:"status" json:"status"`
	Counterparty string        `db:"counterparty" json:"counterparty,omitempty"`

	TotalNet   types.Money `db:"total_net" json:"totalNet"`
	TotalVAT   types.Money `db:"total_vat" json:"totalVat"`
	TotalGross types.Money `db:"total_gross" json:"totalGross"`
}

// Totals is the aggregate over a filtered document set.
type Totals struct {
	Count      int         `json:"count"`
	TotalNet   types.Money `json:"totalNet"`
	TotalVAT   types.Money `json:"totalVat"`
	TotalGross types.Money `json:"totalGross"`
}
