package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"fakturator/internal/domain/documents/calculation"
)

// --- Request DTOs ---

// CreateCalculationRequest represents a request to create a tax calculation.
type CreateCalculationRequest struct {
	Period        string           `json:"period" binding:"required"`
	Year          int              `json:"year" binding:"required"`
	Date          *time.Time       `json:"date,omitempty"`
	GrossTurnover decimal.Decimal  `json:"grossTurnover"`
	VATRate       *decimal.Decimal `json:"vatRate,omitempty"`
	Note          string           `json:"note,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreateCalculationRequest) ToEntity() *calculation.Calculation {
	doc := calculation.New(r.Period, r.Year)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.GrossTurnover = r.GrossTurnover
	if r.VATRate != nil {
		doc.VATRate = *r.VATRate
	}
	doc.Note = r.Note
	return doc
}

// UpdateCalculationRequest represents a request to update a tax calculation.
type UpdateCalculationRequest struct {
	Period        *string          `json:"period,omitempty"`
	Year          *int             `json:"year,omitempty"`
	Date          *time.Time       `json:"date,omitempty"`
	GrossTurnover *decimal.Decimal `json:"grossTurnover,omitempty"`
	VATRate       *decimal.Decimal `json:"vatRate,omitempty"`
	Note          *string          `json:"note,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateCalculationRequest) ApplyTo(doc *calculation.Calculation) {
	if r.Period != nil {
		doc.Period = *r.Period
	}
	if r.Year != nil {
		doc.Year = *r.Year
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.GrossTurnover != nil {
		doc.GrossTurnover = *r.GrossTurnover
	}
	if r.VATRate != nil {
		doc.VATRate = *r.VATRate
	}
	if r.Note != nil {
		doc.Note = *r.Note
	}
}

// --- Response DTOs ---

// CalculationResponse represents a tax calculation in API responses.
type CalculationResponse struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	Period        string          `json:"period"`
	Year          int             `json:"year"`
	Date          time.Time       `json:"date"`
	Status        string          `json:"status"`
	GrossTurnover decimal.Decimal `json:"grossTurnover"`
	VATRate       decimal.Decimal `json:"vatRate"`
	NetBase       decimal.Decimal `json:"netBase"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
	ProfitTax     decimal.Decimal `json:"profitTax"`
	Note          string          `json:"note,omitempty"`
	Shared        bool            `json:"shared"`
	Version       int             `json:"version"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// FromCalculation creates response from domain calculation.
func FromCalculation(doc *calculation.Calculation) *CalculationResponse {
	return &CalculationResponse{
		ID:            doc.ID.String(),
		Number:        doc.Number,
		Period:        doc.Period,
		Year:          doc.Year,
		Date:          doc.Date,
		Status:        string(doc.Status),
		GrossTurnover: doc.GrossTurnover,
		VATRate:       doc.VATRate,
		NetBase:       doc.NetBase,
		VATAmount:     doc.VATAmount,
		ProfitTax:     doc.ProfitTax,
		Note:          doc.Note,
		Shared:        doc.HasShareToken(),
		Version:       doc.Version,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}
