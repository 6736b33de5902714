package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"fakturator/internal/domain/documents/invoice"
)

// --- Request DTOs ---

// InvoiceLineRequest represents one line in create/update requests.
// Amounts are decimal strings or JSON numbers; derived values are ignored,
// the document recomputes them.
type InvoiceLineRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VATRate     decimal.Decimal `json:"vatRate"`
}

// CreateInvoiceRequest represents a request to create an invoice or proforma.
// The kind comes from the route, not the body.
type CreateInvoiceRequest struct {
	Date              *time.Time           `json:"date,omitempty"`
	DueDate           *time.Time           `json:"dueDate,omitempty"`
	CounterpartyName  string               `json:"counterpartyName" binding:"required"`
	CounterpartyAddr  string               `json:"counterpartyAddress,omitempty"`
	CounterpartyTaxID string               `json:"counterpartyTaxId,omitempty"`
	CounterpartyRegID string               `json:"counterpartyRegId,omitempty"`
	PaymentMethod     string               `json:"paymentMethod,omitempty"`
	Note              string               `json:"note,omitempty"`
	Lines             []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts request to domain entity.
func (r *CreateInvoiceRequest) ToEntity(kind invoice.Kind) (*invoice.Invoice, error) {
	doc := invoice.New(kind, r.CounterpartyName)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.DueDate = r.DueDate
	doc.CounterpartyAddr = r.CounterpartyAddr
	doc.CounterpartyTaxID = r.CounterpartyTaxID
	doc.CounterpartyRegID = r.CounterpartyRegID
	doc.Note = r.Note
	if r.PaymentMethod != "" {
		doc.PaymentMethod = invoice.PaymentMethod(r.PaymentMethod)
	}

	for _, line := range r.Lines {
		if err := doc.AddLine(line.Description, line.Quantity, line.UnitPrice, line.VATRate); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// UpdateInvoiceRequest represents a request to update an invoice or proforma.
// Replacing Lines replaces the whole table part.
type UpdateInvoiceRequest struct {
	Date              *time.Time           `json:"date,omitempty"`
	DueDate           *time.Time           `json:"dueDate,omitempty"`
	CounterpartyName  *string              `json:"counterpartyName,omitempty"`
	CounterpartyAddr  *string              `json:"counterpartyAddress,omitempty"`
	CounterpartyTaxID *string              `json:"counterpartyTaxId,omitempty"`
	CounterpartyRegID *string              `json:"counterpartyRegId,omitempty"`
	PaymentMethod     *string              `json:"paymentMethod,omitempty"`
	Note              *string              `json:"note,omitempty"`
	Lines             []InvoiceLineRequest `json:"lines,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateInvoiceRequest) ApplyTo(doc *invoice.Invoice) error {
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.DueDate != nil {
		doc.DueDate = r.DueDate
	}
	if r.CounterpartyName != nil {
		doc.CounterpartyName = *r.CounterpartyName
	}
	if r.CounterpartyAddr != nil {
		doc.CounterpartyAddr = *r.CounterpartyAddr
	}
	if r.CounterpartyTaxID != nil {
		doc.CounterpartyTaxID = *r.CounterpartyTaxID
	}
	if r.CounterpartyRegID != nil {
		doc.CounterpartyRegID = *r.CounterpartyRegID
	}
	if r.PaymentMethod != nil {
		doc.PaymentMethod = invoice.PaymentMethod(*r.PaymentMethod)
	}
	if r.Note != nil {
		doc.Note = *r.Note
	}

	if r.Lines != nil {
		doc.Lines = doc.Lines[:0]
		for _, line := range r.Lines {
			if err := doc.AddLine(line.Description, line.Quantity, line.UnitPrice, line.VATRate); err != nil {
				return err
			}
		}
	}
	return nil
}

// --- Response DTOs ---

// InvoiceLineResponse represents one line in API responses.
type InvoiceLineResponse struct {
	LineID      string          `json:"lineId"`
	LineNo      int             `json:"lineNo"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VATRate     decimal.Decimal `json:"vatRate"`
	Net         decimal.Decimal `json:"net"`
	VAT         decimal.Decimal `json:"vat"`
	Gross       decimal.Decimal `json:"gross"`
}

// InvoiceResponse represents an invoice or proforma in API responses.
type InvoiceResponse struct {
	ID                string                `json:"id"`
	Kind              string                `json:"kind"`
	Number            string                `json:"number"`
	Date              time.Time             `json:"date"`
	DueDate           *time.Time            `json:"dueDate,omitempty"`
	Status            string                `json:"status"`
	CounterpartyName  string                `json:"counterpartyName"`
	CounterpartyAddr  string                `json:"counterpartyAddress,omitempty"`
	CounterpartyTaxID string                `json:"counterpartyTaxId,omitempty"`
	CounterpartyRegID string                `json:"counterpartyRegId,omitempty"`
	PaymentMethod     string                `json:"paymentMethod"`
	Note              string                `json:"note,omitempty"`
	TotalNet          decimal.Decimal       `json:"totalNet"`
	TotalVAT          decimal.Decimal       `json:"totalVat"`
	TotalGross        decimal.Decimal       `json:"totalGross"`
	Lines             []InvoiceLineResponse `json:"lines"`
	Shared            bool                  `json:"shared"`
	Version           int                   `json:"version"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

// FromInvoice creates response from domain invoice.
func FromInvoice(doc *invoice.Invoice) *InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(doc.Lines))
	for i, l := range doc.Lines {
		lines[i] = InvoiceLineResponse{
			LineID:      l.LineID.String(),
			LineNo:      l.LineNo,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			VATRate:     l.VATRate,
			Net:         l.Net,
			VAT:         l.VAT,
			Gross:       l.Gross,
		}
	}

	return &InvoiceResponse{
		ID:                doc.ID.String(),
		Kind:              string(doc.Kind),
		Number:            doc.Number,
		Date:              doc.Date,
		DueDate:           doc.DueDate,
		Status:            string(doc.Status),
		CounterpartyName:  doc.CounterpartyName,
		CounterpartyAddr:  doc.CounterpartyAddr,
		CounterpartyTaxID: doc.CounterpartyTaxID,
		CounterpartyRegID: doc.CounterpartyRegID,
		PaymentMethod:     string(doc.PaymentMethod),
		Note:              doc.Note,
		TotalNet:          doc.TotalNet,
		TotalVAT:          doc.TotalVAT,
		TotalGross:        doc.TotalGross,
		Lines:             lines,
		Shared:            doc.HasShareToken(),
		Version:           doc.Version,
		CreatedAt:         doc.CreatedAt,
		UpdatedAt:         doc.UpdatedAt,
	}
}

// --- Status / Sharing DTOs ---

// TransitionRequest moves a document to a new lifecycle status.
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// ShareResponse returns the public access token and path.
type ShareResponse struct {
	Token     string `json:"token"`
	PublicURL string `json:"publicUrl"`
}
