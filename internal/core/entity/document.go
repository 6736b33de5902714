package entity

import (
	"context"
	"time"

	"fakturator/internal/core/apperror"
)

// Status is the lifecycle state of a commercial document.
type Status string

const (
	StatusDraft           Status = "draft"
	StatusAwaitingPayment Status = "awaiting_payment"
	StatusSent            Status = "sent"
	StatusPaid            Status = "paid"
)

// allowedTransitions defines the status state machine.
// paid is terminal; nothing returns to draft once it has moved on.
var allowedTransitions = map[Status][]Status{
	StatusDraft:           {StatusAwaitingPayment},
	StatusAwaitingPayment: {StatusSent, StatusPaid},
	StatusSent:            {StatusPaid},
	StatusPaid:            {},
}

// IsValid reports whether s is a known status value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusAwaitingPayment, StatusSent, StatusPaid:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows s -> next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Document is the base type for commercial documents
// (invoices, proforma invoices, periodic tax calculations).
type Document struct {
	BaseDocument

	// Number is the human-readable document number
	// (auto-generated, type-coded prefix + year + sequence)
	Number string `db:"number" json:"number"`

	// Date is the business (issue) date of the document
	Date time.Time `db:"date" json:"date"`

	// Status is the lifecycle state
	Status Status `db:"status" json:"status"`

	// Note is an optional user note
	Note string `db:"note" json:"note,omitempty"`
}

// NewDocument creates a new draft Document with generated ID.
func NewDocument() Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
		Status:       StatusDraft,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	if !d.Status.IsValid() {
		return apperror.NewValidation("unknown status").
			WithDetail("field", "status").
			WithDetail("value", string(d.Status))
	}

	return nil
}

// Transition moves the document to the requested status.
// Totals are never recomputed here; status changes leave content untouched.
func (d *Document) Transition(next Status) error {
	if !next.IsValid() {
		return apperror.NewValidation("unknown status").
			WithDetail("field", "status").
			WithDetail("value", string(next))
	}

	if !d.Status.CanTransitionTo(next) {
		return apperror.NewInvalidTransition(string(d.Status), string(next)).
			WithDetail("document_id", d.ID.String())
	}

	d.Status = next
	return nil
}

// IsLocked reports whether document content is frozen.
// Once sent or paid, line items and amounts must not change.
func (d *Document) IsLocked() bool {
	return d.Status == StatusSent || d.Status == StatusPaid
}

// CanModify checks if document content can be edited.
func (d *Document) CanModify() error {
	if d.IsLocked() {
		return apperror.NewDocumentLocked(string(d.Status)).
			WithDetail("document_id", d.ID.String())
	}
	return nil
}
