// Package paylink provides lightweight quick-payment records. A pay link is
// not a document: it has no number, no lifecycle and no lines, just a name,
// a price and an optional expiry, resolved publicly by its opaque link id.
package paylink

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fakturator/internal/core/apperror"
	"fakturator/internal/core/entity"
	"fakturator/internal/core/types"
)

// PayLink is one quick-payment record.
type PayLink struct {
	entity.BaseDocument

	// LinkID is the opaque public identifier, generated at creation.
	// Unlike document share tokens it exists from the start: a pay link
	// has no private phase.
	LinkID string `db:"link_id" json:"linkId"`

	Name        string      `db:"name" json:"name"`
	Description string      `db:"description" json:"description,omitempty"`
	Price       types.Money `db:"price" json:"price"`

	// ExpiresAt makes the link resolve as NotFound after the deadline.
	// Nil means no expiry.
	ExpiresAt *time.Time `db:"expires_at" json:"expiresAt,omitempty"`
}

// New creates a pay link without a LinkID; the service assigns one.
func New(name string, price decimal.Decimal) *PayLink {
	return &PayLink{
		BaseDocument: entity.NewBaseDocument(),
		Name:         name,
		Price:        price,
	}
}

// IsExpired reports whether the link is past its deadline at the given time.
func (p *PayLink) IsExpired(now time.Time) bool {
	return p.ExpiresAt != nil && !now.Before(*p.ExpiresAt)
}

// Validate implements entity.Validatable.
func (p *PayLink) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("pay link name is required").
			WithDetail("field", "name")
	}
	if p.Price.Sign() < 0 {
		return apperror.NewInvalidAmount("price", p.Price.String())
	}
	return nil
}
