package invoice

import (
	"context"

	"fakturator/internal/core/id"
	"fakturator/internal/domain"
)

// Repository persists invoices and their lines.
//
// Save writes the header and the full line set in one transaction; a header
// whose totals disagree with its lines must never become observable.
type Repository interface {
	Save(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, docID id.ID) (*Invoice, error)
	GetByShareToken(ctx context.Context, token string) (*Invoice, error)
	List(ctx context.Context, kind Kind, filter domain.ListFilter) (*domain.ListResult[Invoice], error)
	Delete(ctx context.Context, docID id.ID) error
}
