package calculation

import (
	"context"

	"fakturator/internal/core/id"
	"fakturator/internal/domain"
)

// Repository persists calculation documents.
type Repository interface {
	Save(ctx context.Context, calc *Calculation) error
	GetByID(ctx context.Context, docID id.ID) (*Calculation, error)
	GetByShareToken(ctx context.Context, token string) (*Calculation, error)
	List(ctx context.Context, filter domain.ListFilter) (*domain.ListResult[Calculation], error)
	Delete(ctx context.Context, docID id.ID) error
}
