package paylink

import (
	"context"

	"fakturator/internal/core/id"
	"fakturator/internal/domain"
)

// Repository persists pay links.
type Repository interface {
	Save(ctx context.Context, link *PayLink) error
	GetByID(ctx context.Context, linkID id.ID) (*PayLink, error)
	GetByLinkID(ctx context.Context, linkID string) (*PayLink, error)
	List(ctx context.Context, filter domain.ListFilter) (*domain.ListResult[PayLink], error)
	Delete(ctx context.Context, linkID id.ID) error
}
