// Package paylink_repo provides the PostgreSQL pay link repository.
package paylink_repo

import (
	"context"

	"fakturator/internal/domain"
	"fakturator/internal/domain/paylink"
	"fakturator/internal/infrastructure/storage/postgres"
	"fakturator/internal/infrastructure/storage/postgres/document_repo"
)

// Compile-time check.
var _ paylink.Repository = (*PayLinkRepo)(nil)

// PayLinkRepo persists pay links.
type PayLinkRepo struct {
	*document_repo.BaseDocumentRepo[*paylink.PayLink]
}

// NewPayLinkRepo creates a pay link repository.
func NewPayLinkRepo(txManager *postgres.TxManager) *PayLinkRepo {
	return &PayLinkRepo{
		BaseDocumentRepo: document_repo.NewBaseDocumentRepo(
			txManager,
			"pay_links",
			postgres.ExtractDBColumns[paylink.PayLink](),
			[]string{"name", "link_id"},
			func() *paylink.PayLink { return &paylink.PayLink{} },
		),
	}
}

// Save writes the pay link, creating or updating as needed.
func (r *PayLinkRepo) Save(ctx context.Context, link *paylink.PayLink) error {
	var exists bool
	err := r.Querier(ctx).QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM pay_links WHERE id = $1)", link.ID).Scan(&exists)
	if err != nil {
		return postgres.TranslateError(err, "pay_links", link.ID)
	}

	if exists {
		if err := r.Update(ctx, link); err != nil {
			return err
		}
		link.Version++
		return nil
	}
	return r.Create(ctx, link)
}

// GetByLinkID retrieves a pay link by its public identifier.
func (r *PayLinkRepo) GetByLinkID(ctx context.Context, linkID string) (*paylink.PayLink, error) {
	return r.GetByColumn(ctx, "link_id", linkID)
}

// List returns pay links matching the filter.
func (r *PayLinkRepo) List(ctx context.Context, f domain.ListFilter) (*domain.ListResult[paylink.PayLink], error) {
	result, err := r.BaseDocumentRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]paylink.PayLink, len(result.Items))
	for i, link := range result.Items {
		items[i] = *link
	}
	return &domain.ListResult[paylink.PayLink]{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}, nil
}
