package paylink

import (
	"context"
	"time"

	"fakturator/internal/core/apperror"
	"fakturator/internal/core/id"
	"fakturator/internal/core/tx"
	"fakturator/internal/domain"
	"fakturator/internal/domain/sharing"
	"fakturator/pkg/logger"
)

// Service implements pay link use cases.
type Service struct {
	repo      Repository
	txManager tx.Manager
	log       *logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, txManager tx.Manager, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		log:       log,
		now:       time.Now,
	}
}

// Create validates the link, assigns its public id and persists it.
func (s *Service) Create(ctx context.Context, link *PayLink) error {
	if err := link.Validate(ctx); err != nil {
		return err
	}

	token, err := sharing.NewToken()
	if err != nil {
		return err
	}
	link.LinkID = token

	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Save(txCtx, link); err != nil {
			return err
		}
		s.log.WithContext(txCtx).Infow("pay link created",
			"id", link.ID, "name", link.Name, "price", link.Price)
		return nil
	})
}

// Update validates and persists changes to an existing link.
// The LinkID never changes; the public URL stays stable across edits.
func (s *Service) Update(ctx context.Context, link *PayLink) error {
	if err := link.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.repo.GetByID(txCtx, link.ID)
		if err != nil {
			return err
		}
		link.LinkID = current.LinkID
		link.CreatedAt = current.CreatedAt
		link.CreatedBy = current.CreatedBy

		return s.repo.Save(txCtx, link)
	})
}

// Resolve looks up a link by its public id. Expired links resolve as
// NotFound, indistinguishable from links that never existed.
func (s *Service) Resolve(ctx context.Context, linkID string) (*PayLink, error) {
	link, err := s.repo.GetByLinkID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if link.IsExpired(s.now().UTC()) {
		return nil, apperror.NewNotFound("pay link", linkID)
	}
	return link, nil
}

// GetByID loads a link for authenticated access, expired or not.
func (s *Service) GetByID(ctx context.Context, linkID id.ID) (*PayLink, error) {
	return s.repo.GetByID(ctx, linkID)
}

// List returns pay links matching the filter.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (*domain.ListResult[PayLink], error) {
	return s.repo.List(ctx, filter)
}

// Delete removes a pay link.
func (s *Service) Delete(ctx context.Context, linkID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, linkID)
	})
}
