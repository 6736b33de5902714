package invoice

import (
	"context"

	"fakturator/internal/core/apperror"
	"fakturator/internal/core/entity"
	"fakturator/internal/core/id"
	"fakturator/internal/core/numerator"
	"fakturator/internal/core/tx"
	"fakturator/internal/domain"
	"fakturator/pkg/logger"
)

// Service implements invoice use cases: creation with auto-numbering,
// guarded updates, lifecycle transitions and listing.
type Service struct {
	repo      Repository
	txManager tx.Manager
	numerator numerator.Generator
	log       *logger.Logger
}

func NewService(repo Repository, txManager tx.Manager, num numerator.Generator, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		numerator: num,
		log:       log,
	}
}

// Create validates the document, assigns the next number for its kind and
// persists header and lines atomically. The number is drawn inside the same
// transaction as the save, so a failed save does not burn a number.
func (s *Service) Create(ctx context.Context, inv *Invoice) error {
	if err := inv.RecalculateTotals(); err != nil {
		return err
	}
	if err := inv.Validate(ctx); err != nil {
		return err
	}

	if rates := inv.NonStandardRates(); len(rates) > 0 {
		s.log.WithContext(ctx).Warnw("document uses non-standard VAT rates",
			"kind", inv.Kind, "rates", rates)
	}

	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		number, err := s.numerator.GetNextNumber(txCtx,
			numerator.DefaultConfig(inv.Kind.NumberPrefix()), inv.Date)
		if err != nil {
			return err
		}
		inv.Number = number

		if err := s.repo.Save(txCtx, inv); err != nil {
			return err
		}

		s.log.WithContext(txCtx).Infow("document created",
			"id", inv.ID, "kind", inv.Kind, "number", inv.Number,
			"totalGross", inv.TotalGross)
		return nil
	})
}

// GetByID loads a document with its lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Invoice, error) {
	return s.repo.GetByID(ctx, docID)
}

// Update replaces the content of an existing document. Content edits are
// rejected once the document reached sent or paid; use Transition for
// status changes.
func (s *Service) Update(ctx context.Context, inv *Invoice) error {
	current, err := s.repo.GetByID(ctx, inv.ID)
	if err != nil {
		return err
	}
	if err := current.CanModify(); err != nil {
		return err
	}

	// Number, kind and status are immutable through this path
	inv.Number = current.Number
	inv.Kind = current.Kind
	inv.Status = current.Status
	inv.ShareToken = current.ShareToken
	inv.CreatedAt = current.CreatedAt
	inv.CreatedBy = current.CreatedBy

	if err := inv.RecalculateTotals(); err != nil {
		return err
	}
	if err := inv.Validate(ctx); err != nil {
		return err
	}

	if rates := inv.NonStandardRates(); len(rates) > 0 {
		s.log.WithContext(ctx).Warnw("document uses non-standard VAT rates",
			"kind", inv.Kind, "rates", rates)
	}

	// Version stays as loaded; the repository enforces the optimistic
	// lock against it and bumps it in the same statement.
	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.Save(txCtx, inv)
	})
}

// Transition moves the document to the next lifecycle status.
func (s *Service) Transition(ctx context.Context, docID id.ID, next entity.Status) (*Invoice, error) {
	var result *Invoice
	err := s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		inv, err := s.repo.GetByID(txCtx, docID)
		if err != nil {
			return err
		}
		if err := inv.Document.Transition(next); err != nil {
			return err
		}
		if err := s.repo.Save(txCtx, inv); err != nil {
			return err
		}

		s.log.WithContext(txCtx).Infow("document status changed",
			"id", inv.ID, "number", inv.Number, "status", inv.Status)
		result = inv
		return nil
	})
	return result, err
}

// Delete removes a document. Sent and paid documents are part of the
// business record and cannot be deleted.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		inv, err := s.repo.GetByID(txCtx, docID)
		if err != nil {
			return err
		}
		if inv.IsLocked() {
			return apperror.NewDocumentLocked(string(inv.Status))
		}
		return s.repo.Delete(txCtx, docID)
	})
}

// List returns documents of the given kind matching the filter.
func (s *Service) List(ctx context.Context, kind Kind, filter domain.ListFilter) (*domain.ListResult[Invoice], error) {
	return s.repo.List(ctx, kind, filter)
}
