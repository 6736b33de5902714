package calculation

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

// Service implements calculation use cases.
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

// Create derives the tax amounts, assigns the next OBR number and persists
// the document. Derivation and save happen before the number can leak out,
// so numbers are only burned by committed documents.
func (s *Service) Create(ctx context.Context, calc *Calculation) error {
	if err := calc.Recalculate(); err != nil {
		return err
	}
	if err := calc.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		number, err := s.numerator.GetNextNumber(txCtx,
			numerator.DefaultConfig(NumberPrefix), calc.PeriodStart())
		if err != nil {
			return err
		}
		calc.Number = number

		if err := s.repo.Save(txCtx, calc); err != nil {
			return err
		}

		s.log.WithContext(txCtx).Infow("calculation created",
			"id", calc.ID, "number", calc.Number,
			"period", calc.Period, "year", calc.Year,
			"grossTurnover", calc.GrossTurnover)
		return nil
	})
}

// GetByID loads one calculation.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Calculation, error) {
	return s.repo.GetByID(ctx, docID)
}

// Update replaces the content of an existing calculation and re-derives
// the tax amounts. Edits are rejected once the document is sent or paid.
func (s *Service) Update(ctx context.Context, calc *Calculation) error {
	current, err := s.repo.GetByID(ctx, calc.ID)
	if err != nil {
		return err
	}
	if err := current.CanModify(); err != nil {
		return err
	}

	calc.Number = current.Number
	calc.Status = current.Status
	calc.ShareToken = current.ShareToken
	calc.CreatedAt = current.CreatedAt
	calc.CreatedBy = current.CreatedBy

	if err := calc.Recalculate(); err != nil {
		return err
	}
	if err := calc.Validate(ctx); err != nil {
		return err
	}

	// Version stays as loaded; the repository enforces the optimistic
	// lock against it and bumps it in the same statement.
	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.Save(txCtx, calc)
	})
}

// Transition moves the calculation to the next lifecycle status.
func (s *Service) Transition(ctx context.Context, docID id.ID, next entity.Status) (*Calculation, error) {
	var result *Calculation
	err := s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		calc, err := s.repo.GetByID(txCtx, docID)
		if err != nil {
			return err
		}
		if err := calc.Document.Transition(next); err != nil {
			return err
		}
		if err := s.repo.Save(txCtx, calc); err != nil {
			return err
		}

		s.log.WithContext(txCtx).Infow("calculation status changed",
			"id", calc.ID, "number", calc.Number, "status", calc.Status)
		result = calc
		return nil
	})
	return result, err
}

// Delete removes a calculation unless it is sent or paid.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		calc, err := s.repo.GetByID(txCtx, docID)
		if err != nil {
			return err
		}
		if calc.IsLocked() {
			return apperror.NewDocumentLocked(string(calc.Status))
		}
		return s.repo.Delete(txCtx, docID)
	})
}

// List returns calculations matching the filter.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (*domain.ListResult[Calculation], error) {
	return s.repo.List(ctx, filter)
}
