package document_repo

import (
	"context"

	"fakturator/internal/domain"
	"fakturator/internal/domain/documents/calculation"
	"fakturator/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ calculation.Repository = (*CalculationRepo)(nil)

// CalculationRepo persists periodic tax calculations.
type CalculationRepo struct {
	*BaseDocumentRepo[*calculation.Calculation]
}

// NewCalculationRepo creates a calculation repository.
func NewCalculationRepo(txManager *postgres.TxManager) *CalculationRepo {
	return &CalculationRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			"calculations",
			postgres.ExtractDBColumns[calculation.Calculation](),
			[]string{"number", "period"},
			func() *calculation.Calculation { return &calculation.Calculation{} },
		),
	}
}

// Save writes the calculation, creating or updating as needed.
func (r *CalculationRepo) Save(ctx context.Context, calc *calculation.Calculation) error {
	var exists bool
	err := r.Querier(ctx).QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM calculations WHERE id = $1)", calc.ID).Scan(&exists)
	if err != nil {
		return postgres.TranslateError(err, "calculations", calc.ID)
	}

	if exists {
		if err := r.Update(ctx, calc); err != nil {
			return err
		}
		calc.Version++
		return nil
	}
	return r.Create(ctx, calc)
}

// List returns calculations matching the filter.
func (r *CalculationRepo) List(ctx context.Context, f domain.ListFilter) (*domain.ListResult[calculation.Calculation], error) {
	result, err := r.BaseDocumentRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]calculation.Calculation, len(result.Items))
	for i, calc := range result.Items {
		items[i] = *calc
	}
	return &domain.ListResult[calculation.Calculation]{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}, nil
}
