package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"fakturator/internal/core/id"
	"fakturator/internal/domain"
	"fakturator/internal/domain/documents/invoice"
	"fakturator/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ invoice.Repository = (*InvoiceRepo)(nil)

var invoiceLineCols = []string{
	"line_id", "line_no", "description",
	"quantity", "unit_price", "vat_rate",
	"net", "vat", "gross",
}

// InvoiceRepo persists invoices and proformas with their lines.
type InvoiceRepo struct {
	*BaseDocumentRepo[*invoice.Invoice]
	txManager *postgres.TxManager
}

// NewInvoiceRepo creates an invoice repository.
func NewInvoiceRepo(txManager *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			"invoices",
			postgres.ExtractDBColumns[invoice.Invoice](),
			[]string{"number", "counterparty_name"},
			func() *invoice.Invoice { return &invoice.Invoice{} },
		),
		txManager: txManager,
	}
}

// Save writes the header and replaces the full line set. Callers run it
// inside a transaction, so header totals and lines commit together.
func (r *InvoiceRepo) Save(ctx context.Context, inv *invoice.Invoice) error {
	exists, err := r.exists(ctx, inv.ID)
	if err != nil {
		return err
	}

	if exists {
		if err := r.Update(ctx, inv); err != nil {
			return err
		}
		inv.Version++
	} else {
		if err := r.Create(ctx, inv); err != nil {
			return err
		}
	}

	return r.saveLines(ctx, inv)
}

func (r *InvoiceRepo) exists(ctx context.Context, docID id.ID) (bool, error) {
	var exists bool
	err := r.Querier(ctx).QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM invoices WHERE id = $1)", docID).Scan(&exists)
	if err != nil {
		return false, postgres.TranslateError(err, "invoices", docID)
	}
	return exists, nil
}

// saveLines replaces the document's lines with the current set.
func (r *InvoiceRepo) saveLines(ctx context.Context, inv *invoice.Invoice) error {
	querier := r.Querier(ctx)

	if _, err := querier.Exec(ctx,
		"DELETE FROM invoice_lines WHERE document_id = $1", inv.ID); err != nil {
		return postgres.TranslateError(err, "invoice_lines", inv.ID)
	}

	if len(inv.Lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert("invoice_lines").
		Columns(append([]string{"document_id"}, invoiceLineCols...)...)
	for _, line := range inv.Lines {
		q = q.Values(
			inv.ID, line.LineID, line.LineNo, line.Description,
			line.Quantity, line.UnitPrice, line.VATRate,
			line.Net, line.VAT, line.Gross,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build lines insert: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return postgres.TranslateError(err, "invoice_lines", inv.ID)
	}
	return nil
}

// GetByID loads an invoice with its lines.
func (r *InvoiceRepo) GetByID(ctx context.Context, docID id.ID) (*invoice.Invoice, error) {
	inv, err := r.BaseDocumentRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetByShareToken loads an invoice by its public token, with lines.
func (r *InvoiceRepo) GetByShareToken(ctx context.Context, token string) (*invoice.Invoice, error) {
	inv, err := r.BaseDocumentRepo.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *InvoiceRepo) loadLines(ctx context.Context, inv *invoice.Invoice) error {
	q := r.Builder().
		Select(invoiceLineCols...).
		From("invoice_lines").
		Where(squirrel.Eq{"document_id": inv.ID}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build lines query: %w", err)
	}

	inv.Lines = make([]invoice.Line, 0)
	if err := pgxscan.Select(ctx, r.Querier(ctx), &inv.Lines, sql, args...); err != nil {
		return postgres.TranslateError(err, "invoice_lines", inv.ID)
	}
	return nil
}

// List returns invoices of the given kind. Lines are not loaded; list views
// and reports read the persisted totals.
func (r *InvoiceRepo) List(ctx context.Context, kind invoice.Kind, f domain.ListFilter) (*domain.ListResult[invoice.Invoice], error) {
	result, err := r.BaseDocumentRepo.List(ctx, f, squirrel.Eq{"kind": kind})
	if err != nil {
		return nil, err
	}

	items := make([]invoice.Invoice, len(result.Items))
	for i, inv := range result.Items {
		items[i] = *inv
	}
	return &domain.ListResult[invoice.Invoice]{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}, nil
}

// Delete removes the document and its lines.
func (r *InvoiceRepo) Delete(ctx context.Context, docID id.ID) error {
	if _, err := r.Querier(ctx).Exec(ctx,
		"DELETE FROM invoice_lines WHERE document_id = $1", docID); err != nil {
		return postgres.TranslateError(err, "invoice_lines", docID)
	}
	return r.BaseDocumentRepo.Delete(ctx, docID)
}
