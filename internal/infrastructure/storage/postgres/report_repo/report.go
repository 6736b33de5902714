// Package report_repo loads the unified report rows from PostgreSQL.
package report_repo

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"

	"fakturator/internal/domain/reports"
	"fakturator/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository over the invoices and
// calculations tables.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// listRowsQuery flattens both document tables into one view. Invoice rows
// carry their kind as doc_type; calculations report the period as the
// counterparty column so text search covers it.
const listRowsQuery = `
	SELECT id, number, kind AS doc_type, date, status,
	       counterparty_name AS counterparty,
	       total_net, total_vat, total_gross
	FROM invoices
	UNION ALL
	SELECT id, number, 'calculation' AS doc_type, date, status,
	       period AS counterparty,
	       net_base AS total_net, vat_amount AS total_vat, gross_turnover AS total_gross
	FROM calculations
	ORDER BY date DESC
`

// ListRows returns every document as a report row.
func (r *ReportRepo) ListRows(ctx context.Context) ([]reports.DocumentRow, error) {
	var rows []reports.DocumentRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, listRowsQuery); err != nil {
		return nil, postgres.TranslateError(err, "reports", "list")
	}
	return rows, nil
}
