package sharing

import (
	"context"
	"encoding/json"
	"time"

	"fakturator/internal/core/apperror"
	"fakturator/internal/core/id"
	"fakturator/internal/core/tx"
	"fakturator/internal/core/types"
	"fakturator/internal/domain/documents/calculation"
	"fakturator/internal/domain/documents/invoice"
	"fakturator/pkg/logger"
)

// SnapshotStore archives the rendered public payload at share time, so PDF
// and email consumers read exactly what was shown to the counterparty.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, token string, payload []byte) error
	GetSnapshot(ctx context.Context, token string) ([]byte, error)
}

// PublicLine is one invoice line as exposed on the public page.
type PublicLine struct {
	LineNo      int         `json:"lineNo"`
	Description string      `json:"description"`
	Quantity    types.Money `json:"quantity"`
	UnitPrice   types.Money `json:"unitPrice"`
	VATRate     types.Money `json:"vatRate"`
	Net         types.Money `json:"net"`
	VAT         types.Money `json:"vat"`
	Gross       types.Money `json:"gross"`
}

// PublicDocument is the redacted public view of any shareable document.
// Totals come from the persisted document, never recomputed here.
type PublicDocument struct {
	DocType DocType   `json:"docType"`
	Number  string    `json:"number"`
	Date    time.Time `json:"date"`
	Status  string    `json:"status"`
	Note    string    `json:"note,omitempty"`

	// Invoice and proforma fields
	CounterpartyName  string       `json:"counterpartyName,omitempty"`
	CounterpartyAddr  string       `json:"counterpartyAddress,omitempty"`
	CounterpartyTaxID string       `json:"counterpartyTaxId,omitempty"`
	DueDate           *time.Time   `json:"dueDate,omitempty"`
	PaymentMethod     string       `json:"paymentMethod,omitempty"`
	Lines             []PublicLine `json:"lines,omitempty"`
	TotalNet          *types.Money `json:"totalNet,omitempty"`
	TotalVAT          *types.Money `json:"totalVat,omitempty"`
	TotalGross        *types.Money `json:"totalGross,omitempty"`

	// Calculation fields
	Period        string       `json:"period,omitempty"`
	Year          int          `json:"year,omitempty"`
	GrossTurnover *types.Money `json:"grossTurnover,omitempty"`
	NetBase       *types.Money `json:"netBase,omitempty"`
	VATAmount     *types.Money `json:"vatAmount,omitempty"`
	ProfitTax     *types.Money `json:"profitTax,omitempty"`
}

// Options controls field-level redaction of the public view.
type Options struct {
	// HideNotes drops the authoring note from public payloads.
	HideNotes bool
}

// Resolver generates share tokens and resolves documents for public access.
type Resolver struct {
	invoices     invoice.Repository
	calculations calculation.Repository
	snapshots    SnapshotStore
	txManager    tx.Manager
	log          *logger.Logger
	opts         Options
}

func NewResolver(
	invoices invoice.Repository,
	calculations calculation.Repository,
	snapshots SnapshotStore,
	txManager tx.Manager,
	log *logger.Logger,
	opts Options,
) *Resolver {
	return &Resolver{
		invoices:     invoices,
		calculations: calculations,
		snapshots:    snapshots,
		txManager:    txManager,
		log:          log,
		opts:         opts,
	}
}

// GenerateToken makes the document publicly reachable and returns its token.
// Repeated calls reuse the existing token but refresh the archived snapshot,
// so the snapshot always matches the last explicitly shared content.
func (r *Resolver) GenerateToken(ctx context.Context, docType DocType, docID id.ID) (string, error) {
	var token string
	var view *PublicDocument

	err := r.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if kind, ok := docType.InvoiceKind(); ok {
			inv, err := r.invoices.GetByID(txCtx, docID)
			if err != nil {
				return err
			}
			if inv.Kind != kind {
				return apperror.NewNotFound("document", docID)
			}
			if !inv.HasShareToken() {
				fresh, err := NewToken()
				if err != nil {
					return err
				}
				inv.ShareToken = &fresh
				if err := r.invoices.Save(txCtx, inv); err != nil {
					return err
				}
			}
			token = *inv.ShareToken
			view = r.renderInvoice(docType, inv)
			return nil
		}

		calc, err := r.calculations.GetByID(txCtx, docID)
		if err != nil {
			return err
		}
		if !calc.HasShareToken() {
			fresh, err := NewToken()
			if err != nil {
				return err
			}
			calc.ShareToken = &fresh
			if err := r.calculations.Save(txCtx, calc); err != nil {
				return err
			}
		}
		token = *calc.ShareToken
		view = r.renderCalculation(calc)
		return nil
	})
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(view)
	if err != nil {
		return "", apperror.NewInternal(err)
	}
	if err := r.snapshots.SaveSnapshot(ctx, token, payload); err != nil {
		return "", err
	}

	r.log.WithContext(ctx).Infow("document shared",
		"docType", docType, "id", docID, "number", view.Number)
	return token, nil
}

// Resolve returns the public view of a single document.
//
// With a token the lookup goes through the token index only; the id in the
// URL must then point at the same document, otherwise the result is NotFound.
// Without a token the id path is used (authenticated access). Both paths
// return exactly one document or NotFound, never a list.
func (r *Resolver) Resolve(ctx context.Context, docType DocType, docID string, token string) (*PublicDocument, error) {
	if token != "" {
		return r.resolveByToken(ctx, docType, docID, token)
	}

	parsed, err := id.Parse(docID)
	if err != nil {
		return nil, apperror.NewNotFound("document", docID)
	}

	if kind, ok := docType.InvoiceKind(); ok {
		inv, err := r.invoices.GetByID(ctx, parsed)
		if err != nil {
			return nil, err
		}
		if inv.Kind != kind {
			return nil, apperror.NewNotFound("document", docID)
		}
		return r.renderInvoice(docType, inv), nil
	}

	calc, err := r.calculations.GetByID(ctx, parsed)
	if err != nil {
		return nil, err
	}
	return r.renderCalculation(calc), nil
}

func (r *Resolver) resolveByToken(ctx context.Context, docType DocType, docID string, token string) (*PublicDocument, error) {
	if kind, ok := docType.InvoiceKind(); ok {
		inv, err := r.invoices.GetByShareToken(ctx, token)
		if err != nil {
			return nil, err
		}
		if inv.Kind != kind || !matchesID(docID, inv.ID) {
			return nil, apperror.NewNotFound("document", docID)
		}
		return r.renderInvoice(docType, inv), nil
	}

	calc, err := r.calculations.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !matchesID(docID, calc.ID) {
		return nil, apperror.NewNotFound("document", docID)
	}
	return r.renderCalculation(calc), nil
}

// Snapshot returns the archived payload for a token, for PDF and email
// consumers that must render the shared content verbatim.
func (r *Resolver) Snapshot(ctx context.Context, token string) ([]byte, error) {
	return r.snapshots.GetSnapshot(ctx, token)
}

// matchesID guards the token path: a token that resolves to a different
// document than the URL names must not leak that document.
func matchesID(raw string, actual id.ID) bool {
	parsed, err := id.Parse(raw)
	if err != nil {
		return false
	}
	return parsed == actual
}

func (r *Resolver) renderInvoice(docType DocType, inv *invoice.Invoice) *PublicDocument {
	lines := make([]PublicLine, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, PublicLine{
			LineNo:      l.LineNo,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			VATRate:     l.VATRate,
			Net:         l.Net,
			VAT:         l.VAT,
			Gross:       l.Gross,
		})
	}

	doc := &PublicDocument{
		DocType:           docType,
		Number:            inv.Number,
		Date:              inv.Date,
		Status:            string(inv.Status),
		CounterpartyName:  inv.CounterpartyName,
		CounterpartyAddr:  inv.CounterpartyAddr,
		CounterpartyTaxID: inv.CounterpartyTaxID,
		DueDate:           inv.DueDate,
		PaymentMethod:     string(inv.PaymentMethod),
		Lines:             lines,
		TotalNet:          &inv.TotalNet,
		TotalVAT:          &inv.TotalVAT,
		TotalGross:        &inv.TotalGross,
	}
	if !r.opts.HideNotes {
		doc.Note = inv.Note
	}
	return doc
}

func (r *Resolver) renderCalculation(calc *calculation.Calculation) *PublicDocument {
	doc := &PublicDocument{
		DocType:       DocTypeCalculation,
		Number:        calc.Number,
		Date:          calc.Date,
		Status:        string(calc.Status),
		Period:        calc.Period,
		Year:          calc.Year,
		GrossTurnover: &calc.GrossTurnover,
		NetBase:       &calc.NetBase,
		VATAmount:     &calc.VATAmount,
		ProfitTax:     &calc.ProfitTax,
	}
	if !r.opts.HideNotes {
		doc.Note = calc.Note
	}
	return doc
}
