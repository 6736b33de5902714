package sharing

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fakturator/internal/core/apperror"
	"fakturator/internal/core/id"
	"fakturator/internal/domain"
	"fakturator/internal/domain/documents/calculation"
	"fakturator/internal/domain/documents/invoice"
	"fakturator/pkg/logger"
)

// fakeInvoiceRepo enforces the SQL repository's optimistic lock on Save:
// updating with a stale version fails, success bumps the version.
type fakeInvoiceRepo struct {
	docs map[id.ID]*invoice.Invoice
}

func (r *fakeInvoiceRepo) Save(_ context.Context, inv *invoice.Invoice) error {
	if existing, ok := r.docs[inv.ID]; ok {
		if existing.Version != inv.Version {
			return apperror.NewConcurrentModification("invoices", inv.ID)
		}
		inv.Version++
	}
	cp := *inv
	r.docs[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, docID id.ID) (*invoice.Invoice, error) {
	if inv, ok := r.docs[docID]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, apperror.NewNotFound("document", docID)
}

func (r *fakeInvoiceRepo) GetByShareToken(_ context.Context, token string) (*invoice.Invoice, error) {
	for _, inv := range r.docs {
		if inv.ShareToken != nil && *inv.ShareToken == token {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("document", token)
}

func (r *fakeInvoiceRepo) List(_ context.Context, _ invoice.Kind, _ domain.ListFilter) (*domain.ListResult[invoice.Invoice], error) {
	return &domain.ListResult[invoice.Invoice]{}, nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, docID id.ID) error {
	delete(r.docs, docID)
	return nil
}

type fakeCalcRepo struct {
	docs map[id.ID]*calculation.Calculation
}

func (r *fakeCalcRepo) Save(_ context.Context, calc *calculation.Calculation) error {
	if existing, ok := r.docs[calc.ID]; ok {
		if existing.Version != calc.Version {
			return apperror.NewConcurrentModification("calculations", calc.ID)
		}
		calc.Version++
	}
	cp := *calc
	r.docs[calc.ID] = &cp
	return nil
}

func (r *fakeCalcRepo) GetByID(_ context.Context, docID id.ID) (*calculation.Calculation, error) {
	if calc, ok := r.docs[docID]; ok {
		cp := *calc
		return &cp, nil
	}
	return nil, apperror.NewNotFound("document", docID)
}

func (r *fakeCalcRepo) GetByShareToken(_ context.Context, token string) (*calculation.Calculation, error) {
	for _, calc := range r.docs {
		if calc.ShareToken != nil && *calc.ShareToken == token {
			cp := *calc
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("document", token)
}

func (r *fakeCalcRepo) List(_ context.Context, _ domain.ListFilter) (*domain.ListResult[calculation.Calculation], error) {
	return &domain.ListResult[calculation.Calculation]{}, nil
}

func (r *fakeCalcRepo) Delete(_ context.Context, docID id.ID) error {
	delete(r.docs, docID)
	return nil
}

type fakeSnapshots struct {
	data map[string][]byte
}

func (s *fakeSnapshots) SaveSnapshot(_ context.Context, token string, payload []byte) error {
	s.data[token] = append([]byte(nil), payload...)
	return nil
}

func (s *fakeSnapshots) GetSnapshot(_ context.Context, token string) ([]byte, error) {
	if p, ok := s.data[token]; ok {
		return p, nil
	}
	return nil, apperror.NewNotFound("snapshot", token)
}

type noopTx struct{}

func (noopTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestResolver(t *testing.T, opts Options) (*Resolver, *fakeInvoiceRepo, *fakeCalcRepo, *fakeSnapshots) {
	t.Helper()
	invoices := &fakeInvoiceRepo{docs: make(map[id.ID]*invoice.Invoice)}
	calcs := &fakeCalcRepo{docs: make(map[id.ID]*calculation.Calculation)}
	snapshots := &fakeSnapshots{data: make(map[string][]byte)}
	r := NewResolver(invoices, calcs, snapshots, noopTx{}, logger.Default(), opts)
	return r, invoices, calcs, snapshots
}

func seedInvoice(t *testing.T, repo *fakeInvoiceRepo, kind invoice.Kind) *invoice.Invoice {
	t.Helper()
	inv := invoice.New(kind, "Pekara Zlatni Klas")
	inv.Note = "interna napomena"
	require.NoError(t, inv.AddLine("Hleb", dec("100"), dec("80"), dec("10")))
	inv.Number = "FAK-2026-001"
	require.NoError(t, repo.Save(context.Background(), inv))
	return inv
}

func TestParseDocType(t *testing.T) {
	for _, seg := range []string{"faktura", "predracun", "obracun"} {
		_, err := ParseDocType(seg)
		assert.NoError(t, err, seg)
	}

	_, err := ParseDocType("racun")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestNewToken_UniqueAndOpaque(t *testing.T) {
	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.GreaterOrEqual(t, len(a), 40)
}

func TestResolve_TokenBeforeGeneration(t *testing.T) {
	r, invoices, _, _ := newTestResolver(t, Options{})
	inv := seedInvoice(t, invoices, invoice.KindInvoice)

	random, err := NewToken()
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), DocTypeInvoice, inv.ID.String(), random)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGenerateToken_ThenResolve(t *testing.T) {
	ctx := context.Background()
	r, invoices, _, _ := newTestResolver(t, Options{})
	inv := seedInvoice(t, invoices, invoice.KindInvoice)

	token, err := r.GenerateToken(ctx, DocTypeInvoice, inv.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	byToken, err := r.Resolve(ctx, DocTypeInvoice, inv.ID.String(), token)
	require.NoError(t, err)
	byID, err := r.Resolve(ctx, DocTypeInvoice, inv.ID.String(), "")
	require.NoError(t, err)

	// both paths return the same content
	assert.Equal(t, byID, byToken)
	assert.Equal(t, "FAK-2026-001", byToken.Number)
	require.NotNil(t, byToken.TotalGross)
	assert.True(t, byToken.TotalGross.Equal(dec("8800")))
}

func TestGenerateToken_Idempotent(t *testing.T) {
	ctx := context.Background()
	r, invoices, _, _ := newTestResolver(t, Options{})
	inv := seedInvoice(t, invoices, invoice.KindInvoice)

	first, err := r.GenerateToken(ctx, DocTypeInvoice, inv.ID)
	require.NoError(t, err)
	second, err := r.GenerateToken(ctx, DocTypeInvoice, inv.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateToken_ArchivesSnapshot(t *testing.T) {
	ctx := context.Background()
	r, invoices, _, snapshots := newTestResolver(t, Options{})
	inv := seedInvoice(t, invoices, invoice.KindInvoice)

	token, err := r.GenerateToken(ctx, DocTypeInvoice, inv.ID)
	require.NoError(t, err)

	payload, err := r.Snapshot(ctx, token)
	require.NoError(t, err)
	require.NotEmpty(t, snapshots.data)

	var view PublicDocument
	require.NoError(t, json.Unmarshal(payload, &view))
	assert.Equal(t, "FAK-2026-001", view.Number)
	require.Len(t, view.Lines, 1)
}

func TestResolve_TokenMismatchedID(t *testing.T) {
	ctx := context.Background()
	r, invoices, _, _ := newTestResolver(t, Options{})
	a := seedInvoice(t, invoices, invoice.KindInvoice)
	b := seedInvoice(t, invoices, invoice.KindInvoice)

	tokenA, err := r.GenerateToken(ctx, DocTypeInvoice, a.ID)
	require.NoError(t, err)

	// a valid token must not expose a different document's id
	_, err = r.Resolve(ctx, DocTypeInvoice, b.ID.String(), tokenA)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestResolve_KindScoping(t *testing.T) {
	ctx := context.Background()
	r, invoices, _, _ := newTestResolver(t, Options{})
	inv := seedInvoice(t, invoices, invoice.KindInvoice)

	token, err := r.GenerateToken(ctx, DocTypeInvoice, inv.ID)
	require.NoError(t, err)

	// invoice token is not valid under the proforma segment
	_, err = r.Resolve(ctx, DocTypeProforma, inv.ID.String(), token)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestResolve_Calculation(t *testing.T) {
	ctx := context.Background()
	r, _, calcs, _ := newTestResolver(t, Options{})

	calc := calculation.New("Q1", 2026)
	calc.GrossTurnover = dec("120000")
	calc.VATRate = dec("20")
	require.NoError(t, calc.Recalculate())
	calc.Number = "OBR-2026-001"
	require.NoError(t, calcs.Save(ctx, calc))

	token, err := r.GenerateToken(ctx, DocTypeCalculation, calc.ID)
	require.NoError(t, err)

	view, err := r.Resolve(ctx, DocTypeCalculation, calc.ID.String(), token)
	require.NoError(t, err)
	assert.Equal(t, "OBR-2026-001", view.Number)
	require.NotNil(t, view.NetBase)
	assert.True(t, view.NetBase.Equal(dec("100000")))
	require.NotNil(t, view.ProfitTax)
	assert.True(t, view.ProfitTax.Equal(dec("15000")))
}

func TestResolve_NoteRedaction(t *testing.T) {
	ctx := context.Background()
	r, invoices, _, _ := newTestResolver(t, Options{HideNotes: true})
	inv := seedInvoice(t, invoices, invoice.KindInvoice)

	view, err := r.Resolve(ctx, DocTypeInvoice, inv.ID.String(), "")
	require.NoError(t, err)
	assert.Empty(t, view.Note)
}
