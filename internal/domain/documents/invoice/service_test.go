package invoice

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fakturator/internal/core/apperror"
	"fakturator/internal/core/entity"
	"fakturator/internal/core/id"
	"fakturator/internal/core/numerator"
	"fakturator/internal/domain"
	"fakturator/pkg/logger"
)

// memRepo is an in-memory Repository for service tests. Save enforces the
// same optimistic lock as the SQL repository: an update only succeeds when
// the incoming version matches the stored one, and bumps it on success.
type memRepo struct {
	mu   sync.Mutex
	docs map[id.ID]*Invoice
}

func newMemRepo() *memRepo {
	return &memRepo{docs: make(map[id.ID]*Invoice)}
}

func (r *memRepo) Save(_ context.Context, inv *Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.docs[inv.ID]; ok {
		if existing.Version != inv.Version {
			return apperror.NewConcurrentModification("invoices", inv.ID)
		}
		inv.Version++
	}
	cp := *inv
	cp.Lines = append([]Line(nil), inv.Lines...)
	r.docs[inv.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, docID id.ID) (*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("document", docID)
	}
	cp := *inv
	cp.Lines = append([]Line(nil), inv.Lines...)
	return &cp, nil
}

func (r *memRepo) GetByShareToken(_ context.Context, token string) (*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.docs {
		if inv.ShareToken != nil && *inv.ShareToken == token {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("document", token)
}

func (r *memRepo) List(_ context.Context, kind Kind, filter domain.ListFilter) (*domain.ListResult[Invoice], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := &domain.ListResult[Invoice]{Limit: filter.Limit, Offset: filter.Offset}
	for _, inv := range r.docs {
		if inv.Kind == kind {
			result.Items = append(result.Items, *inv)
		}
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *memRepo) Delete(_ context.Context, docID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[docID]; !ok {
		return apperror.NewNotFound("document", docID)
	}
	delete(r.docs, docID)
	return nil
}

// noopTx runs the function without a real transaction.
type noopTx struct{}

func (noopTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(t *testing.T) (*Service, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	svc := NewService(repo, noopTx{}, &numerator.MockGenerator{}, logger.Default())
	return svc, repo
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	inv := New(KindInvoice, "Pekara Zlatni Klas")
	require.NoError(t, inv.AddLine("Hleb, veleprodaja", dec("100"), dec("80"), dec("10")))

	require.NoError(t, svc.Create(ctx, inv))

	assert.NotEmpty(t, inv.Number)
	assert.Contains(t, inv.Number, "FAK-")
	assert.Equal(t, entity.StatusDraft, inv.Status)

	saved, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.Number, saved.Number)
	require.Len(t, saved.Lines, 1)
}

func TestService_Create_SequentialNumbers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	var numbers []string
	for i := 0; i < 3; i++ {
		inv := New(KindProforma, "Kupac")
		require.NoError(t, inv.AddLine("Usluga", dec("1"), dec("100"), dec("20")))
		require.NoError(t, svc.Create(ctx, inv))
		numbers = append(numbers, inv.Number)
	}

	year := time.Now().UTC().Year()
	assert.Equal(t, fmt.Sprintf("PR-%d-001", year), numbers[0])
	assert.Equal(t, fmt.Sprintf("PR-%d-002", year), numbers[1])
	assert.Equal(t, fmt.Sprintf("PR-%d-003", year), numbers[2])
}

func TestService_Create_InvalidDocument(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	inv := New(KindInvoice, "") // no counterparty
	require.NoError(t, inv.AddLine("Usluga", dec("1"), dec("100"), dec("20")))

	err := svc.Create(ctx, inv)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	assert.Empty(t, repo.docs, "invalid document must not be persisted")
}

func TestService_Update_LockedDocument(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	inv := New(KindInvoice, "Kupac")
	require.NoError(t, inv.AddLine("Usluga", dec("1"), dec("100"), dec("20")))
	require.NoError(t, svc.Create(ctx, inv))

	_, err := svc.Transition(ctx, inv.ID, entity.StatusAwaitingPayment)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, inv.ID, entity.StatusSent)
	require.NoError(t, err)

	inv.CounterpartyName = "Drugi Kupac"
	err = svc.Update(ctx, inv)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeDocumentLocked, apperror.GetCode(err))
}

func TestService_Update_PreservesImmutableFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	inv := New(KindInvoice, "Kupac")
	require.NoError(t, inv.AddLine("Usluga", dec("1"), dec("100"), dec("20")))
	require.NoError(t, svc.Create(ctx, inv))
	originalNumber := inv.Number

	edited, err := svc.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	edited.Number = "FAK-9999-999"
	edited.Kind = KindProforma
	edited.Note = "dopuna"

	require.NoError(t, svc.Update(ctx, edited))

	reloaded, err := svc.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, originalNumber, reloaded.Number)
	assert.Equal(t, KindInvoice, reloaded.Kind)
	assert.Equal(t, "dopuna", reloaded.Note)
}

func TestService_Transition(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	inv := New(KindInvoice, "Kupac")
	require.NoError(t, inv.AddLine("Usluga", dec("1"), dec("100"), dec("20")))
	require.NoError(t, svc.Create(ctx, inv))

	t.Run("allowed chain", func(t *testing.T) {
		updated, err := svc.Transition(ctx, inv.ID, entity.StatusAwaitingPayment)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusAwaitingPayment, updated.Status)

		updated, err = svc.Transition(ctx, inv.ID, entity.StatusPaid)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPaid, updated.Status)
	})

	t.Run("terminal status", func(t *testing.T) {
		_, err := svc.Transition(ctx, inv.ID, entity.StatusSent)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidTransition(err))
	})

	t.Run("unknown document", func(t *testing.T) {
		_, err := svc.Transition(ctx, id.New(), entity.StatusPaid)
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestService_Transition_SkipsNoState(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	inv := New(KindInvoice, "Kupac")
	require.NoError(t, inv.AddLine("Usluga", dec("1"), dec("100"), dec("20")))
	require.NoError(t, svc.Create(ctx, inv))

	_, err := svc.Transition(ctx, inv.ID, entity.StatusSent)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidTransition(err))

	reloaded, err := svc.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, reloaded.Status)
}

func TestService_OptimisticLock(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	inv := New(KindInvoice, "Kupac")
	require.NoError(t, inv.AddLine("Usluga", dec("1"), dec("100"), dec("20")))
	require.NoError(t, svc.Create(ctx, inv))

	t.Run("save chain passes the lock", func(t *testing.T) {
		_, err := svc.Transition(ctx, inv.ID, entity.StatusAwaitingPayment)
		require.NoError(t, err)

		edited, err := svc.GetByID(ctx, inv.ID)
		require.NoError(t, err)
		edited.Note = "dopuna"
		require.NoError(t, svc.Update(ctx, edited))

		_, err = svc.Transition(ctx, inv.ID, entity.StatusSent)
		require.NoError(t, err)
	})

	t.Run("stale copy is rejected", func(t *testing.T) {
		stale := New(KindInvoice, "Kupac")
		require.NoError(t, stale.AddLine("Usluga", dec("1"), dec("100"), dec("20")))
		require.NoError(t, svc.Create(ctx, stale))

		first, err := svc.GetByID(ctx, stale.ID)
		require.NoError(t, err)
		second, err := svc.GetByID(ctx, stale.ID)
		require.NoError(t, err)

		first.Note = "prva izmena"
		require.NoError(t, svc.Update(ctx, first))

		second.Note = "druga izmena"
		err = svc.Update(ctx, second)
		require.Error(t, err)
		assert.Equal(t, apperror.CodeConcurrentModification, apperror.GetCode(err))
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	inv := New(KindInvoice, "Kupac")
	require.NoError(t, inv.AddLine("Usluga", dec("1"), dec("100"), dec("20")))
	require.NoError(t, svc.Create(ctx, inv))

	t.Run("draft can be deleted", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, inv.ID))
		_, err := svc.GetByID(ctx, inv.ID)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("sent document cannot be deleted", func(t *testing.T) {
		locked := New(KindInvoice, "Kupac")
		require.NoError(t, locked.AddLine("Usluga", dec("1"), dec("100"), dec("20")))
		require.NoError(t, svc.Create(ctx, locked))
		_, err := svc.Transition(ctx, locked.ID, entity.StatusAwaitingPayment)
		require.NoError(t, err)
		_, err = svc.Transition(ctx, locked.ID, entity.StatusSent)
		require.NoError(t, err)

		err = svc.Delete(ctx, locked.ID)
		require.Error(t, err)
		assert.Equal(t, apperror.CodeDocumentLocked, apperror.GetCode(err))
	})
}
