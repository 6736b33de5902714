package paylink

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fakturator/internal/core/apperror"
	"fakturator/internal/core/id"
	"fakturator/internal/domain"
	"fakturator/pkg/logger"
)

type memRepo struct {
	links map[id.ID]*PayLink
}

func newMemRepo() *memRepo {
	return &memRepo{links: make(map[id.ID]*PayLink)}
}

func (r *memRepo) Save(_ context.Context, link *PayLink) error {
	cp := *link
	r.links[link.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, linkID id.ID) (*PayLink, error) {
	if link, ok := r.links[linkID]; ok {
		cp := *link
		return &cp, nil
	}
	return nil, apperror.NewNotFound("pay link", linkID)
}

func (r *memRepo) GetByLinkID(_ context.Context, linkID string) (*PayLink, error) {
	for _, link := range r.links {
		if link.LinkID == linkID {
			cp := *link
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("pay link", linkID)
}

func (r *memRepo) List(_ context.Context, filter domain.ListFilter) (*domain.ListResult[PayLink], error) {
	result := &domain.ListResult[PayLink]{Limit: filter.Limit, Offset: filter.Offset}
	for _, link := range r.links {
		result.Items = append(result.Items, *link)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *memRepo) Delete(_ context.Context, linkID id.ID) error {
	if _, ok := r.links[linkID]; !ok {
		return apperror.NewNotFound("pay link", linkID)
	}
	delete(r.links, linkID)
	return nil
}

type noopTx struct{}

func (noopTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(t *testing.T) (*Service, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	return NewService(repo, noopTx{}, logger.Default()), repo
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	link := New("Donacija", dec("500"))
	require.NoError(t, svc.Create(ctx, link))

	assert.NotEmpty(t, link.LinkID)
}

func TestService_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	t.Run("missing name", func(t *testing.T) {
		err := svc.Create(ctx, New("", dec("500")))
		require.Error(t, err)
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	})

	t.Run("negative price", func(t *testing.T) {
		err := svc.Create(ctx, New("Donacija", dec("-1")))
		require.Error(t, err)
		assert.Equal(t, apperror.CodeInvalidAmount, apperror.GetCode(err))
	})

	assert.Empty(t, repo.links)
}

func TestService_Resolve(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	link := New("Pretplata", dec("1200"))
	link.Description = "Mesecna pretplata"
	require.NoError(t, svc.Create(ctx, link))

	resolved, err := svc.Resolve(ctx, link.LinkID)
	require.NoError(t, err)
	assert.Equal(t, "Pretplata", resolved.Name)
	assert.True(t, resolved.Price.Equal(dec("1200")))

	_, err = svc.Resolve(ctx, "nepostojeci")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_Resolve_Expired(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	link := New("Akcija", dec("300"))
	past := time.Now().UTC().Add(-time.Hour)
	link.ExpiresAt = &past
	require.NoError(t, svc.Create(ctx, link))

	_, err := svc.Resolve(ctx, link.LinkID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	// authenticated access still sees the expired record
	kept, err := svc.GetByID(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, "Akcija", kept.Name)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	link := New("Jednokratno", dec("100"))
	require.NoError(t, svc.Create(ctx, link))

	require.NoError(t, svc.Delete(ctx, link.ID))
	_, err := svc.GetByID(ctx, link.ID)
	assert.True(t, apperror.IsNotFound(err))
}
