package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	corenumerator "fakturator/internal/core/numerator"
	"fakturator/internal/infrastructure/storage/postgres"
)

// Mock objects
type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

type mockQuerier struct {
	mu sync.Mutex
	// seqs simulates the sys_sequences table keyed by sequence key
	seqs map[string]int64
}

func (m *mockQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.seqs == nil {
		m.seqs = make(map[string]int64)
	}

	key, _ := args[0].(string)
	if len(args) == 2 {
		// SetNextNumber: current_val = $2
		val, _ := args[1].(int64)
		m.seqs[key] = val
	} else {
		m.seqs[key]++
	}
	return &mockRow{val: m.seqs[key]}
}

func (m *mockQuerier) GetQuerier(ctx context.Context) postgres.Querier {
	return m
}

func TestGetNextNumber(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := corenumerator.DefaultConfig("FAK")
	period := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	num, err := svc.GetNextNumber(ctx, cfg, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "FAK-2026-001" {
		t.Errorf("expected FAK-2026-001, got %s", num)
	}

	num, err = svc.GetNextNumber(ctx, cfg, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "FAK-2026-002" {
		t.Errorf("expected FAK-2026-002, got %s", num)
	}
}

func TestGetNextNumber_YearlyReset(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := corenumerator.DefaultConfig("PR")

	// Fill up 2025
	dec := time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if _, err := svc.GetNextNumber(ctx, cfg, dec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// A document dated in 2026 starts a fresh sequence
	jan := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	num, err := svc.GetNextNumber(ctx, cfg, jan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "PR-2026-001" {
		t.Errorf("expected PR-2026-001, got %s", num)
	}
}

func TestGetNextNumber_IndependentPrefixes(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	period := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.GetNextNumber(ctx, corenumerator.DefaultConfig("FAK"), period); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	num, err := svc.GetNextNumber(ctx, corenumerator.DefaultConfig("OBR"), period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "OBR-2026-001" {
		t.Errorf("expected OBR-2026-001, got %s", num)
	}
}

func TestSetNextNumber(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := corenumerator.DefaultConfig("FAK")
	period := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := svc.SetNextNumber(ctx, cfg, period, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	num, err := svc.GetNextNumber(ctx, cfg, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "FAK-2026-100" {
		t.Errorf("expected FAK-2026-100, got %s", num)
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"FAK-2026-001", 1},
		{"OBR-2026-042", 42},
		{"PR-007", 7},
		{"garbage", -1},
		{"FAK-2026-", -1},
		{"FAK-2026-abc", -1},
	}
	for _, c := range cases {
		if got := ParseNumber(c.in); got != c.want {
			t.Errorf("ParseNumber(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
