package document_repo

import (
	"testing"

	"fakturator/internal/domain/filter"
)

func newTestRepo() *BaseDocumentRepo[any] {
	return NewBaseDocumentRepo[any](nil, "test_docs",
		[]string{"id", "number", "date", "status", "total_gross"},
		[]string{"number"},
		func() any { return nil })
}

func TestApplyAdvancedFilters_Operators(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name     string
		item     filter.Item
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "Equal",
			item:     filter.Item{Field: "status", Operator: filter.Equal, Value: "paid"},
			wantSQL:  "SELECT id, number, date, status, total_gross FROM test_docs WHERE status = $1",
			wantArgs: []any{"paid"},
		},
		{
			name:     "Greater",
			item:     filter.Item{Field: "total_gross", Operator: filter.Greater, Value: 1000},
			wantSQL:  "SELECT id, number, date, status, total_gross FROM test_docs WHERE total_gross > $1",
			wantArgs: []any{1000},
		},
		{
			name:     "Less",
			item:     filter.Item{Field: "total_gross", Operator: filter.Less, Value: 500},
			wantSQL:  "SELECT id, number, date, status, total_gross FROM test_docs WHERE total_gross < $1",
			wantArgs: []any{500},
		},
		{
			name:     "Contains",
			item:     filter.Item{Field: "number", Operator: filter.Contains, Value: "FAK"},
			wantSQL:  "SELECT id, number, date, status, total_gross FROM test_docs WHERE number ILIKE $1",
			wantArgs: []any{"%FAK%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := repo.applyAdvancedFilters(repo.baseSelect(), []filter.Item{tt.item})
			if err != nil {
				t.Fatalf("applyAdvancedFilters failed: %v", err)
			}

			sql, args, err := q.ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}

			if sql != tt.wantSQL {
				t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", tt.wantSQL, sql)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("Args count mismatch\nwant: %d\ngot:  %d", len(tt.wantArgs), len(args))
			}
			if args[0] != tt.wantArgs[0] {
				t.Errorf("Args mismatch\nwant: %v\ngot:  %v", tt.wantArgs[0], args[0])
			}
		})
	}
}

func TestApplyAdvancedFilters_RejectsUnknownColumn(t *testing.T) {
	repo := newTestRepo()

	_, err := repo.applyAdvancedFilters(repo.baseSelect(), []filter.Item{
		{Field: "password_hash", Operator: filter.Equal, Value: "x"},
	})
	if err == nil {
		t.Fatal("expected error for non-whitelisted column")
	}
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "date DESC", false},
		{"number", "number ASC", false},
		{"-date", "date DESC", false},
		{"+total_gross", "total_gross ASC", false},
		{"unknown_col", "", true},
		{"-", "", true},
	}

	for _, tt := range tests {
		got, err := repo.parseOrderBy(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseOrderBy(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseOrderBy(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseOrderBy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
