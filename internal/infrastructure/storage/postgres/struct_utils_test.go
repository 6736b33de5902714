package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fakturator/internal/core/entity"
)

type mockDoc struct {
	entity.Document
	Kind     string `db:"kind" json:"kind"`
	Internal string `db:"-" json:"-"`
	NoTag    string
}

func TestExtractDBColumns_EmbeddedDocument(t *testing.T) {
	cols := ExtractDBColumns[mockDoc]()

	expected := []string{"id", "version", "number", "date", "status", "note", "kind"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
}

func TestStructToMap_EmbeddedDocument(t *testing.T) {
	doc := mockDoc{
		Document: entity.NewDocument(),
		Kind:     "invoice",
		Internal: "skipped",
		NoTag:    "skipped",
	}
	doc.Number = "FAK-2026-001"
	doc.Date = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	m := StructToMap(doc)

	assert.Equal(t, doc.ID, m["id"])
	assert.Equal(t, "FAK-2026-001", m["number"])
	assert.Equal(t, doc.Status, m["status"])
	assert.Equal(t, "invoice", m["kind"])
	assert.NotContains(t, m, "Internal")
	assert.NotContains(t, m, "NoTag")
}
