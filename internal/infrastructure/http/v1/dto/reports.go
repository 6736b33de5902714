package dto

import (
	"fakturator/internal/domain/reports"
)

// JournalResponse carries the filtered document rows and their aggregate.
type JournalResponse struct {
	Items  []reports.DocumentRow `json:"items"`
	Totals reports.Totals        `json:"totals"`
}
