package reports

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fakturator/internal/core/apperror"
	"fakturator/pkg/logger"
)

// Repository loads the unified document rows for reporting.
type Repository interface {
	ListRows(ctx context.Context) ([]DocumentRow, error)
}

// Service runs report queries.
type Service struct {
	repo Repository
	log  *logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Run loads the document rows, applies the query and summarizes the matches.
func (s *Service) Run(ctx context.Context, query Query) ([]DocumentRow, Totals, error) {
	if query.Period == "" {
		query.Period = PeriodAll
	}
	if !query.Period.IsValid() {
		return nil, Totals{}, apperror.NewValidation("unknown report period").
			WithDetail("field", "period").
			WithDetail("value", string(query.Period))
	}

	rows, err := s.repo.ListRows(ctx)
	if err != nil {
		return nil, Totals{}, err
	}

	matched := Filter(rows, query, s.now().UTC())
	return matched, Summarize(matched), nil
}

// Filter applies all set predicates of the query conjunctively.
func Filter(rows []DocumentRow, query Query, now time.Time) []DocumentRow {
	matched := make([]DocumentRow, 0, len(rows))
	for _, row := range rows {
		if query.DocType != "" && row.DocType != query.DocType {
			continue
		}
		if query.Status != "" && row.Status != query.Status {
			continue
		}
		if !inPeriod(row.Date, query.Period, now) {
			continue
		}
		if !matchesText(row, query.SearchText) {
			continue
		}
		matched = append(matched, row)
	}
	return matched
}

// Summarize sums the persisted totals of the given rows.
func Summarize(rows []DocumentRow) Totals {
	totals := Totals{
		Count:      len(rows),
		TotalNet:   decimal.Zero,
		TotalVAT:   decimal.Zero,
		TotalGross: decimal.Zero,
	}
	for _, row := range rows {
		totals.TotalNet = totals.TotalNet.Add(row.TotalNet)
		totals.TotalVAT = totals.TotalVAT.Add(row.TotalVAT)
		totals.TotalGross = totals.TotalGross.Add(row.TotalGross)
	}
	return totals
}

func inPeriod(date time.Time, period Period, now time.Time) bool {
	switch period {
	case PeriodCurrentMonth:
		return date.Year() == now.Year() && date.Month() == now.Month()
	case PeriodPreviousMonth:
		// previous calendar month, rolling over the year at January
		prev := now.AddDate(0, -1, -now.Day()+1)
		return date.Year() == prev.Year() && date.Month() == prev.Month()
	case PeriodCurrentYear:
		return date.Year() == now.Year()
	default:
		return true
	}
}

func matchesText(row DocumentRow, text string) bool {
	if text == "" {
		return true
	}
	needle := strings.ToLower(text)
	return strings.Contains(strings.ToLower(row.Counterparty), needle) ||
		strings.Contains(strings.ToLower(row.Number), needle)
}
