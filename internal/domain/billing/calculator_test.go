package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fakturator/internal/core/apperror"
	"fakturator/internal/core/types"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute_StandardRates(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		unitPrice string
		vatRate   string
		wantNet   string
		wantVAT   string
		wantGross string
	}{
		{"three units at 20 percent", "3", "1000.00", "20", "3000", "600", "3600"},
		{"two units at 10 percent", "2", "500.00", "10", "1000", "100", "1100"},
		{"zero rate", "4", "250.00", "0", "1000", "0", "1000"},
		{"fractional quantity", "1.5", "99.90", "20", "149.85", "29.97", "179.82"},
		{"zero price", "1", "0", "20", "0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(d(tt.quantity), d(tt.unitPrice), d(tt.vatRate))
			require.NoError(t, err)

			assert.True(t, got.Net.Equal(d(tt.wantNet)), "net: want %s, got %s", tt.wantNet, got.Net)
			assert.True(t, got.VAT.Equal(d(tt.wantVAT)), "vat: want %s, got %s", tt.wantVAT, got.VAT)
			assert.True(t, got.Gross.Equal(d(tt.wantGross)), "gross: want %s, got %s", tt.wantGross, got.Gross)
		})
	}
}

func TestCompute_GrossMinusNetEqualsVAT(t *testing.T) {
	quantities := []string{"1", "3", "0.5", "17", "2.25"}
	prices := []string{"0", "0.01", "19.99", "1000.00", "123456.78"}
	rates := []string{"0", "10", "20"}

	for _, q := range quantities {
		for _, p := range prices {
			for _, r := range rates {
				got, err := Compute(d(q), d(p), d(r))
				require.NoError(t, err)

				diff := got.Gross.Sub(got.Net)
				assert.True(t, diff.Equal(got.VAT),
					"q=%s p=%s r=%s: gross-net=%s, vat=%s", q, p, r, diff, got.VAT)

				// independent rounding may drift by exactly one minor unit
				rounded := got.Rounded()
				assert.True(t, types.DriftWithinMinorUnit(rounded.Gross.Sub(rounded.Net), rounded.VAT),
					"q=%s p=%s r=%s: net=%s vat=%s gross=%s", q, p, r,
					rounded.Net, rounded.VAT, rounded.Gross)
			}
		}
	}
}

func TestCompute_InvalidAmounts(t *testing.T) {
	_, err := Compute(d("0"), d("100"), d("20"))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidAmount, appErr.Code)

	_, err = Compute(d("-1"), d("100"), d("20"))
	require.Error(t, err)

	_, err = Compute(d("1"), d("-0.01"), d("20"))
	require.Error(t, err)
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidAmount, appErr.Code)
}

func TestCompute_NonStandardRateIsNotRejected(t *testing.T) {
	got, err := Compute(d("1"), d("100"), d("25"))
	require.NoError(t, err)
	assert.True(t, got.VAT.Equal(d("25")))

	assert.False(t, IsStandardRate(d("25")))
	assert.True(t, IsStandardRate(d("0")))
	assert.True(t, IsStandardRate(d("10")))
	assert.True(t, IsStandardRate(d("20")))
}

func TestAggregate_Empty(t *testing.T) {
	totals := Aggregate(nil)
	assert.True(t, totals.Net.IsZero())
	assert.True(t, totals.VAT.IsZero())
	assert.True(t, totals.Gross.IsZero())
}

func TestAggregate_WorkedExample(t *testing.T) {
	// 3 x 1000.00 @ 20% and 2 x 500.00 @ 10%
	first, err := Compute(d("3"), d("1000.00"), d("20"))
	require.NoError(t, err)
	second, err := Compute(d("2"), d("500.00"), d("10"))
	require.NoError(t, err)

	totals := Aggregate([]LineTotals{first, second})

	assert.True(t, totals.Net.Equal(d("4000")), "net %s", totals.Net)
	assert.True(t, totals.VAT.Equal(d("700")), "vat %s", totals.VAT)
	assert.True(t, totals.Gross.Equal(d("4700")), "gross %s", totals.Gross)
}

func TestAggregate_GrossEqualsSumOfLineGross(t *testing.T) {
	inputs := [][3]string{
		{"3", "1000.00", "20"},
		{"2", "500.00", "10"},
		{"0.5", "19.99", "0"},
		{"7", "123.45", "20"},
	}

	var lines []LineTotals
	sum := decimal.Zero
	for _, in := range inputs {
		lt, err := Compute(d(in[0]), d(in[1]), d(in[2]))
		require.NoError(t, err)
		lines = append(lines, lt)
		sum = sum.Add(lt.Gross)
	}

	totals := Aggregate(lines)
	assert.True(t, totals.Gross.Equal(sum))
	assert.True(t, totals.Gross.Equal(totals.Net.Add(totals.VAT)))
}
