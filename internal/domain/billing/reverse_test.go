package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fakturator/internal/core/apperror"
	"fakturator/internal/core/types"
)

func TestReverseCalculate_WorkedExample(t *testing.T) {
	// gross 120000 at 20% => net 100000, VAT 20000, profit tax 15000
	got, err := ReverseCalculate(d("120000"), d("20"))
	require.NoError(t, err)

	r := got.Rounded()
	assert.True(t, r.NetBase.Equal(d("100000")), "net base %s", r.NetBase)
	assert.True(t, r.VATAmount.Equal(d("20000")), "vat %s", r.VATAmount)
	assert.True(t, r.ProfitTax.Equal(d("15000")), "profit tax %s", r.ProfitTax)
}

func TestReverseCalculate_ZeroRate(t *testing.T) {
	got, err := ReverseCalculate(d("5000"), d("0"))
	require.NoError(t, err)

	assert.True(t, got.NetBase.Equal(d("5000")))
	assert.True(t, got.VATAmount.IsZero())
	assert.True(t, got.ProfitTax.Equal(d("750")))
}

func TestReverseCalculate_ZeroTurnover(t *testing.T) {
	got, err := ReverseCalculate(d("0"), d("20"))
	require.NoError(t, err)
	assert.True(t, got.NetBase.IsZero())
	assert.True(t, got.VATAmount.IsZero())
	assert.True(t, got.ProfitTax.IsZero())
}

func TestReverseCalculate_NegativeTurnover(t *testing.T) {
	_, err := ReverseCalculate(d("-1"), d("20"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidAmount, appErr.Code)
}

func TestReverseCalculate_RoundTrip(t *testing.T) {
	// reverseCalculate(netBase * (1 + r/100), r).NetBase ~ netBase
	bases := []string{"100", "999.99", "12345.67", "100000"}
	rates := []string{"0", "10", "20"}

	for _, b := range bases {
		for _, r := range rates {
			netBase := d(b)
			rate := d(r)
			gross := netBase.Mul(decimal.NewFromInt(1).Add(rate.Div(decimal.NewFromInt(100))))

			got, err := ReverseCalculate(gross, rate)
			require.NoError(t, err)

			assert.True(t, types.DriftWithinMinorUnit(got.NetBase, netBase),
				"base=%s rate=%s: got net base %s", b, r, got.NetBase)
			assert.True(t, got.NetBase.Add(got.VATAmount).Equal(gross),
				"net + vat must reproduce gross exactly")
		}
	}
}
