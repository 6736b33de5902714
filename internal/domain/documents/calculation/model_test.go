package calculation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fakturator/internal/core/apperror"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRecalculate(t *testing.T) {
	calc := New("Q1", 2026)
	calc.GrossTurnover = dec("120000")
	calc.VATRate = dec("20")

	require.NoError(t, calc.Recalculate())

	assert.True(t, calc.NetBase.Equal(dec("100000")), "netBase = %s", calc.NetBase)
	assert.True(t, calc.VATAmount.Equal(dec("20000")), "vatAmount = %s", calc.VATAmount)
	assert.True(t, calc.ProfitTax.Equal(dec("15000")), "profitTax = %s", calc.ProfitTax)
}

func TestRecalculate_ZeroRate(t *testing.T) {
	calc := New("Q2", 2026)
	calc.GrossTurnover = dec("50000")
	calc.VATRate = decimal.Zero

	require.NoError(t, calc.Recalculate())

	assert.True(t, calc.NetBase.Equal(dec("50000")))
	assert.True(t, calc.VATAmount.IsZero())
	assert.True(t, calc.ProfitTax.Equal(dec("7500")))
}

func TestRecalculate_NegativeTurnover(t *testing.T) {
	calc := New("Q1", 2026)
	calc.GrossTurnover = dec("-1")

	err := calc.Recalculate()
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidAmount, apperror.GetCode(err))
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		calc := New("Q1", 2026)
		calc.GrossTurnover = dec("1000")
		require.NoError(t, calc.Recalculate())
		assert.NoError(t, calc.Validate(ctx))
	})

	t.Run("missing period", func(t *testing.T) {
		calc := New("", 2026)
		err := calc.Validate(ctx)
		require.Error(t, err)
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	})

	t.Run("year out of range", func(t *testing.T) {
		calc := New("Q1", 190)
		err := calc.Validate(ctx)
		require.Error(t, err)
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	})
}
