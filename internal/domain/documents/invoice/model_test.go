package invoice

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fakturator/internal/core/apperror"
	"fakturator/internal/core/entity"
	"fakturator/internal/core/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAddLine_ComputesTotals(t *testing.T) {
	inv := New(KindInvoice, "Pekara Zlatni Klas")

	require.NoError(t, inv.AddLine("Web hosting, godisnje", dec("3"), dec("1000"), dec("20")))

	require.Len(t, inv.Lines, 1)
	line := inv.Lines[0]
	assert.True(t, line.Net.Equal(dec("3000")), "net = %s", line.Net)
	assert.True(t, line.VAT.Equal(dec("600")), "vat = %s", line.VAT)
	assert.True(t, line.Gross.Equal(dec("3600")), "gross = %s", line.Gross)

	assert.True(t, inv.TotalNet.Equal(dec("3000")))
	assert.True(t, inv.TotalVAT.Equal(dec("600")))
	assert.True(t, inv.TotalGross.Equal(dec("3600")))
}

func TestAddLine_MultipleLines_TotalsAreSums(t *testing.T) {
	inv := New(KindInvoice, "Agencija Kod")

	require.NoError(t, inv.AddLine("Konsalting", dec("2"), dec("5000"), dec("20")))
	require.NoError(t, inv.AddLine("Knjige", dec("10"), dec("300"), dec("10")))
	require.NoError(t, inv.AddLine("Izvoz usluga", dec("1"), dec("700"), dec("0")))

	assert.True(t, inv.TotalNet.Equal(dec("13700")), "net = %s", inv.TotalNet)
	assert.True(t, inv.TotalVAT.Equal(dec("2300")), "vat = %s", inv.TotalVAT)
	assert.True(t, inv.TotalGross.Equal(dec("16000")), "gross = %s", inv.TotalGross)

	// the balance identity holds after rounding
	assert.True(t, inv.TotalGross.Equal(inv.TotalNet.Add(inv.TotalVAT)))
}

func TestAddLine_RejectsInvalidAmounts(t *testing.T) {
	inv := New(KindInvoice, "Test")

	err := inv.AddLine("x", dec("0"), dec("100"), dec("20"))
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidAmount, apperror.GetCode(err))

	err = inv.AddLine("x", dec("1"), dec("-5"), dec("20"))
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidAmount, apperror.GetCode(err))

	assert.Empty(t, inv.Lines, "failed lines must not be appended")
}

func TestRecalculateTotals_FractionalQuantities(t *testing.T) {
	inv := New(KindInvoice, "Test")
	require.NoError(t, inv.AddLine("Sati", dec("2.5"), dec("1199.99"), dec("20")))

	// 2.5 * 1199.99 = 2999.975 -> 2999.98 (rounded, half-up)
	assert.True(t, inv.Lines[0].Net.Equal(dec("2999.98")), "net = %s", inv.Lines[0].Net)

	// net 2999.975 and vat 599.995 both round up while gross 3599.97 is
	// exact, so the rounded identity may drift by one minor unit
	assert.True(t, types.DriftWithinMinorUnit(inv.TotalGross, inv.TotalNet.Add(inv.TotalVAT)),
		"net=%s vat=%s gross=%s", inv.TotalNet, inv.TotalVAT, inv.TotalGross)
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid document", func(t *testing.T) {
		inv := New(KindProforma, "Kupac")
		require.NoError(t, inv.AddLine("Usluga", dec("1"), dec("100"), dec("20")))
		assert.NoError(t, inv.Validate(ctx))
	})

	t.Run("missing counterparty", func(t *testing.T) {
		inv := New(KindInvoice, "")
		require.NoError(t, inv.AddLine("Usluga", dec("1"), dec("100"), dec("20")))
		err := inv.Validate(ctx)
		require.Error(t, err)
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	})

	t.Run("no lines", func(t *testing.T) {
		inv := New(KindInvoice, "Kupac")
		err := inv.Validate(ctx)
		require.Error(t, err)
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	})

	t.Run("line without description", func(t *testing.T) {
		inv := New(KindInvoice, "Kupac")
		require.NoError(t, inv.AddLine("", dec("1"), dec("100"), dec("20")))
		err := inv.Validate(ctx)
		require.Error(t, err)
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	})

	t.Run("unknown kind", func(t *testing.T) {
		inv := New(Kind("racun"), "Kupac")
		require.NoError(t, inv.AddLine("Usluga", dec("1"), dec("100"), dec("20")))
		err := inv.Validate(ctx)
		require.Error(t, err)
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	})
}

func TestNonStandardRates(t *testing.T) {
	inv := New(KindInvoice, "Kupac")
	require.NoError(t, inv.AddLine("A", dec("1"), dec("100"), dec("20")))
	require.NoError(t, inv.AddLine("B", dec("1"), dec("100"), dec("25")))
	require.NoError(t, inv.AddLine("C", dec("1"), dec("100"), dec("25")))

	rates := inv.NonStandardRates()
	assert.Equal(t, []string{"25"}, rates)
}

func TestKind_NumberPrefix(t *testing.T) {
	assert.Equal(t, "FAK", KindInvoice.NumberPrefix())
	assert.Equal(t, "PR", KindProforma.NumberPrefix())
}

func TestLifecycle(t *testing.T) {
	inv := New(KindInvoice, "Kupac")
	require.Equal(t, entity.StatusDraft, inv.Status)

	// sent is only reachable through awaiting_payment
	err := inv.Document.Transition(entity.StatusSent)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidTransition, apperror.GetCode(err))
	assert.Equal(t, entity.StatusDraft, inv.Status)

	require.NoError(t, inv.Document.Transition(entity.StatusAwaitingPayment))
	require.NoError(t, inv.Document.Transition(entity.StatusPaid))

	err = inv.Document.Transition(entity.StatusSent)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidTransition, apperror.GetCode(err))

	assert.True(t, inv.IsLocked())
	err = inv.CanModify()
	require.Error(t, err)
	assert.Equal(t, apperror.CodeDocumentLocked, apperror.GetCode(err))
}
