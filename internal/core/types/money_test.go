package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTolerance_Boundary(t *testing.T) {
	a := MustMoney("100.00")
	exactlyOneUnit := MustMoney("100.01")
	justUnder := MustMoney("100.009")

	// balance check: a whole minor unit apart is not balanced
	assert.False(t, WithinTolerance(a, exactlyOneUnit))
	assert.True(t, WithinTolerance(a, justUnder))

	// rounding drift: exactly one minor unit is still acceptable
	assert.True(t, DriftWithinMinorUnit(a, exactlyOneUnit))
	assert.False(t, DriftWithinMinorUnit(a, MustMoney("100.02")))
}
