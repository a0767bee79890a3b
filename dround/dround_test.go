package dround

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpDownBracketNearest(t *testing.T) {
	xs := []float64{0, 1, -1, 0.1, 1e10, -1e-10, math.Pi}
	for _, x := range xs {
		require.LessOrEqual(t, Down(x), x)
		require.GreaterOrEqual(t, Up(x), x)
	}
}

func TestAddRoundingBracketsTrueSum(t *testing.T) {
	x, y := 0.1, 0.2
	lo := AddDown(x, y)
	hi := AddUp(x, y)
	assert.LessOrEqual(t, lo, hi)
	assert.InDelta(t, 0.3, lo, 1e-9)
	assert.InDelta(t, 0.3, hi, 1e-9)
}

func TestMulDivRoundingOrder(t *testing.T) {
	assert.LessOrEqual(t, MulDown(2, 3), MulUp(2, 3))
	assert.LessOrEqual(t, DivDown(1, 3), DivUp(1, 3))
}

func TestSqrtBracketsExactRoot(t *testing.T) {
	lo := SqrtDown(4)
	hi := SqrtUp(4)
	assert.LessOrEqual(t, lo, 2.0)
	assert.GreaterOrEqual(t, hi, 2.0)
}
