package interval

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMulAsymmetry is scenario A from the test suite: x=[-2,5], y=[1,8].
func TestMulAsymmetry(t *testing.T) {
	x := New(-2, 5)
	y := New(1, 8)
	got := x.Mul(y)
	assert.Equal(t, New(-16, 40), got)

	z := New(-1, 13)
	contracted := MulPX(x, y, z)
	assert.Equal(t, New(-1, 5), contracted)
}

func TestArithmeticSoundnessSampled(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sample := func(x Interval) float64 { return x.Lo + rng.Float64()*(x.Hi-x.Lo) }

	ops := []struct {
		name string
		fwd  func(x, y Interval) Interval
		pt   func(r, s float64) float64
	}{
		{"add", Interval.Add, func(r, s float64) float64 { return r + s }},
		{"sub", Interval.Sub, func(r, s float64) float64 { return r - s }},
		{"mul", Interval.Mul, func(r, s float64) float64 { return r * s }},
	}

	for _, op := range ops {
		for i := 0; i < 200; i++ {
			xlo := rng.Float64()*20 - 10
			x := New(xlo, xlo+rng.Float64()*10)
			ylo := rng.Float64()*20 - 10
			y := New(ylo, ylo+rng.Float64()*10)
			r, s := sample(x), sample(y)
			z := op.fwd(x, y)
			got := op.pt(r, s)
			assert.True(t, got >= z.Lo-1e-9 && got <= z.Hi+1e-9,
				"%s: %v not in %v for x=%v y=%v", op.name, got, z, x, y)
		}
	}
}

func TestProjectionSoundness(t *testing.T) {
	x := New(-10, 10)
	y := New(1, 5)
	z := x.Mul(y)
	sub := New(z.Lo+1, z.Hi-1)
	if sub.IsEmpty() {
		return
	}
	xp := MulPX(x, y, sub)
	assert.True(t, x.Contains(xp))
	assert.False(t, xp.Mul(y).Disjoint(sub))
}

func TestDivByIntervalContainingZero(t *testing.T) {
	x := New(1, 2)
	y := New(-1, 1)
	z := x.Div(y)
	assert.True(t, z.Lo < 0 || z.Hi > 0)
}

func TestSinCosRangeWidensOverFullPeriod(t *testing.T) {
	x := New(0, 10)
	s := x.Sin()
	assert.Equal(t, New(-1, 1), s)
}

func TestRoundToIntegers(t *testing.T) {
	x := New(1.2, 3.7)
	r := x.Round()
	assert.Equal(t, New(2, 3), r)

	empty := New(1.1, 1.9).Round()
	assert.True(t, empty.IsEmpty())
}

func TestUnionDisjointInvariant(t *testing.T) {
	u := NewUnion(New(0, 1), New(5, 6), New(2, 3))
	parts := u.Parts()
	require.Len(t, parts, 3)
	for i := 1; i < len(parts); i++ {
		assert.Less(t, parts[i-1].Hi, parts[i].Lo)
	}
}

func TestUnionContract(t *testing.T) {
	u := NewUnion(New(0, 2), New(8, 10))
	got := u.Contract(New(1, 9))
	assert.Equal(t, New(1, 9), got)
}

func TestEmptyAbsorbing(t *testing.T) {
	e := Empty()
	x := New(1, 2)
	assert.True(t, e.Add(x).IsEmpty())
	assert.True(t, e.Mul(x).IsEmpty())
	assert.True(t, x.Inter(e).IsEmpty())
}
