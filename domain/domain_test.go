package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/rint"
	"github.com/gokando-numerics/realpaver/scope"
)

func TestIntervalDomainCanonical(t *testing.T) {
	d := IntervalDomain{X: interval.New(1, 1.0000001)}
	assert.True(t, d.IsCanonical(Tolerance{Abs: 1e-3}))
	assert.False(t, d.IsCanonical(Tolerance{Abs: 1e-10}))
}

func TestRangeDomainCanonicalOnlySingleton(t *testing.T) {
	d := RangeDomain{R: rint.NewRange(3, 3)}
	assert.True(t, d.IsCanonical(Tolerance{}))
	d2 := RangeDomain{R: rint.NewRange(3, 5)}
	assert.False(t, d2.IsCanonical(Tolerance{}))
}

func TestBinaryDomainContraction(t *testing.T) {
	d := BinaryDomain{Z: FullZeroOne()}
	got := d.ContractWith(interval.Degenerate(0)).(BinaryDomain)
	assert.True(t, got.Z.HasZero())
	assert.False(t, got.Z.HasOne())
}

func TestIntervalUnionHullAndConnected(t *testing.T) {
	u := interval.NewUnion(interval.New(0, 1), interval.New(5, 6))
	d := IntervalUnionDomain{U: u}
	assert.False(t, d.IsConnected())
	assert.Equal(t, interval.New(0, 6), d.Hull())
}

func TestIntervalBoxGapAndHausdorff(t *testing.T) {
	sc := scope.New(1, 2)
	a := NewIntervalBox(sc, func(id int) interval.Interval { return interval.New(0, 1) })
	b := NewIntervalBox(sc, func(id int) interval.Interval { return interval.New(2, 3) })
	assert.InDelta(t, 1.0, a.GapTo(b), 1e-9)
	assert.InDelta(t, 2.0, a.HausdorffDistance(b), 1e-9)
}

func TestIntervalBoxCornerSelection(t *testing.T) {
	sc := scope.New(1, 2)
	box := NewIntervalBox(sc, func(id int) interval.Interval { return interval.New(float64(id), float64(id)+1) })
	corner := box.Corner(0)
	require.Len(t, corner, 2)
	assert.Equal(t, 1.0, corner[0])
	assert.Equal(t, 2.0, corner[1])
}

func TestDomainBoxCloneIsIndependent(t *testing.T) {
	sc := scope.New(1)
	b := NewDomainBox(sc, func(id int) Domain { return IntervalDomain{X: interval.New(0, 1)} })
	c := b.Clone()
	c.Set(1, IntervalDomain{X: interval.New(0, 0.5)})
	assert.Equal(t, interval.New(0, 1), b.At(1).Hull())
	assert.Equal(t, interval.New(0, 0.5), c.At(1).Hull())
}
