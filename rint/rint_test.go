package rint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverflowDetection(t *testing.T) {
	_, err := Add(MaxInt, 1)
	require.ErrorIs(t, err, ErrOverflow)

	_, err = Sqr(MaxInt)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestDivFloorCeilConventions(t *testing.T) {
	q, err := DivFloor(13, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 3, q)

	q, err = DivFloor(-13, 4)
	require.NoError(t, err)
	assert.EqualValues(t, -4, q)

	q, err = DivCeil(13, -4)
	require.NoError(t, err)
	assert.EqualValues(t, -3, q)
}

func TestRangeHullInter(t *testing.T) {
	a := NewRange(1, 5)
	b := NewRange(3, 8)
	assert.Equal(t, NewRange(1, 8), a.Hull(b))
	assert.Equal(t, NewRange(3, 5), a.Inter(b))

	c := NewRange(10, 20)
	assert.True(t, a.Inter(c).IsEmpty())
	assert.False(t, a.Overlaps(c))
}

func TestRangeUnionDisjointInvariant(t *testing.T) {
	u := NewRangeUnion(NewRange(1, 3), NewRange(10, 12), NewRange(5, 6))
	parts := u.Parts()
	require.Len(t, parts, 3)
	for i := 1; i < len(parts); i++ {
		assert.Less(t, parts[i-1].Hi+1, parts[i].Lo)
	}
}

func TestRangeUnionMergesTouchingRanges(t *testing.T) {
	u := NewRangeUnion(NewRange(1, 3), NewRange(4, 6))
	require.Len(t, u.Parts(), 1)
	assert.Equal(t, NewRange(1, 6), u.Parts()[0])
}

func TestRangeUnionContract(t *testing.T) {
	u := NewRangeUnion(NewRange(1, 3), NewRange(10, 12))
	got := u.Contract(NewRange(2, 11))
	assert.Equal(t, NewRange(2, 11), got)
}
