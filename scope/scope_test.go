package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSortsAndDedups(t *testing.T) {
	s := New(3, 1, 2, 1, 3)
	assert.Equal(t, []int{1, 2, 3}, s.IDs())
}

func TestIndexIsContiguous(t *testing.T) {
	s := New(5, 10, 15)
	for want, id := range s.IDs() {
		got, ok := s.Index(id)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := s.Index(999)
	assert.False(t, ok)
}

func TestUnionInterDisjoint(t *testing.T) {
	a := New(1, 2, 3)
	b := New(3, 4, 5)
	assert.Equal(t, New(1, 2, 3, 4, 5), a.Union(b))
	assert.Equal(t, New(3), a.Inter(b))
	assert.False(t, a.Disjoint(b))
	assert.True(t, New(1, 2).Disjoint(New(3, 4)))
}

func TestSubsetAndEqual(t *testing.T) {
	a := New(1, 2)
	b := New(1, 2, 3)
	assert.True(t, a.SubsetOf(b))
	assert.False(t, b.SubsetOf(a))
	assert.True(t, New(2, 1).Equal(New(1, 2)))
}

func TestBankInterns(t *testing.T) {
	bank := NewBank()
	a := bank.Intern(1, 2, 3)
	b := bank.Intern(3, 2, 1)
	assert.True(t, a.Equal(b))
	assert.Equal(t, 1, bank.Len())
}
