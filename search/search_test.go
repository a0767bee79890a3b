package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/scope"
)

func twoVarBox(lo1, hi1, lo2, hi2 float64) *domain.DomainBox {
	sc := scope.New(1, 2)
	return domain.NewDomainBox(sc, func(id int) domain.Domain {
		if id == 1 {
			return domain.IntervalDomain{X: interval.New(lo1, hi1)}
		}
		return domain.IntervalDomain{X: interval.New(lo2, hi2)}
	})
}

func TestDFSIsLastInFirstOut(t *testing.T) {
	s := NewDFS()
	n1 := &Node{ID: 1, Box: twoVarBox(0, 1, 0, 1)}
	n2 := &Node{ID: 2, Box: twoVarBox(0, 1, 0, 1)}
	s.Push(n1)
	s.Push(n2)
	got, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, 2, got.ID)
}

func TestBFSIsFirstInFirstOut(t *testing.T) {
	s := NewBFS()
	n1 := &Node{ID: 1, Box: twoVarBox(0, 1, 0, 1)}
	n2 := &Node{ID: 2, Box: twoVarBox(0, 1, 0, 1)}
	s.Push(n1)
	s.Push(n2)
	got, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, 1, got.ID)
}

func TestDMDFSPrefersNodeFarthestFromSolutions(t *testing.T) {
	s := NewDMDFS()
	near := &Node{ID: 1, Box: twoVarBox(0, 1, 0, 1)}
	far := &Node{ID: 2, Box: twoVarBox(100, 101, 100, 101)}
	s.Push(near)
	s.Push(far)
	s.NoteSolution(twoVarBox(0, 0, 0, 0))

	got, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, 2, got.ID, "farther node should come out first")
}

func TestHybridDFSFlushesStackOnSolution(t *testing.T) {
	tols := []domain.Tolerance{{Abs: 1e-6}, {Abs: 1e-6}}
	s := NewHybridDFS(RankDepth, tols)
	n1 := &Node{ID: 1, Depth: 1, Box: twoVarBox(0, 1, 0, 1)}
	n2 := &Node{ID: 2, Depth: 2, Box: twoVarBox(0, 1, 0, 1)}
	s.Push(n1)
	s.Push(n2)
	assert.Equal(t, 2, len(s.stack))

	leftBefore := s.Leftward()
	s.NoteSolution(nil)
	assert.Equal(t, 0, len(s.stack))
	assert.Equal(t, 2, len(s.bestSet))
	assert.NotEqual(t, leftBefore, s.Leftward())
}

func TestRRResumesFromSuccessor(t *testing.T) {
	tols := []domain.Tolerance{{Abs: 0.01}, {Abs: 0.01}}
	node := &Node{Box: twoVarBox(0, 1, 0, 1), SplitVar: 1}
	id, ok := RR{}.Select(node, tols)
	require.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestLFPicksLargestSplittableVariable(t *testing.T) {
	tols := []domain.Tolerance{{Abs: 0.01}, {Abs: 0.01}}
	node := &Node{Box: twoVarBox(0, 1, 0, 10)}
	id, ok := LF{}.Select(node, tols)
	require.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestSFPicksSmallestSplittableVariable(t *testing.T) {
	tols := []domain.Tolerance{{Abs: 0.01}, {Abs: 0.01}}
	node := &Node{Box: twoVarBox(0, 1, 0, 10)}
	id, ok := SF{}.Select(node, tols)
	require.True(t, ok)
	assert.Equal(t, 1, id)
}

func TestSelectReturnsFalseWhenFullyCanonical(t *testing.T) {
	tols := []domain.Tolerance{{Abs: 10}, {Abs: 10}}
	node := &Node{Box: twoVarBox(0, 1, 0, 1)}
	_, ok := LF{}.Select(node, tols)
	assert.False(t, ok)
}

func TestNcspSplitBisectsChosenVariable(t *testing.T) {
	tols := []domain.Tolerance{{Abs: 0.01}, {Abs: 0.01}}
	node := &Node{ID: 1, Box: twoVarBox(0, 1, 0, 10), SplitVar: -1}
	sp := NewNcspSplit(LF{})
	nextID := 2
	children := sp.Split(node, tols, func() int {
		id := nextID
		nextID++
		return id
	})
	require.Len(t, children, 2)
	assert.Equal(t, 2, children[0].SplitVar)
	assert.Equal(t, 1, children[0].Depth)
	lo := children[0].Box.At(2).Hull()
	hi := children[1].Box.At(2).Hull()
	assert.InDelta(t, 0.0, lo.Lo, 1e-9)
	assert.InDelta(t, 5.0, lo.Hi, 1e-9)
	assert.InDelta(t, 5.0, hi.Lo, 1e-9)
	assert.InDelta(t, 10.0, hi.Hi, 1e-9)
}

func TestSSRSelectsHigherSmearVariable(t *testing.T) {
	d := dag.New()
	x := d.Var(1)
	y := d.Var(2)
	// f = 10*x + y: x's partial dominates, and its domain is wide too.
	ten := d.Const(interval.Degenerate(10))
	f := d.NewFun(d.Add(d.Mul(ten, x), y), interval.Degenerate(0))

	tols := []domain.Tolerance{{Abs: 0.01}, {Abs: 0.01}}
	node := &Node{Box: twoVarBox(-1, 1, -1, 1)}
	sel := SSR{Funs: []*dag.Fun{f}}
	id, ok := sel.Select(node, tols)
	require.True(t, ok)
	assert.Equal(t, 1, id)
}

func TestContextRemovePurgesAnnotation(t *testing.T) {
	c := NewContext()
	c.Set(1, "distance")
	assert.Equal(t, 1, c.Len())
	c.Remove(1)
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get(1)
	assert.False(t, ok)
}
