package contractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/scope"
)

func scopeOf(ids []int) scope.Scope { return scope.New(ids...) }

func boxOf(vals map[int]interval.Interval) *domain.IntervalBox {
	ids := make([]int, 0, len(vals))
	for id := range vals {
		ids = append(ids, id)
	}
	sc := scopeOf(ids)
	return domain.NewIntervalBox(sc, func(id int) interval.Interval { return vals[id] })
}

func TestHC4ContractNarrowsSum(t *testing.T) {
	d := dag.New()
	x := d.Var(1)
	y := d.Var(2)
	root := d.Add(x, y)
	f := d.NewFun(root, interval.Degenerate(4))

	box := boxOf(map[int]interval.Interval{1: interval.New(0, 10), 2: interval.New(0, 10)})
	c := NewHC4(f)
	p, err := c.Contract(box)
	require.NoError(t, err)
	assert.NotEqual(t, Empty, p)
	assert.Equal(t, 0.0, box.At(1).Lo)
	assert.Equal(t, 4.0, box.At(1).Hi)
}

// TestListSeedsFromFirstResult regression-tests the bug where List used to
// seed its Max fold with Inner, which (given Max returns the stronger of
// its operands) silently forced every composite result to Inner regardless
// of what the wrapped contractors actually found.
func TestListSeedsFromFirstResult(t *testing.T) {
	d := dag.New()
	x := d.Var(1)
	root := d.Sqr(x)
	f := d.NewFun(root, interval.New(0, 100))

	box := boxOf(map[int]interval.Interval{1: interval.New(-1, 1)})
	lst := NewList(NewHC4(f))
	p, err := lst.Contract(box)
	require.NoError(t, err)
	assert.NotEqual(t, Inner, p, "a single HC4 pass over a loose constraint should not be certified Inner")
}

// TestCIDContractionIsAHull checks that CID's result is never narrower
// than the hull of running the wrapped contractor on each slice (property
// the composite must uphold: the union of slice solutions, not their
// intersection).
func TestCIDContractionIsAHull(t *testing.T) {
	d := dag.New()
	x := d.Var(1)
	root := d.Sqr(x)
	f := d.NewFun(root, interval.Degenerate(4)) // x^2 = 4 => x in {-2, 2}

	box := boxOf(map[int]interval.Interval{1: interval.New(-3, 3)})
	c := NewCID(NewHC4(f), 1, 4)
	p, err := c.Contract(box)
	require.NoError(t, err)
	assert.NotEqual(t, Empty, p)
	got := box.At(1)
	assert.True(t, got.Lo <= -2.0+1e-9)
	assert.True(t, got.Hi >= 2.0-1e-9)
}

func TestCIDReportsEmptyWhenNoSliceSurvives(t *testing.T) {
	d := dag.New()
	x := d.Var(1)
	root := d.Sqr(x)
	f := d.NewFun(root, interval.Degenerate(1000)) // unreachable from [-1,1]

	box := boxOf(map[int]interval.Interval{1: interval.New(-1, 1)})
	c := NewCID(NewHC4(f), 1, 4)
	p, err := c.Contract(box)
	require.NoError(t, err)
	assert.Equal(t, Empty, p)
}

// TestPropagConverges checks that a propagation loop over a two-constraint
// system (x+y=4, x-y=0) stops at a box centred on the unique solution
// {x=2, y=2}; HC4 alone narrows both domains to about [0, 4].
func TestPropagConverges(t *testing.T) {
	d := dag.New()
	x := d.Var(1)
	y := d.Var(2)
	sum := d.NewFun(d.Add(x, y), interval.Degenerate(4))
	diff := d.NewFun(d.Sub(x, y), interval.Degenerate(0))

	box := boxOf(map[int]interval.Interval{1: interval.New(0, 10), 2: interval.New(0, 10)})
	p := NewPropag(1e-9, 1e-12, 50, NewHC4(sum), NewHC4(diff))
	proof, err := p.Contract(box)
	require.NoError(t, err)
	assert.NotEqual(t, Empty, proof)
	assert.InDelta(t, 2.0, box.At(1).Mid(), 1e-6)
	assert.InDelta(t, 2.0, box.At(2).Mid(), 1e-6)
}

func TestBC4NarrowsMultiOccurrenceVariable(t *testing.T) {
	d := dag.New()
	x := d.Var(1)
	// x - x is structurally two uses of the same node but simplifies to 0;
	// use x*x - x instead so BC4 sees a genuine multi-occurrence variable.
	root := d.Sub(d.Sqr(x), x)
	f := d.NewFun(root, interval.Degenerate(0)) // x^2 - x = 0 => x in {0, 1}

	box := boxOf(map[int]interval.Interval{1: interval.New(-0.5, 1.5)})
	c := NewBC4(f, 0.1, 20, 1e-10)
	p, err := c.Contract(box)
	require.NoError(t, err)
	assert.NotEqual(t, Empty, p)
}

func TestDomainContractorIntersectsHull(t *testing.T) {
	sc := scopeOf([]int{1})
	db := domain.NewDomainBox(sc, func(id int) domain.Domain {
		return domain.IntervalDomain{X: interval.New(2, 5)}
	})
	c := NewDomainContractor(db)
	box := boxOf(map[int]interval.Interval{1: interval.New(0, 10)})
	p, err := c.Contract(box)
	require.NoError(t, err)
	assert.NotEqual(t, Empty, p)
	assert.Equal(t, 2.0, box.At(1).Lo)
	assert.Equal(t, 5.0, box.At(1).Hi)
}

// TestACIDStabilityAcrossCycles drives ACID over several calls and checks
// it never reports Empty on a box it has already certified feasible, and
// never grows a domain (a contractor must only narrow or hold steady).
func TestACIDStabilityAcrossCycles(t *testing.T) {
	d := dag.New()
	x := d.Var(1)
	y := d.Var(2)
	f := d.NewFun(d.Add(x, y), interval.Degenerate(4))

	box := boxOf(map[int]interval.Interval{1: interval.New(0, 10), 2: interval.New(0, 10)})
	acid := NewACID([]*dag.Fun{f}, NewHC4(f), 3, 3, 2, 4, 0.1)

	prevX, prevY := box.At(1), box.At(2)
	for i := 0; i < 8; i++ {
		p, err := acid.Contract(box)
		require.NoError(t, err)
		if p == Empty {
			t.Fatalf("iteration %d: unexpected Empty on a feasible box", i)
		}
		assert.True(t, box.At(1).Lo >= prevX.Lo-1e-9 && box.At(1).Hi <= prevX.Hi+1e-9)
		assert.True(t, box.At(2).Lo >= prevY.Lo-1e-9 && box.At(2).Hi <= prevY.Hi+1e-9)
		prevX, prevY = box.At(1), box.At(2)
	}
}

func TestNewtonStepNarrowsSquareSystem(t *testing.T) {
	d := dag.New()
	x := d.Var(1)
	y := d.Var(2)
	// x + y = 3, x - y = 1 => x = 2, y = 1
	f1 := d.NewFun(d.Add(x, y), interval.Degenerate(3))
	f2 := d.NewFun(d.Sub(x, y), interval.Degenerate(1))

	box := boxOf(map[int]interval.Interval{1: interval.New(0, 5), 2: interval.New(-5, 5)})
	n := NewNewtonStep([]*dag.Fun{f1, f2}, []int{1, 2}, 1.1, 1e-10, 1e-10, 20, 20)
	p, err := n.Contract(box)
	require.NoError(t, err)
	assert.NotEqual(t, Empty, p)
	assert.InDelta(t, 2.0, box.At(1).Mid(), 1e-6)
	assert.InDelta(t, 1.0, box.At(2).Mid(), 1e-6)
}
