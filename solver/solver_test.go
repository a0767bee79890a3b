package solver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/relax"
	"github.com/gokando-numerics/realpaver/scope"
)

// TestDriverSolvesLinearSystem checks that a square linear system
// (x+y=3, x-y=1) contracts to a single solution box centered on the exact
// answer (x=2, y=1) without ever needing to split.
func TestDriverSolvesLinearSystem(t *testing.T) {
	p := NewProblem(1e-9)
	p.AddVariable("x", 1, KindReal, domain.Tolerance{Abs: 1e-6}, domain.IntervalDomain{X: interval.New(-10, 10)})
	p.AddVariable("y", 2, KindReal, domain.Tolerance{Abs: 1e-6}, domain.IntervalDomain{X: interval.New(-10, 10)})

	d := p.Dag()
	x := d.Var(1)
	y := d.Var(2)
	p.AddRange(d.Add(x, y), 3, 3)
	p.AddRange(d.Sub(x, y), 1, 1)

	params := DefaultParams()
	params.NodeLimit = 1000

	drv, err := NewDriver(p, params)
	require.NoError(t, err)
	sols, err := drv.Run()
	require.NoError(t, err)
	require.Len(t, sols, 1)
	assert.InDelta(t, 2.0, sols[0].Box.At(1).Hull().Mid(), 1e-4)
	assert.InDelta(t, 1.0, sols[0].Box.At(2).Hull().Mid(), 1e-4)
}

// TestDriverFindsTwoClusters checks scenario C from the testable
// properties: x+y=1, x*y=0 over x,y in [0,1] yields two solution clusters
// near (0,1) and (1,0).
func TestDriverFindsTwoClusters(t *testing.T) {
	p := NewProblem(1e-9)
	p.AddVariable("x", 1, KindReal, domain.Tolerance{Abs: 1e-3}, domain.IntervalDomain{X: interval.New(0, 1)})
	p.AddVariable("y", 2, KindReal, domain.Tolerance{Abs: 1e-3}, domain.IntervalDomain{X: interval.New(0, 1)})

	d := p.Dag()
	x := d.Var(1)
	y := d.Var(2)
	p.AddRange(d.Add(x, y), 1, 1)
	p.AddRange(d.Mul(x, y), 0, 0)

	params := DefaultParams()
	params.NodeLimit = 5000
	params.SolutionClusterGap = 0

	drv, err := NewDriver(p, params)
	require.NoError(t, err)
	sols, err := drv.Run()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(sols), 1)

	foundNearZeroOne, foundNearOneZero := false, false
	for _, s := range sols {
		xm, ym := s.Box.At(1).Hull().Mid(), s.Box.At(2).Hull().Mid()
		if xm < 0.1 && ym > 0.9 {
			foundNearZeroOne = true
		}
		if xm > 0.9 && ym < 0.1 {
			foundNearOneZero = true
		}
	}
	assert.True(t, foundNearZeroOne && foundNearOneZero, "expected a cluster near each of (0,1) and (1,0)")
}

// TestClusteringIsIdempotent is property #9: running the clustering step
// twice yields the same clusters.
func TestClusteringIsIdempotent(t *testing.T) {
	sc := scope.New(1)
	sc1 := domain.NewDomainBox(sc, func(id int) domain.Domain {
		return domain.IntervalDomain{X: interval.New(0, 0.01)}
	})
	sc2 := domain.NewDomainBox(sc, func(id int) domain.Domain {
		return domain.IntervalDomain{X: interval.New(0.005, 0.015)}
	})
	sols := []Solution{
		{Box: sc1, Proof: 3, Depth: 2, Index: 0},
		{Box: sc2, Proof: 2, Depth: 3, Index: 1},
	}
	once := clusterSolutions(sols, 0.1)
	twice := clusterSolutions(once, 0.1)
	require.Len(t, once, 1)
	require.Len(t, twice, 1)
	assert.Equal(t, once[0].Box.At(1).Hull(), twice[0].Box.At(1).Hull())
}

// TestDriverHC4NewtonPropagatorSolvesSquareSystem exercises
// PropagateHC4Newton end to end: a square linear system should contract to
// its unique solution exactly as the default ACID propagator does, showing
// NewtonIterLimit/InflationDelta/InflationChi/GaussSeidelRelTol/
// GaussSeidelIterLimit are actually wired into the search.
func TestDriverHC4NewtonPropagatorSolvesSquareSystem(t *testing.T) {
	p := NewProblem(1e-9)
	p.AddVariable("x", 1, KindReal, domain.Tolerance{Abs: 1e-6}, domain.IntervalDomain{X: interval.New(-10, 10)})
	p.AddVariable("y", 2, KindReal, domain.Tolerance{Abs: 1e-6}, domain.IntervalDomain{X: interval.New(-10, 10)})

	d := p.Dag()
	x := d.Var(1)
	y := d.Var(2)
	p.AddRange(d.Add(x, y), 3, 3)
	p.AddRange(d.Sub(x, y), 1, 1)

	params := DefaultParams()
	params.NodeLimit = 1000
	params.Propagator = PropagateHC4Newton

	drv, err := NewDriver(p, params)
	require.NoError(t, err)
	sols, err := drv.Run()
	require.NoError(t, err)
	require.Len(t, sols, 1)
	assert.InDelta(t, 2.0, sols[0].Box.At(1).Hull().Mid(), 1e-4)
	assert.InDelta(t, 1.0, sols[0].Box.At(2).Hull().Mid(), 1e-4)
}

// TestDriverRejectsNonSquareHC4Newton checks that requesting
// PropagateHC4Newton over a non-square system is reported as an error
// rather than silently ignored.
func TestDriverRejectsNonSquareHC4Newton(t *testing.T) {
	p := NewProblem(1e-9)
	p.AddVariable("x", 1, KindReal, domain.Tolerance{Abs: 1e-6}, domain.IntervalDomain{X: interval.New(-10, 10)})
	p.AddVariable("y", 2, KindReal, domain.Tolerance{Abs: 1e-6}, domain.IntervalDomain{X: interval.New(-10, 10)})

	d := p.Dag()
	x := d.Var(1)
	y := d.Var(2)
	p.AddRange(d.Add(x, y), 3, 3)

	params := DefaultParams()
	params.Propagator = PropagateHC4Newton

	_, err := NewDriver(p, params)
	require.Error(t, err)
}

// TestDriverRejectsPolytopeWithoutLPSolver checks that requesting a
// polytope relaxation without supplying Params.LPSolver is reported as an
// error rather than silently skipping the relaxation.
func TestDriverRejectsPolytopeWithoutLPSolver(t *testing.T) {
	p := NewProblem(1e-9)
	p.AddVariable("x", 1, KindReal, domain.Tolerance{Abs: 1e-6}, domain.IntervalDomain{X: interval.New(-10, 10)})

	d := p.Dag()
	x := d.Var(1)
	p.AddRange(x, 0, 1)

	params := DefaultParams()
	params.PropagationWithPolytope = PolytopeRLT

	_, err := NewDriver(p, params)
	require.Error(t, err)
	assert.True(t, errors.Is(err, relax.ErrNoLPSolver))
}
