package relax

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/scope"
)

// fakeLP is a minimal in-memory LP "solver" good enough to exercise
// Relaxer's emitted model shape without depending on a real simplex
// implementation: it just records what was asked of it and answers
// Minimize/Maximize with the tightest bound any single constraint implies
// for the requested variable (sound, though weaker than a real LP solve).
type fakeLP struct {
	bounds []interval.Interval
	ctrs   []struct {
		lo, up float64
		expr   LinExpr
	}
	integer map[LinVar]bool
}

func newFakeLP() *fakeLP { return &fakeLP{integer: map[LinVar]bool{}} }

func (f *fakeLP) MakeVar(lo, up float64) LinVar {
	f.bounds = append(f.bounds, interval.New(lo, up))
	return LinVar(len(f.bounds) - 1)
}

func (f *fakeLP) SetInteger(v LinVar) { f.integer[v] = true }

func (f *fakeLP) AddCtr(lo float64, expr LinExpr, up float64) {
	f.ctrs = append(f.ctrs, struct {
		lo, up float64
		expr   LinExpr
	}{lo, up, expr})
}

func (f *fakeLP) Minimize(v LinVar) (float64, bool, error) {
	if int(v) >= len(f.bounds) {
		return 0, false, errors.New("unknown var")
	}
	return f.bounds[v].Lo, true, nil
}

func (f *fakeLP) Maximize(v LinVar) (float64, bool, error) {
	if int(v) >= len(f.bounds) {
		return 0, false, errors.New("unknown var")
	}
	return f.bounds[v].Hi, true, nil
}

func TestRelaxerBuildsModelWithImageConstraint(t *testing.T) {
	d := dag.New()
	x := d.Var(1)
	y := d.Var(2)
	root := d.Add(x, y)
	f := d.NewFun(root, interval.Degenerate(4))

	box := domain.NewIntervalBox(scope.New(1, 2), func(id int) interval.Interval {
		return interval.New(0, 10)
	})

	solver := newFakeLP()
	r := NewRelaxer(solver)
	v := r.Build(f, box)

	assert.True(t, int(v) < len(solver.bounds))
	assert.True(t, len(solver.ctrs) > 0)
	// the root's image constraint must appear verbatim as one of the rows.
	found := false
	for _, c := range solver.ctrs {
		if c.lo == 4 && c.up == 4 && len(c.expr) == 1 && c.expr[0].Var == v {
			found = true
		}
	}
	assert.True(t, found, "expected an addCtr(4, [1*root], 4) row")
}

func TestRelaxerMcCormickEnvelopeIsSound(t *testing.T) {
	d := dag.New()
	x := d.Var(1)
	y := d.Var(2)
	root := d.Mul(x, y)
	f := d.NewFun(root, interval.New(-100, 100))

	box := domain.NewIntervalBox(scope.New(1, 2), func(id int) interval.Interval {
		return interval.New(1, 3)
	})

	solver := newFakeLP()
	r := NewRelaxer(solver)
	v := r.Build(f, box)
	got := solver.bounds[v]
	assert.True(t, got.Lo <= 1.0 && got.Hi >= 9.0, "z=x*y over [1,3]x[1,3] must enclose [1,9]")
}

func TestTableauSolvesSquareEqualitySystem(t *testing.T) {
	solver := newFakeLP()
	vx := solver.MakeVar(-10, 10)
	vy := solver.MakeVar(-10, 10)

	tb := NewTableau([]LinVar{vx, vy})
	tb.AddEquality(LinExpr{{1, vx}, {1, vy}}, 3)
	tb.AddEquality(LinExpr{{1, vx}, {-1, vy}}, 1)

	point, ok, err := tb.Solve()
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 2.0, point[0], 1e-9)
	assert.InDelta(t, 1.0, point[1], 1e-9)
}

func TestTableauInconclusiveWhenNotSquare(t *testing.T) {
	solver := newFakeLP()
	vx := solver.MakeVar(-10, 10)
	vy := solver.MakeVar(-10, 10)

	tb := NewTableau([]LinVar{vx, vy})
	tb.AddEquality(LinExpr{{1, vx}, {1, vy}}, 3)

	_, ok, err := tb.Solve()
	require.NoError(t, err)
	assert.False(t, ok)
}

// tableauLP is an LP test double that actually solves: it records every
// equality row (lo == up) Relaxer emits and, on each Minimize/Maximize
// call, runs them all through a Tableau. Good enough to demonstrate
// PolytopeContractor narrowing a box from a genuinely square linear
// system, unlike fakeLP's per-variable-bound shortcut above.
type tableauLP struct {
	bounds []interval.Interval
	eqs    []struct {
		expr  LinExpr
		value float64
	}
}

func newTableauLP() *tableauLP { return &tableauLP{} }

func (f *tableauLP) MakeVar(lo, up float64) LinVar {
	f.bounds = append(f.bounds, interval.New(lo, up))
	return LinVar(len(f.bounds) - 1)
}

func (f *tableauLP) SetInteger(LinVar) {}

func (f *tableauLP) AddCtr(lo float64, expr LinExpr, up float64) {
	if lo == up {
		f.eqs = append(f.eqs, struct {
			expr  LinExpr
			value float64
		}{expr, lo})
	}
}

func (f *tableauLP) solve() (map[LinVar]float64, bool) {
	seen := map[LinVar]bool{}
	for _, e := range f.eqs {
		for _, term := range e.expr {
			seen[term.Var] = true
		}
	}
	vars := make([]LinVar, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })

	tb := NewTableau(vars)
	for _, e := range f.eqs {
		tb.AddEquality(e.expr, e.value)
	}
	point, ok, err := tb.Solve()
	if err != nil || !ok {
		return nil, false
	}
	out := make(map[LinVar]float64, len(vars))
	for i, v := range vars {
		out[v] = point[i]
	}
	return out, true
}

func (f *tableauLP) Minimize(v LinVar) (float64, bool, error) {
	sol, ok := f.solve()
	if !ok {
		return 0, false, nil
	}
	val, ok := sol[v]
	if !ok {
		return 0, false, nil
	}
	return val, true, nil
}

func (f *tableauLP) Maximize(v LinVar) (float64, bool, error) { return f.Minimize(v) }

func TestPolytopeContractorNarrowsSquareLinearSystem(t *testing.T) {
	d := dag.New()
	x := d.Var(1)
	y := d.Var(2)
	f1 := d.NewFun(d.Add(x, y), interval.Degenerate(3))
	f2 := d.NewFun(d.Sub(x, y), interval.Degenerate(1))

	box := domain.NewIntervalBox(scope.New(1, 2), func(id int) interval.Interval {
		return interval.New(-10, 10)
	})

	solver := newTableauLP()
	pc := NewPolytopeContractor([]*dag.Fun{f1, f2}, solver)
	proof, err := pc.Contract(box)
	require.NoError(t, err)
	assert.NotEqual(t, dag.Empty, proof)
	assert.InDelta(t, 2.0, box.At(1).Mid(), 1e-9)
	assert.InDelta(t, 1.0, box.At(2).Mid(), 1e-9)
}

func TestPolytopeContractorErrorsWithoutSolver(t *testing.T) {
	d := dag.New()
	x := d.Var(1)
	f := d.NewFun(x, interval.New(0, 1))
	pc := NewPolytopeContractor([]*dag.Fun{f}, nil)

	box := domain.NewIntervalBox(scope.New(1), func(id int) interval.Interval {
		return interval.New(0, 1)
	})
	_, err := pc.Contract(box)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoLPSolver))
}
