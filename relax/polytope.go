package relax

import (
	"errors"
	"fmt"

	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/scope"
)

// ErrNoLPSolver is returned by PolytopeContractor.Contract when it is
// asked to fold a linear relaxation into propagation but was never given
// an LPSolver to emit it to.
var ErrNoLPSolver = errors.New("relax: polytope propagation requested but no LPSolver configured")

// PolytopeContractor folds the linear relaxation built by Relaxer into the
// contractor algebra: for the current box it rebuilds the relaxation over
// every Fun in Funs, then for each variable in Funs' combined scope asks
// Solver to minimize and maximize the variable's LinVar over the
// relaxation's feasible polytope, intersecting whatever bounds come back
// into the box. It implements the same (Scope, Contract) shape as
// contractor.Contractor structurally (contractor.Proof is a type alias of
// dag.Proof) so it can be dropped into a contractor.Propag list without
// this package importing contractor.
type PolytopeContractor struct {
	Funs   []*dag.Fun
	Solver LPSolver
}

// NewPolytopeContractor returns a PolytopeContractor relaxing funs via
// solver.
func NewPolytopeContractor(funs []*dag.Fun, solver LPSolver) *PolytopeContractor {
	return &PolytopeContractor{Funs: funs, Solver: solver}
}

// Scope returns the union of every relaxed function's scope.
func (c *PolytopeContractor) Scope() scope.Scope {
	sc := scope.Empty()
	for _, f := range c.Funs {
		sc = sc.Union(f.Scope())
	}
	return sc
}

// Contract rebuilds the relaxation over box and narrows every variable to
// the interval of its LP-optimal bounds intersected with its current
// domain. A bound the LP solver cannot certify (ok=false) leaves that
// side of the variable's domain untouched, never widened.
func (c *PolytopeContractor) Contract(box *domain.IntervalBox) (dag.Proof, error) {
	if c.Solver == nil {
		return dag.Maybe, fmt.Errorf("%w", ErrNoLPSolver)
	}
	if len(c.Funs) == 0 {
		return dag.Maybe, nil
	}

	r := NewRelaxer(c.Solver)
	for _, f := range c.Funs {
		r.Build(f, box)
	}

	anyNarrowed := false
	for _, id := range c.Scope().IDs() {
		v, ok := r.VarOf(c.Funs[0], id)
		if !ok {
			continue
		}
		cur := box.At(id)
		if cur.IsEmpty() {
			return dag.Empty, nil
		}
		lo, hi := cur.Lo, cur.Hi
		if minV, feasible, err := c.Solver.Minimize(v); err == nil && feasible && minV > lo {
			lo = minV
		}
		if maxV, feasible, err := c.Solver.Maximize(v); err == nil && feasible && maxV < hi {
			hi = maxV
		}
		narrowed := cur.Inter(interval.New(lo, hi))
		if narrowed.IsEmpty() {
			return dag.Empty, nil
		}
		if narrowed.Lo > cur.Lo || narrowed.Hi < cur.Hi {
			anyNarrowed = true
		}
		box.Set(id, narrowed)
	}

	if anyNarrowed {
		return dag.Feasible, nil
	}
	return dag.Maybe, nil
}
