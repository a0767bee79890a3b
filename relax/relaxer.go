package relax

import (
	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/interval"
)

// Relaxer builds one LinVar per DAG node, linked by sound linear
// over/under-estimators: exact for the affine ops (Add/Sub/Neg/Lin),
// McCormick envelopes for bilinear products, and tangent/secant bounds for
// Sqr. Every other op falls back to bounding its LinVar by the node's
// interval image alone — a weaker but still sound relaxation, since RLT's
// polynomial reformulation has no standard linearization for transcendental
// functions.
type Relaxer struct {
	solver LPSolver
	d      *dag.Dag
	nodeOf []LinVar
	built  []bool
}

// NewRelaxer returns a Relaxer that will emit its linear model to solver.
func NewRelaxer(solver LPSolver) *Relaxer {
	return &Relaxer{solver: solver}
}

// Build emits makeVar/addCtr calls for every node reachable from fun,
// evaluated over box, and returns the LinVar standing for fun's root.
func (r *Relaxer) Build(fun *dag.Fun, box *domain.IntervalBox) LinVar {
	r.d = fun.Dag()
	r.d.IntervalEval(fun.Root, box.At)
	n := r.d.Len()
	if len(r.nodeOf) < n {
		grown := make([]LinVar, n)
		copy(grown, r.nodeOf)
		r.nodeOf = grown
		builtGrown := make([]bool, n)
		copy(builtGrown, r.built)
		r.built = builtGrown
	}
	for i := 0; i <= fun.Root; i++ {
		r.buildOne(i)
	}
	root := r.nodeOf[fun.Root]
	r.solver.AddCtr(fun.Image.Lo, LinExpr{{Coef: 1, Var: root}}, fun.Image.Hi)
	return root
}

func (r *Relaxer) buildOne(i int) {
	if r.built[i] {
		return
	}
	r.built[i] = true
	node := r.d.Node(i)
	lo, hi := node.IVal.Lo, node.IVal.Hi
	v := r.solver.MakeVar(lo, hi)
	r.nodeOf[i] = v

	ch := func(k int) LinVar { return r.nodeOf[node.Children[k]] }
	chI := func(k int) interval.Interval { return r.d.Node(node.Children[k]).IVal }

	switch node.Op {
	case dag.OpConst:
		r.solver.AddCtr(node.Const.Lo, LinExpr{{Coef: 1, Var: v}}, node.Const.Hi)
	case dag.OpVar:
		// bounds already set by MakeVar(lo, hi); nothing further to link.
	case dag.OpAdd:
		r.exact(v, LinExpr{{1, ch(0)}, {1, ch(1)}})
	case dag.OpSub:
		r.exact(v, LinExpr{{1, ch(0)}, {-1, ch(1)}})
	case dag.OpUsb:
		r.exact(v, LinExpr{{-1, ch(0)}})
	case dag.OpMul:
		r.mccormick(v, ch(0), ch(1), chI(0), chI(1))
	case dag.OpSqr:
		r.sqrEnvelope(v, ch(0), chI(0))
	case dag.OpLin:
		// v = sum(coef_k * x_k) + cst  <=>  sum(coef_k * x_k) - v = -cst
		expr := make(LinExpr, 0, len(node.LinCoefs)+1)
		for k, coef := range node.LinCoefs {
			expr = append(expr, Term{Coef: coef.Mid(), Var: ch(k)})
		}
		cst := node.LinCst.Mid()
		expr = append(expr, Term{Coef: -1, Var: v})
		r.solver.AddCtr(-cst, expr, -cst)
	default:
		// no tighter linear relation available; v's own [lo, hi] bound
		// (already registered by MakeVar) is the full relaxation.
	}
}

// exact registers v == expr as a single equality row (lo == up == 0).
func (r *Relaxer) exact(v LinVar, expr LinExpr) {
	full := append(LinExpr{{Coef: -1, Var: v}}, expr...)
	r.solver.AddCtr(0, full, 0)
}

// mccormick emits the four standard McCormick envelope constraints for
// z = x*y given x in [xl,xu], y in [yl,yu].
func (r *Relaxer) mccormick(z, x, y LinVar, xi, yi interval.Interval) {
	xl, xu, yl, yu := xi.Lo, xi.Hi, yi.Lo, yi.Hi
	// z >= xl*y + yl*x - xl*yl
	r.solver.AddCtr(-xl*yl, LinExpr{{1, z}, {-yl, x}, {-xl, y}}, posInf())
	// z >= xu*y + yu*x - xu*yu
	r.solver.AddCtr(-xu*yu, LinExpr{{1, z}, {-yu, x}, {-xu, y}}, posInf())
	// z <= xu*y + yl*x - xu*yl
	r.solver.AddCtr(negInf(), LinExpr{{1, z}, {-yl, x}, {-xu, y}}, -xu*yl)
	// z <= xl*y + yu*x - xl*yu
	r.solver.AddCtr(negInf(), LinExpr{{1, z}, {-yu, x}, {-xl, y}}, -xl*yu)
}

// sqrEnvelope bounds z = x^2 by its two boundary tangents (underestimators,
// since x^2 is convex) and the secant between xl and xu (overestimator).
func (r *Relaxer) sqrEnvelope(z, x LinVar, xi interval.Interval) {
	xl, xu := xi.Lo, xi.Hi
	r.solver.AddCtr(-xl*xl, LinExpr{{1, z}, {-2 * xl, x}}, posInf())
	r.solver.AddCtr(-xu*xu, LinExpr{{1, z}, {-2 * xu, x}}, posInf())
	r.solver.AddCtr(negInf(), LinExpr{{1, z}, {-(xl + xu), x}}, -xl*xu)
}

func posInf() float64 { return 1e300 }
func negInf() float64 { return -1e300 }

// VarOf returns the LinVar standing for variable id, valid only after a
// Build call whose function depends on id.
func (r *Relaxer) VarOf(f *dag.Fun, id int) (LinVar, bool) {
	idx, ok := f.Dag().VarNodeIndex(id)
	if !ok {
		return 0, false
	}
	return r.nodeOf[idx], true
}
