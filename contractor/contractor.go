// Package contractor implements the contractor algebra: primitive
// consistency operators (HC4, BC3Revise, BC4, AffineRevise, Newton, Domain,
// Constraint) and the combinators that compose them (CID, 3B, 3BCID,
// VarCID, Var3BCID, ACID, List, Propag).
package contractor

import (
	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/scope"
)

// Proof is the consistency certificate a contraction step produces.
type Proof = dag.Proof

const (
	Empty    = dag.Empty
	Maybe    = dag.Maybe
	Feasible = dag.Feasible
	Inner    = dag.Inner
)

// Contractor narrows an IntervalBox and reports how much of it survives.
// Implementations never widen a box: every call either tightens some
// coordinate or leaves it unchanged.
type Contractor interface {
	Scope() scope.Scope
	Contract(box *domain.IntervalBox) (Proof, error)
}

// occurrenceCounts returns, for every variable reachable from root, the
// number of leaf references to it in the expression tree rooted at root
// (shared subexpressions counted once per distinct path, matching the
// "appears more than once" test BC4 needs).
func occurrenceCounts(d *dag.Dag, root int) map[int]int {
	memo := make(map[int]map[int]int)
	var visit func(i int) map[int]int
	visit = func(i int) map[int]int {
		if m, ok := memo[i]; ok {
			return m
		}
		n := d.Node(i)
		out := make(map[int]int)
		if n.Op == dag.OpVar {
			out[n.VarID] = 1
		} else {
			for _, c := range n.Children {
				for id, cnt := range visit(c) {
					out[id] += cnt
				}
			}
		}
		memo[i] = out
		return out
	}
	return visit(root)
}
