package search

import (
	"github.com/gokando-numerics/realpaver/contractor"
	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
)

// Selector picks the next variable to split in node, or ok=false if no
// variable in the node's scope is still splittable under tols.
type Selector interface {
	Select(node *Node, tols []domain.Tolerance) (id int, ok bool)
}

// isDiscrete reports whether d is one of the integer-valued Domain
// variants (Range/RangeUnion/Binary), as opposed to a real-valued one.
func isDiscrete(d domain.Domain) bool {
	switch d.(type) {
	case domain.RangeDomain, domain.RangeUnionDomain, domain.BinaryDomain:
		return true
	default:
		return false
	}
}

// sizeMetric is the "size" spec.md's selectors compare: width over
// absolute tolerance for real domains, raw cardinality for discrete ones.
func sizeMetric(d domain.Domain, tol domain.Tolerance) float64 {
	if isDiscrete(d) {
		return d.Size()
	}
	if tol.Abs <= 0 {
		return d.Size()
	}
	return d.Size() / tol.Abs
}

func splittableIDs(box *domain.DomainBox, tols []domain.Tolerance) []int {
	ids := box.Scope().IDs()
	var out []int
	for i, id := range ids {
		if !tols[i].Satisfied(box.At(id).Hull()) {
			out = append(out, id)
		}
	}
	return out
}

// RR (round-robin) resumes scanning the scope from the successor of the
// variable last split on this lineage, wrapping around.
type RR struct{}

func (RR) Select(node *Node, tols []domain.Tolerance) (int, bool) {
	ids := node.Box.Scope().IDs()
	if len(ids) == 0 {
		return 0, false
	}
	start := 0
	if node.SplitVar >= 0 {
		for i, id := range ids {
			if id == node.SplitVar {
				start = (i + 1) % len(ids)
				break
			}
		}
	}
	for k := 0; k < len(ids); k++ {
		i := (start + k) % len(ids)
		id := ids[i]
		if !tols[i].Satisfied(node.Box.At(id).Hull()) {
			return id, true
		}
	}
	return 0, false
}

// LF (largest-first) picks the splittable variable of maximum size.
type LF struct{}

func (LF) Select(node *Node, tols []domain.Tolerance) (int, bool) {
	return extremeBySize(node, tols, true)
}

// SF (smallest-first) is LF's dual.
type SF struct{}

func (SF) Select(node *Node, tols []domain.Tolerance) (int, bool) {
	return extremeBySize(node, tols, false)
}

func extremeBySize(node *Node, tols []domain.Tolerance, wantMax bool) (int, bool) {
	ids := node.Box.Scope().IDs()
	best, bestScore := -1, 0.0
	found := false
	for i, id := range ids {
		d := node.Box.At(id)
		if tols[i].Satisfied(d.Hull()) {
			continue
		}
		score := sizeMetric(d, tols[i])
		if !found || (wantMax && score > bestScore) || (!wantMax && score < bestScore) {
			best, bestScore, found = id, score, true
		}
	}
	return best, found
}

// SLF (small-large-first): prefer the splittable integer variable of
// smallest cardinality; if none remain, fall back to the splittable real
// of largest relative size.
type SLF struct{}

func (SLF) Select(node *Node, tols []domain.Tolerance) (int, bool) {
	ids := node.Box.Scope().IDs()
	best, bestScore := -1, 0.0
	found := false
	for i, id := range ids {
		d := node.Box.At(id)
		if !isDiscrete(d) || tols[i].Satisfied(d.Hull()) {
			continue
		}
		score := d.Size()
		if !found || score < bestScore {
			best, bestScore, found = id, score, true
		}
	}
	if found {
		return best, true
	}
	return LF{}.Select(node, tols)
}

// SSR (smear-sum-relative) picks the splittable variable maximizing the
// SmearSumRel score computed from the interval Jacobian of funs over the
// node's box.
type SSR struct {
	Funs []*dag.Fun
}

func (s SSR) Select(node *Node, tols []domain.Tolerance) (int, bool) {
	scores := SmearSumRel(s.Funs, node.Box.ToIntervalBox())
	ids := node.Box.Scope().IDs()
	best, bestScore := -1, -1.0
	found := false
	for i, id := range ids {
		if tols[i].Satisfied(node.Box.At(id).Hull()) {
			continue
		}
		sc, ok := scores[id]
		if !ok {
			sc = 0
		}
		if !found || sc > bestScore {
			best, bestScore, found = id, sc, true
		}
	}
	return best, found
}

// SmearSumRel delegates to contractor.SmearSumRel: the search layer
// exposes the same scoring under its own name since both ACID and the SSR
// selector need it, and search is free to depend on contractor (L3) while
// contractor stays selector-agnostic.
func SmearSumRel(funs []*dag.Fun, box *domain.IntervalBox) map[int]float64 {
	return contractor.SmearSumRel(funs, box)
}
