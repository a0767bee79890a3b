package solver

import (
	"errors"
	"fmt"

	"github.com/gokando-numerics/realpaver/contractor"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/relax"
	"github.com/gokando-numerics/realpaver/search"
)

// ErrNodeLimit is returned by Driver.Run when the search stops because it
// exhausted Params.NodeLimit with pending nodes still unexplored.
var ErrNodeLimit = errors.New("solver: node limit reached")

// Solution is one reported box, tagged with the proof certificate it was
// reached under and its position in the search tree.
type Solution struct {
	Box   *domain.DomainBox
	Proof contractor.Proof
	Depth int
	Index int
}

// Driver runs the branch-and-prune main loop described in §4.9: pop a
// pending node, contract it, discard it if Empty, tag it a solution if
// canonical, else split it and push the children.
type Driver struct {
	Params   Params
	Problem  *Problem
	propag   contractor.Contractor
	domainCt *contractor.DomainContractor
}

// NewDriver builds a Driver over problem using params, assembling the
// propagator (BC4 per numeric constraint, plus a DomainContractor for
// discrete domains and adapted opaque constraints) and then layering on
// whichever of Params.Propagator and Params.PropagationWithPolytope the
// caller requested. It returns an error rather than silently ignoring a
// setting it cannot honor: an HC4+Newton request over a non-square
// system, or a polytope request with no LPSolver configured.
func NewDriver(problem *Problem, params Params) (*Driver, error) {
	items := make([]contractor.Contractor, 0, len(problem.Funs())+len(problem.OpaqueConstraints()))
	for _, f := range problem.Funs() {
		items = append(items, contractor.NewBC4(f, params.BC3PeelFactor, params.BC3IterLimit, params.NewtonRelTol))
	}
	for _, c := range problem.OpaqueConstraints() {
		items = append(items, contractor.NewConstraintContractor(c))
	}
	domainCt := contractor.NewDomainContractor(problem.InitialBox())
	items = append(items, domainCt)

	var propag contractor.Contractor
	if len(items) > 0 {
		propag = contractor.NewPropag(params.PropagationRelTol, params.PropagationAbsTol, params.PropagationIterLimit, items...)
	} else {
		propag = domainCt
	}

	switch params.Propagator {
	case PropagateHC4Newton:
		funs := problem.Funs()
		vars := problem.Scope().IDs()
		if len(funs) == 0 || len(funs) != len(vars) {
			return nil, fmt.Errorf("solver: HC4+Newton propagator requires a square system (%d equations, %d variables)", len(funs), len(vars))
		}
		newton := contractor.NewNewtonStep(funs, vars, params.InflationDelta, params.InflationChi, params.GaussSeidelRelTol, params.NewtonIterLimit, params.GaussSeidelIterLimit)
		propag = contractor.NewPropag(params.PropagationRelTol, params.PropagationAbsTol, params.PropagationIterLimit, propag, newton)
	case PropagateACID:
		if len(problem.Funs()) > 0 {
			propag = contractor.NewACID(problem.Funs(), propag, params.NbSlice3B, params.NbSliceCID, params.AcidLearnLength, params.AcidCycleLength, params.AcidCtRatio)
		}
	}

	if params.PropagationWithPolytope != PolytopeOff {
		if params.LPSolver == nil {
			return nil, fmt.Errorf("solver: %w", relax.ErrNoLPSolver)
		}
		poly := relax.NewPolytopeContractor(problem.Funs(), params.LPSolver)
		propag = contractor.NewPropag(params.PropagationRelTol, params.PropagationAbsTol, params.PropagationIterLimit, propag, poly)
	}

	if params.Logger == nil {
		params.Logger = search.NopLogger{}
	}
	return &Driver{Params: params, Problem: problem, propag: propag, domainCt: domainCt}, nil
}

func (d *Driver) buildSpace() search.Space {
	tols := d.Problem.Tolerances()
	switch d.Params.Space {
	case SpaceBFS:
		return search.NewBFS()
	case SpaceDMDFS:
		return search.NewDMDFS()
	case SpaceHybridDFS:
		return search.NewHybridDFS(search.RankDepth, tols)
	default:
		return search.NewDFS()
	}
}

func (d *Driver) buildSelector() search.Selector {
	switch d.Params.Selector {
	case SelectLF:
		return search.LF{}
	case SelectSF:
		return search.SF{}
	case SelectSLF:
		return search.SLF{}
	case SelectSSR:
		return search.SSR{Funs: d.Problem.Funs()}
	default:
		return search.RR{}
	}
}

// Run drives the search to completion (or to Params.NodeLimit), returning
// every solution found. ctx.Remove is invoked on every node dropped,
// whether by pruning or by becoming a solution or a split parent.
func (d *Driver) Run() ([]Solution, error) {
	space := d.buildSpace()
	sel := d.buildSelector()
	splitter := search.NewNcspSplit(sel)
	if h, ok := space.(*search.HybridDFS); ok {
		splitter.Leftward = h.Leftward
	}
	ctx := search.NewContext()
	tols := d.Problem.Tolerances()

	nextID := 0
	newID := func() int { id := nextID; nextID++; return id }

	root := search.NewRootNode(newID(), d.Problem.InitialBox())
	space.Push(root)

	var solutions []Solution
	nodesProcessed := 0

	for {
		node, ok := space.Next()
		if !ok {
			break
		}
		if d.Params.NodeLimit > 0 && nodesProcessed >= d.Params.NodeLimit {
			return solutions, fmt.Errorf("after %d nodes: %w", nodesProcessed, ErrNodeLimit)
		}
		nodesProcessed++

		ibox := node.Box.ToIntervalBox()
		proof, err := d.propag.Contract(ibox)
		if err != nil {
			return solutions, fmt.Errorf("solver: contracting node %d: %w", node.ID, err)
		}
		ctx.Remove(node.ID)

		if proof == contractor.Empty {
			d.Params.Logger.Logf("node %d: empty", node.ID)
			continue
		}
		node.Box = reconcile(node.Box, ibox)
		node.Proof = proof

		if node.Box.AllCanonical(tols) || d.Params.MaxDepth > 0 && node.Depth >= d.Params.MaxDepth {
			sol := Solution{Box: node.Box, Proof: proof, Depth: node.Depth, Index: len(solutions)}
			solutions = append(solutions, sol)
			space.NoteSolution(node.Box)
			d.Params.Logger.Logf("node %d: solution (proof=%v, depth=%d)", node.ID, proof, node.Depth)
			if d.Params.FirstSolutionOnly {
				break
			}
			continue
		}

		children := splitter.Split(node, tols, newID)
		if len(children) == 0 {
			sol := Solution{Box: node.Box, Proof: proof, Depth: node.Depth, Index: len(solutions)}
			solutions = append(solutions, sol)
			space.NoteSolution(node.Box)
			continue
		}
		for _, c := range children {
			space.Push(c)
		}
	}

	return clusterSolutions(solutions, d.Params.SolutionClusterGap), nil
}

// reconcile writes the narrowed interval coordinates back into a
// DomainBox's discrete/continuous representation via ContractWith, which
// every Domain variant implements to intersect its own structure (not just
// its hull) with the tightened interval.
func reconcile(box *domain.DomainBox, ibox *domain.IntervalBox) *domain.DomainBox {
	out := box.Clone()
	for _, id := range box.Scope().IDs() {
		out.Set(id, out.At(id).ContractWith(ibox.At(id)))
	}
	return out
}

// clusterSolutions merges pairs of solutions whose box gap is under gap by
// taking the hull of the two boxes, repeating until no pair qualifies —
// the fixed point the clustering step must reach (idempotent on a second
// pass over its own output).
func clusterSolutions(sols []Solution, gap float64) []Solution {
	if gap <= 0 || len(sols) < 2 {
		return sols
	}
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(sols); i++ {
			for j := i + 1; j < len(sols); j++ {
				if sols[i].Box.ToIntervalBox().GapTo(sols[j].Box.ToIntervalBox()) > gap {
					continue
				}
				merged := hullBoxes(sols[i].Box, sols[j].Box)
				depth := sols[i].Depth
				if sols[j].Depth < depth {
					depth = sols[j].Depth
				}
				proof := sols[i].Proof
				if sols[j].Proof < proof {
					proof = sols[j].Proof
				}
				sols[i] = Solution{Box: merged, Proof: proof, Depth: depth, Index: sols[i].Index}
				sols = append(sols[:j], sols[j+1:]...)
				changed = true
				break
			}
			if changed {
				break
			}
		}
	}
	for i := range sols {
		sols[i].Index = i
	}
	return sols
}

// hullBoxes merges two solution boxes coordinate-wise. The merged
// coordinate is reported as the plain interval hull even for originally
// discrete variables: clustering only runs over near-coincident solution
// boxes for reporting purposes, never feeding the result back into
// search, so collapsing to an interval here loses no soundness the driver
// depends on.
func hullBoxes(a, b *domain.DomainBox) *domain.DomainBox {
	out := a.Clone()
	for _, id := range a.Scope().IDs() {
		h := out.At(id).Hull().Hull(b.At(id).Hull())
		out.Set(id, domain.IntervalDomain{X: h})
	}
	return out
}
