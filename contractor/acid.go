package contractor

import (
	"sort"

	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/scope"
)

// SmearSumRel scores every variable reachable from funs by summing its
// row-normalized smear (|df_i/dx_j| * width(x_j)) across every function
// row, the heuristic both ACID's learning phase and the SSR selector use
// to rank variables by how much they influence the active constraints.
func SmearSumRel(funs []*dag.Fun, box *domain.IntervalBox) map[int]float64 {
	scores := make(map[int]float64)
	for _, f := range funs {
		d := f.Dag()
		ids := f.Scope().IDs()
		d.IntervalDiff(f.Root, box.At)
		row := make(map[int]float64, len(ids))
		var rowSum float64
		for _, id := range ids {
			w := box.At(id).Width()
			smear := d.IntervalPartial(id).Magnitude() * w
			row[id] = smear
			rowSum += smear
		}
		if rowSum == 0 {
			continue
		}
		for id, s := range row {
			scores[id] += s / rowSum
		}
	}
	return scores
}

// ACID (Adaptive CID) alternates a learning phase and an exploitation
// phase over fixed-length cycles. During learning it orders variables by
// SmearSumRel and applies Var3BCID to each in turn, recording the largest
// index at which the contraction ratio exceeded CtRatio. At the end of the
// learning window it averages those indices into NumVarCID, which
// exploitation then uses to decide how many leading Var3BCID contractors
// to run (falling back to HC4 when NumVarCID is zero).
type ACID struct {
	Funs        []*dag.Fun
	Propagator  Contractor // HC4 or equivalent fallback
	NbSlice3B   int
	NbSliceCID  int
	LearnLength int
	CycleLength int
	CtRatio     float64

	sc scope.Scope

	cyclePos   int
	learnSum   int
	learnCount int
	numVarCID  int
}

// NewACID builds an ACID contractor over funs, falling back to fallback
// (typically an HC4 or List-of-HC4) when the learning phase decides no
// variable-level contractor is warranted.
func NewACID(funs []*dag.Fun, fallback Contractor, nbSlice3B, nbSliceCID, learnLength, cycleLength int, ctRatio float64) *ACID {
	sc := scope.Empty()
	for _, f := range funs {
		sc = sc.Union(f.Scope())
	}
	return &ACID{
		Funs: funs, Propagator: fallback,
		NbSlice3B: nbSlice3B, NbSliceCID: nbSliceCID,
		LearnLength: learnLength, CycleLength: cycleLength, CtRatio: ctRatio,
		sc: sc,
	}
}

func (a *ACID) Scope() scope.Scope { return a.sc }

func (a *ACID) orderedVars(box *domain.IntervalBox) []int {
	scores := SmearSumRel(a.Funs, box)
	ids := a.sc.IDs()
	ordered := make([]int, len(ids))
	copy(ordered, ids)
	sort.Slice(ordered, func(i, j int) bool { return scores[ordered[i]] > scores[ordered[j]] })
	return ordered
}

func (a *ACID) var3BCIDFor(id int) *Var3BCID {
	return NewVar3BCID(a.Propagator, id, a.NbSlice3B, a.NbSliceCID)
}

func (a *ACID) Contract(box *domain.IntervalBox) (Proof, error) {
	inLearning := a.cyclePos < a.LearnLength
	a.cyclePos = (a.cyclePos + 1) % a.CycleLength

	if inLearning {
		return a.learnStep(box)
	}
	return a.exploitStep(box)
}

func (a *ACID) learnStep(box *domain.IntervalBox) (Proof, error) {
	vars := a.orderedVars(box)
	lastGain := -1
	var best Proof
	haveBest := false
	for i, id := range vars {
		before := box.At(id).Width()
		c := a.var3BCIDFor(id)
		p, err := c.Contract(box)
		if err != nil {
			return Maybe, err
		}
		if p == Empty {
			return Empty, nil
		}
		if !haveBest {
			best, haveBest = p, true
		} else {
			best = dag.Max(best, p)
		}
		after := box.At(id).Width()
		if before > 0 && (before-after)/before > a.CtRatio {
			lastGain = i
		}
	}
	a.learnSum += lastGain + 1
	a.learnCount++
	if a.cyclePos == 0 || a.learnCount == a.LearnLength {
		if a.learnCount > 0 {
			a.numVarCID = a.learnSum / a.learnCount
		}
		a.learnSum, a.learnCount = 0, 0
	}
	if !haveBest {
		return Maybe, nil
	}
	return best, nil
}

func (a *ACID) exploitStep(box *domain.IntervalBox) (Proof, error) {
	if a.numVarCID <= 0 {
		return a.Propagator.Contract(box)
	}
	vars := a.orderedVars(box)
	n := a.numVarCID
	if n > len(vars) {
		n = len(vars)
	}
	var best Proof
	haveBest := false
	for _, id := range vars[:n] {
		c := a.var3BCIDFor(id)
		p, err := c.Contract(box)
		if err != nil {
			return Maybe, err
		}
		if p == Empty {
			return Empty, nil
		}
		if !haveBest {
			best, haveBest = p, true
		} else {
			best = dag.Max(best, p)
		}
	}
	if !haveBest {
		return Maybe, nil
	}
	return best, nil
}
