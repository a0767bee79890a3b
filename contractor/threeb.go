package contractor

import (
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/scope"
	"github.com/gokando-numerics/realpaver/slicer"
)

// ThreeB shaves outermost inconsistent slices off both ends of v's domain:
// it slices the domain into NbSlice parts and tests op's consistency on
// each end slice, removing slices from the outside in until a consistent
// one is found (mirroring BC3Revise's peel loop but driven by an arbitrary
// wrapped contractor rather than a single DAG function).
type ThreeB struct {
	Op      Contractor
	VarID   int
	NbSlice int
}

// NewThreeB returns a ThreeB contractor.
func NewThreeB(op Contractor, varID, nbSlice int) *ThreeB {
	return &ThreeB{Op: op, VarID: varID, NbSlice: nbSlice}
}

func (c *ThreeB) Scope() scope.Scope { return c.Op.Scope() }

func (c *ThreeB) Contract(box *domain.IntervalBox) (Proof, error) {
	dom := box.At(c.VarID)
	if dom.IsEmpty() {
		return Empty, nil
	}
	n := c.NbSlice
	if n < 2 {
		n = 2
	}
	var isl slicer.IntervalSlicer
	slices := isl.Partition(dom, n)

	lo, err := c.firstConsistent(box, slices, false)
	if err != nil {
		return Maybe, err
	}
	if lo < 0 {
		return Empty, nil
	}
	hi, err := c.firstConsistent(box, slices, true)
	if err != nil {
		return Maybe, err
	}
	shaved := interval.New(slices[lo].Lo, slices[hi].Hi)
	narrowed := dom.Inter(shaved)
	if narrowed.IsEmpty() {
		return Empty, nil
	}
	box.Set(c.VarID, narrowed)
	if narrowed.Width() < dom.Width() {
		return Maybe, nil
	}
	return Maybe, nil
}

// firstConsistent scans slices from the left (or, if fromRight, from the
// right) and returns the index of the first one for which a trial
// contraction does not report Empty, or -1 if none do.
func (c *ThreeB) firstConsistent(box *domain.IntervalBox, slices []interval.Interval, fromRight bool) (int, error) {
	n := len(slices)
	for k := 0; k < n; k++ {
		i := k
		if fromRight {
			i = n - 1 - k
		}
		trial := box.Clone()
		trial.Set(c.VarID, slices[i])
		p, err := c.Op.Contract(trial)
		if err != nil {
			return -1, err
		}
		if p != Empty {
			return i, nil
		}
	}
	return -1, nil
}
