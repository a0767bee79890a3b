package contractor

import (
	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/scope"
	"github.com/gokando-numerics/realpaver/slicer"
)

// CID (Constructive Interval Disjunction): slices variable v's domain,
// runs the wrapped contractor on each slice, and returns the hull of the
// contracted slices — a composite that is never weaker than running the
// wrapped contractor on the whole domain once.
type CID struct {
	Op      Contractor
	VarID   int
	NbSlice int
}

// NewCID returns a CID contractor slicing VarID into nbSlice equal parts
// before running op on each.
func NewCID(op Contractor, varID, nbSlice int) *CID {
	return &CID{Op: op, VarID: varID, NbSlice: nbSlice}
}

func (c *CID) Scope() scope.Scope { return c.Op.Scope() }

func (c *CID) Contract(box *domain.IntervalBox) (Proof, error) {
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

	hull := interval.Empty()
	best := Empty
	haveAny := false

	for _, s := range slices {
		trial := box.Clone()
		trial.Set(c.VarID, s)
		p, err := c.Op.Contract(trial)
		if err != nil {
			return Maybe, err
		}
		if p == Empty {
			continue
		}
		hull = hull.Hull(trial.At(c.VarID))
		for _, id := range c.Op.Scope().IDs() {
			if id == c.VarID {
				continue
			}
			cur := box.At(id)
			if !haveAny {
				box.Set(id, trial.At(id))
			} else {
				box.Set(id, cur.Hull(trial.At(id)))
			}
		}
		if !haveAny {
			best = p
		} else {
			best = dag.Max(best, p)
		}
		haveAny = true
	}
	if !haveAny {
		return Empty, nil
	}
	box.Set(c.VarID, hull.Inter(dom))
	return best, nil
}
