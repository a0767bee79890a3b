package contractor

import (
	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/scope"
)

// BC3Revise is box consistency over one variable of a function: it finds
// the leftmost and rightmost values of VarID still consistent with the
// function's image by peeling ratio-sized slices off either end of the
// domain, testing each peel for interval consistency, and refining the
// retained boundary with a one-variable interval-Newton step.
type BC3Revise struct {
	Fun        *dag.Fun
	VarID      int
	PeelFactor float64 // fraction in (0, 0.5), e.g. 0.1 for a 10% peel
	IterLimit  int
	NewtonTol  float64
}

// NewBC3Revise returns a BC3Revise contractor with the given tuning
// parameters.
func NewBC3Revise(f *dag.Fun, varID int, peelFactor float64, iterLimit int, newtonTol float64) *BC3Revise {
	return &BC3Revise{Fun: f, VarID: varID, PeelFactor: peelFactor, IterLimit: iterLimit, NewtonTol: newtonTol}
}

func (c *BC3Revise) Scope() scope.Scope { return scope.New(c.VarID) }

func (c *BC3Revise) Contract(box *domain.IntervalBox) (Proof, error) {
	d := c.Fun.Dag()
	dom := box.At(c.VarID)
	if dom.IsEmpty() {
		return Empty, nil
	}

	fixedGet := func(id int) interval.Interval {
		if id == c.VarID {
			return dom
		}
		return box.At(id)
	}
	img := d.IntervalEval(c.Fun.Root, fixedGet)
	if img.Inter(c.Fun.Image).IsEmpty() {
		return Empty, nil
	}

	lo := c.shrinkBound(box, dom, true)
	hi := c.shrinkBound(box, dom, false)
	if lo > hi {
		return Empty, nil
	}
	narrowed := interval.New(lo, hi)
	box.Set(c.VarID, narrowed)
	if narrowed.Width() == 0 {
		return Feasible, nil
	}
	return Maybe, nil
}

// shrinkBound peels slices off one end of dom (the left end if fromLeft)
// until it finds a slice whose image is consistent with the function, then
// returns the boundary of that slice refined by one-variable Newton.
func (c *BC3Revise) shrinkBound(box *domain.IntervalBox, dom interval.Interval, fromLeft bool) float64 {
	d := c.Fun.Dag()
	cur := dom
	pct := c.PeelFactor
	if pct <= 0 || pct >= 0.5 {
		pct = 0.1
	}
	for i := 0; i < c.IterLimit; i++ {
		w := cur.Hi - cur.Lo
		if w <= 0 {
			break
		}
		var peel interval.Interval
		if fromLeft {
			peel = interval.New(cur.Lo, cur.Lo+w*pct)
		} else {
			peel = interval.New(cur.Hi-w*pct, cur.Hi)
		}
		get := func(id int) interval.Interval {
			if id == c.VarID {
				return peel
			}
			return box.At(id)
		}
		img := d.IntervalEval(c.Fun.Root, get)
		if !img.Inter(c.Fun.Image).IsEmpty() {
			refined := c.newtonRefine(box, peel)
			if fromLeft {
				return refined.Lo
			}
			return refined.Hi
		}
		if fromLeft {
			cur = interval.New(peel.Hi, cur.Hi)
		} else {
			cur = interval.New(cur.Lo, peel.Lo)
		}
	}
	if fromLeft {
		return cur.Lo
	}
	return cur.Hi
}

// newtonRefine runs a bounded one-variable interval-Newton iteration on x,
// fixing every other variable at its current box value.
func (c *BC3Revise) newtonRefine(box *domain.IntervalBox, x interval.Interval) interval.Interval {
	d := c.Fun.Dag()
	cur := x
	for i := 0; i < 8; i++ {
		get := func(id int) interval.Interval {
			if id == c.VarID {
				return cur
			}
			return box.At(id)
		}
		d.IntervalDiff(c.Fun.Root, get)
		deriv := d.IntervalPartial(c.VarID)
		if deriv.Contains(interval.Degenerate(0)) {
			break
		}
		fval := d.Node(c.Fun.Root).IVal.Sub(c.Fun.Image)
		mid := interval.Degenerate(cur.Mid())
		step := fval.Div(deriv)
		candidate := mid.Sub(step).Inter(cur)
		if candidate.IsEmpty() {
			break
		}
		if candidate.Width() >= cur.Width()*(1-c.NewtonTol) {
			cur = candidate
			break
		}
		cur = candidate
	}
	return cur
}
