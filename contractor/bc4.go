package contractor

import (
	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/scope"
)

// BC4 runs HC4, then one BC3Revise per variable that appears more than
// once in the function's expression tree — the variables HC4's single
// projection pass handles loosely because of dependency splitting.
type BC4 struct {
	Fun        *dag.Fun
	PeelFactor float64
	IterLimit  int
	NewtonTol  float64

	hc4      *HC4
	multiple []int
}

// NewBC4 returns a BC4 contractor for f.
func NewBC4(f *dag.Fun, peelFactor float64, iterLimit int, newtonTol float64) *BC4 {
	counts := occurrenceCounts(f.Dag(), f.Root)
	var multi []int
	for _, id := range f.Scope().IDs() {
		if counts[id] > 1 {
			multi = append(multi, id)
		}
	}
	return &BC4{
		Fun: f, PeelFactor: peelFactor, IterLimit: iterLimit, NewtonTol: newtonTol,
		hc4: NewHC4(f), multiple: multi,
	}
}

func (c *BC4) Scope() scope.Scope { return c.Fun.Scope() }

func (c *BC4) Contract(box *domain.IntervalBox) (Proof, error) {
	p, err := c.hc4.Contract(box)
	if err != nil || p == Empty {
		return p, err
	}
	best := p
	for _, id := range c.multiple {
		bc3 := NewBC3Revise(c.Fun, id, c.PeelFactor, c.IterLimit, c.NewtonTol)
		pp, err := bc3.Contract(box)
		if err != nil {
			return pp, err
		}
		if pp == Empty {
			return Empty, nil
		}
		best = dag.Max(best, pp)
	}
	return best, nil
}
