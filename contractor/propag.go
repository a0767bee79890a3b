package contractor

import (
	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/scope"
)

// Propag runs a fixpoint propagation loop over a set of contractors:
// whenever a contractor tightens some variable's domain by more than the
// tolerance, every contractor whose scope intersects that variable is
// re-enqueued. The loop stops when the queue empties or the iteration
// limit is reached.
type Propag struct {
	sc        scope.Scope
	items     []Contractor
	RelTol    float64
	AbsTol    float64
	IterLimit int
}

// NewPropag builds a Propag contractor over items.
func NewPropag(relTol, absTol float64, iterLimit int, items ...Contractor) *Propag {
	sc := scope.Empty()
	for _, it := range items {
		sc = sc.Union(it.Scope())
	}
	return &Propag{sc: sc, items: items, RelTol: relTol, AbsTol: absTol, IterLimit: iterLimit}
}

func (p *Propag) Scope() scope.Scope { return p.sc }

func (p *Propag) significantChange(before, after *domain.IntervalBox, id int) bool {
	b, a := before.At(id), after.At(id)
	if a.IsEmpty() {
		return true
	}
	wb, wa := b.Width(), a.Width()
	if wb-wa <= p.AbsTol {
		return wb > 0 && (wb-wa) > p.RelTol*wb
	}
	return true
}

func (p *Propag) Contract(box *domain.IntervalBox) (Proof, error) {
	n := len(p.items)
	if n == 0 {
		return Maybe, nil
	}
	queue := make([]bool, n)
	for i := range queue {
		queue[i] = true
	}
	pending := n
	var best Proof
	haveBest := false

	for iter := 0; iter < p.IterLimit && pending > 0; iter++ {
		for i := 0; i < n; i++ {
			if !queue[i] {
				continue
			}
			queue[i] = false
			pending--

			before := box.Clone()
			proof, err := p.items[i].Contract(box)
			if err != nil {
				return Maybe, err
			}
			if proof == Empty {
				return Empty, nil
			}
			if !haveBest {
				best, haveBest = proof, true
			} else {
				best = dag.Max(best, proof)
			}

			changedIDs := p.items[i].Scope().IDs()
			for _, id := range changedIDs {
				if !p.significantChange(before, box, id) {
					continue
				}
				for j := 0; j < n; j++ {
					if j == i || queue[j] {
						continue
					}
					if p.items[j].Scope().Disjoint(p.items[i].Scope()) {
						continue
					}
					queue[j] = true
					pending++
				}
			}
		}
	}
	if !haveBest {
		return Maybe, nil
	}
	return best, nil
}
