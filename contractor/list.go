package contractor

import (
	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/scope"
)

// List runs a fixed sequence of contractors in order, stopping as soon as
// one reports Empty.
type List struct {
	sc    scope.Scope
	items []Contractor
}

// NewList builds a List contractor over items, whose scope is the union
// of every item's scope.
func NewList(items ...Contractor) *List {
	sc := scope.Empty()
	for _, it := range items {
		sc = sc.Union(it.Scope())
	}
	return &List{sc: sc, items: items}
}

func (l *List) Scope() scope.Scope { return l.sc }

func (l *List) Contract(box *domain.IntervalBox) (Proof, error) {
	if len(l.items) == 0 {
		return Maybe, nil
	}
	best, err := l.items[0].Contract(box)
	if err != nil {
		return Maybe, err
	}
	if best == Empty {
		return Empty, nil
	}
	for _, it := range l.items[1:] {
		p, err := it.Contract(box)
		if err != nil {
			return Maybe, err
		}
		if p == Empty {
			return Empty, nil
		}
		best = dag.Max(best, p)
	}
	return best, nil
}
