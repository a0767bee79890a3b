package domain

import (
	"fmt"

	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/scope"
)

// DomainBox is a Scope plus a dense vector of Domain values indexed by the
// Scope's local index. It owns its domains: splitting transfers ownership
// of a new Domain into the child box.
type DomainBox struct {
	sc   scope.Scope
	vals []Domain
}

// NewDomainBox builds a box over sc with every slot initialized to init.
func NewDomainBox(sc scope.Scope, init func(id int) Domain) *DomainBox {
	vals := make([]Domain, sc.Size())
	for i, id := range sc.IDs() {
		vals[i] = init(id)
	}
	return &DomainBox{sc: sc, vals: vals}
}

// Scope returns the box's scope.
func (b *DomainBox) Scope() scope.Scope { return b.sc }

// At returns the domain owned for variable id.
func (b *DomainBox) At(id int) Domain {
	i, ok := b.sc.Index(id)
	if !ok {
		panic(fmt.Sprintf("domain.DomainBox: variable %d not in scope", id))
	}
	return b.vals[i]
}

// Set replaces the domain owned for variable id.
func (b *DomainBox) Set(id int, d Domain) {
	i, ok := b.sc.Index(id)
	if !ok {
		panic(fmt.Sprintf("domain.DomainBox: variable %d not in scope", id))
	}
	b.vals[i] = d
}

// IsEmpty reports whether any coordinate domain is empty.
func (b *DomainBox) IsEmpty() bool {
	for _, d := range b.vals {
		if d.IsEmpty() {
			return true
		}
	}
	return false
}

// Clone returns a deep-enough copy: the Domain values are immutable data
// so copying the slice suffices to give the clone independent ownership.
func (b *DomainBox) Clone() *DomainBox {
	vals := make([]Domain, len(b.vals))
	copy(vals, b.vals)
	return &DomainBox{sc: b.sc, vals: vals}
}

// ToIntervalBox projects every coordinate domain to its interval hull.
func (b *DomainBox) ToIntervalBox() *IntervalBox {
	vals := make([]interval.Interval, len(b.vals))
	for i, d := range b.vals {
		vals[i] = d.Hull()
	}
	return &IntervalBox{sc: b.sc, vals: vals}
}

// AllCanonical reports whether every variable's domain is canonical under
// the corresponding tolerance.
func (b *DomainBox) AllCanonical(tols []Tolerance) bool {
	for i, d := range b.vals {
		if !d.IsCanonical(tols[i]) {
			return false
		}
	}
	return true
}
