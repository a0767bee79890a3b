package contractor

import (
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/scope"
)

// DomainContractor intersects every variable's interval coordinate with
// the hull of its declared (possibly disconnected) domain — the step that
// keeps a union/range-union/binary variable's box-level representation
// faithful to its underlying discrete domain during propagation.
type DomainContractor struct {
	sc      scope.Scope
	domains *domain.DomainBox
}

// NewDomainContractor binds a DomainContractor to the variables owned by
// domains; the box passed to Contract supplies the interval coordinates to
// narrow, and is updated in place.
func NewDomainContractor(domains *domain.DomainBox) *DomainContractor {
	return &DomainContractor{sc: domains.Scope(), domains: domains}
}

func (c *DomainContractor) Scope() scope.Scope { return c.sc }

func (c *DomainContractor) Contract(box *domain.IntervalBox) (Proof, error) {
	for _, id := range c.sc.IDs() {
		d := c.domains.At(id)
		cur := box.At(id)
		narrowed := d.Hull().Inter(cur)
		if narrowed.IsEmpty() {
			return Empty, nil
		}
		box.Set(id, narrowed)
	}
	return Maybe, nil
}
