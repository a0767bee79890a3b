package contractor

import (
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/scope"
)

// Constraint is the interface an opaque, non-numeric constraint (a table
// constraint, a disjunctive condition not reduced to DAG form) must
// satisfy to participate in the contractor algebra alongside DAG-backed
// contractors.
type Constraint interface {
	Scope() scope.Scope
	Contract(box *domain.IntervalBox) (Proof, error)
}

// ConstraintContractor adapts a Constraint to the Contractor interface —
// trivial today, but it keeps List/Propag from needing to know whether a
// sub-contractor is DAG-backed or opaque.
type ConstraintContractor struct {
	C Constraint
}

// NewConstraintContractor wraps c.
func NewConstraintContractor(c Constraint) *ConstraintContractor {
	return &ConstraintContractor{C: c}
}

func (w *ConstraintContractor) Scope() scope.Scope { return w.C.Scope() }

func (w *ConstraintContractor) Contract(box *domain.IntervalBox) (Proof, error) {
	return w.C.Contract(box)
}
