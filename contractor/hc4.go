package contractor

import (
	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/scope"
)

// HC4 wraps a dag.Fun, delegating directly to dag.Dag.HC4Revise.
type HC4 struct {
	Fun *dag.Fun
}

// NewHC4 returns a contractor for f.
func NewHC4(f *dag.Fun) *HC4 { return &HC4{Fun: f} }

func (c *HC4) Scope() scope.Scope { return c.Fun.Scope() }

func (c *HC4) Contract(box *domain.IntervalBox) (Proof, error) {
	return c.Fun.Dag().HC4Revise(c.Fun, box.At, box.Set)
}
