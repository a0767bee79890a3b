package contractor

import (
	"math"

	"github.com/gokando-numerics/realpaver/affine"
	"github.com/gokando-numerics/realpaver/affinebuild"
	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/scope"
)

// AffineRevise builds the affine form of f over the box, then for each
// variable balances its own noise term against the target image: since
// the form evaluates to a0 + coef_id*e_id + (the rest), admitting a value
// in f.Image requires coef_id*e_id to lie in f.Image minus the rest's own
// enclosure, which bounds e_id and therefore the variable itself.
type AffineRevise struct {
	Fun *dag.Fun
}

// NewAffineRevise returns an AffineRevise contractor for f.
func NewAffineRevise(f *dag.Fun) *AffineRevise { return &AffineRevise{Fun: f} }

func (c *AffineRevise) Scope() scope.Scope { return c.Fun.Scope() }

func (c *AffineRevise) Contract(box *domain.IntervalBox) (Proof, error) {
	d := c.Fun.Dag()
	b := affinebuild.NewBuilder(d)
	if err := b.Build(c.Fun.Root, box.At); err != nil {
		return Maybe, err
	}
	form := b.Form(c.Fun.Root)
	if form.IsEmpty() {
		return Empty, nil
	}
	if form.IsInf() {
		return Maybe, nil
	}
	img := form.Eval()
	if img.Inter(c.Fun.Image).IsEmpty() {
		return Empty, nil
	}

	for _, id := range c.Fun.Scope().IDs() {
		cur := box.At(id)
		narrowed := c.balance(form, id, cur)
		if narrowed.IsEmpty() {
			return Empty, nil
		}
		box.Set(id, narrowed)
	}

	if img.Lo >= c.Fun.Image.Lo && img.Hi <= c.Fun.Image.Hi {
		return Inner, nil
	}
	return Maybe, nil
}

func (c *AffineRevise) balance(form affine.Form, id int, cur interval.Interval) interval.Interval {
	coef := form.CoeffOf(int64(id))
	if coef.Lo == 0 && coef.Hi == 0 {
		return cur
	}
	rest := form.WithoutTerm(int64(id))
	restImg := rest.Eval()
	rhs := c.Fun.Image.Sub(restImg)
	eBound := rhs.Div(coef).Inter(interval.New(-1, 1))
	if eBound.IsEmpty() {
		return interval.Empty()
	}
	mid := cur.Mid()
	r := math.Max(cur.Hi-mid, mid-cur.Lo)
	lo, hi := mid+r*eBound.Lo, mid+r*eBound.Hi
	if lo > hi {
		lo, hi = hi, lo
	}
	return cur.Inter(interval.New(lo, hi))
}
