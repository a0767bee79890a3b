package contractor

import (
	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/scope"
	"gonum.org/v1/gonum/mat"
)

// NewtonStep applies preconditioned interval Gauss-Seidel to a square
// system of Funs (one equation per entry of Vars): each outer (Newton)
// iteration re-evaluates the interval Jacobian at the current box,
// preconditions it with the inverse of the Jacobian evaluated at the box
// midpoint (via gonum's mat.Dense.Inverse), and sweeps the preconditioned
// system with bounded interval Gauss-Seidel relaxation before
// re-linearizing, narrowing the box the way repeated interval-Newton
// refinement does for square nonlinear systems.
type NewtonStep struct {
	Funs  []*dag.Fun
	Vars  []int
	Delta float64 // inflation factor, > 1
	Chi   float64 // inflation additive term, > 0

	// NewtonIterLimit bounds how many times the Jacobian is
	// re-evaluated and re-inverted (the outer Newton loop).
	NewtonIterLimit int
	// GaussSeidelIterLimit bounds the inner interval Gauss-Seidel
	// sweeps run against each linearization.
	GaussSeidelIterLimit int
	RelTol               float64
}

// NewNewtonStep returns a NewtonStep contractor over a square system:
// len(funs) must equal len(vars).
func NewNewtonStep(funs []*dag.Fun, vars []int, delta, chi, relTol float64, newtonIterLimit, gaussSeidelIterLimit int) *NewtonStep {
	return &NewtonStep{
		Funs:                 funs,
		Vars:                 vars,
		Delta:                delta,
		Chi:                  chi,
		RelTol:               relTol,
		NewtonIterLimit:      newtonIterLimit,
		GaussSeidelIterLimit: gaussSeidelIterLimit,
	}
}

func (c *NewtonStep) Scope() scope.Scope {
	sc := scope.Empty()
	for _, f := range c.Funs {
		sc = sc.Union(f.Scope())
	}
	return sc
}

// jacobianRow evaluates f's interval Jacobian row over box (one entry per
// c.Vars column) plus the real residual of f at the box midpoint.
func (c *NewtonStep) jacobianRow(f *dag.Fun, box *domain.IntervalBox, mid func(id int) float64) ([]interval.Interval, float64) {
	d := f.Dag()
	d.IntervalDiff(f.Root, box.At)
	row := make([]interval.Interval, len(c.Vars))
	for j, id := range c.Vars {
		row[j] = d.IntervalPartial(id)
	}
	fm := d.RealEval(f.Root, mid) - f.Image.Mid()
	return row, fm
}

func (c *NewtonStep) Contract(box *domain.IntervalBox) (Proof, error) {
	n := len(c.Vars)
	if n == 0 || len(c.Funs) != n {
		return Maybe, nil
	}

	outerLimit := c.NewtonIterLimit
	if outerLimit <= 0 {
		outerLimit = 1
	}

	proof := Maybe
	for outer := 0; outer < outerLimit; outer++ {
		p, changed, err := c.relinearizeAndSweep(box)
		if err != nil {
			return Maybe, err
		}
		if p == Empty {
			return Empty, nil
		}
		if p == Inner {
			proof = Inner
		}
		if !changed {
			break
		}
	}
	return proof, nil
}

// relinearizeAndSweep builds one interval Jacobian / midpoint
// preconditioner over the current box and runs up to
// c.GaussSeidelIterLimit interval Gauss-Seidel sweeps against it,
// reporting whether any coordinate narrowed.
func (c *NewtonStep) relinearizeAndSweep(box *domain.IntervalBox) (Proof, bool, error) {
	n := len(c.Vars)
	inflated := box.Inflate(c.Delta, c.Chi)
	mid := func(id int) float64 { return box.At(id).Mid() }

	jac := make([][]interval.Interval, n)
	res := make([]float64, n)
	jmid := mat.NewDense(n, n, nil)
	for i, f := range c.Funs {
		row, fm := c.jacobianRow(f, inflated, mid)
		jac[i] = row
		res[i] = fm
		for j, x := range row {
			jmid.Set(i, j, x.Mid())
		}
	}

	var y mat.Dense
	if err := y.Inverse(jmid); err != nil {
		return Maybe, false, nil // singular midpoint Jacobian: no Newton information this round
	}

	// Precondition: a[i][j] = sum_k y[i][k] * jac[k][j] (interval), b[i] = -sum_k y[i][k]*res[k].
	a := make([][]interval.Interval, n)
	b := make([]float64, n)
	for i := 0; i < n; i++ {
		a[i] = make([]interval.Interval, n)
		for j := 0; j < n; j++ {
			acc := interval.Degenerate(0)
			for k := 0; k < n; k++ {
				acc = acc.Add(interval.Degenerate(y.At(i, k)).Mul(jac[k][j]))
			}
			a[i][j] = acc
		}
		var bi float64
		for k := 0; k < n; k++ {
			bi -= y.At(i, k) * res[k]
		}
		b[i] = bi
	}

	z := make([]interval.Interval, n)
	for j, id := range c.Vars {
		x := inflated.At(id)
		z[j] = x.Sub(interval.Degenerate(x.Mid()))
	}

	gsLimit := c.GaussSeidelIterLimit
	if gsLimit <= 0 {
		gsLimit = 1
	}
	sweepChanged := true
	for iter := 0; iter < gsLimit && sweepChanged; iter++ {
		sweepChanged = false
		for i := 0; i < n; i++ {
			rhs := interval.Degenerate(b[i])
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				rhs = rhs.Sub(a[i][j].Mul(z[j]))
			}
			zi := interval.MulPX(z[i], a[i][i], rhs)
			if zi.IsEmpty() {
				return Empty, false, nil
			}
			if zi.Width() < z[i].Width()*(1-c.RelTol) {
				sweepChanged = true
			}
			z[i] = zi
		}
	}

	proof := Maybe
	allInner := true
	anyNarrowed := false
	for j, id := range c.Vars {
		x := box.At(id)
		midv := inflated.At(id).Mid()
		newX := x.Inter(interval.New(midv+z[j].Lo, midv+z[j].Hi))
		if newX.IsEmpty() {
			return Empty, false, nil
		}
		if newX.Lo > x.Lo || newX.Hi < x.Hi {
			anyNarrowed = true
		} else {
			allInner = false
		}
		box.Set(id, newX)
	}
	if allInner {
		proof = Inner
	}
	return proof, anyNarrowed, nil
}
