// Command realpaverdemo solves a small nonlinear system with the
// branch-and-prune solver and prints the resulting solution boxes.
//
// Modeling:
//   - x, y are real variables ranging over [-10, 10]
//   - x^2 + y^2 = 4 (a circle of radius 2)
//   - x - y = 0 (the line y = x)
//   - the two curves intersect at (sqrt(2), sqrt(2)) and (-sqrt(2), -sqrt(2))
package main

import (
	"fmt"

	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/search"
	"github.com/gokando-numerics/realpaver/solver"
)

func main() {
	fmt.Println("=== circle ∩ line: x^2+y^2=4, x=y ===")

	p := solver.NewProblem(1e-9)
	p.AddVariable("x", 1, solver.KindReal, domain.Tolerance{Abs: 1e-6, Rel: 1e-8}, domain.IntervalDomain{X: interval.New(-10, 10)})
	p.AddVariable("y", 2, solver.KindReal, domain.Tolerance{Abs: 1e-6, Rel: 1e-8}, domain.IntervalDomain{X: interval.New(-10, 10)})

	d := p.Dag()
	x := d.Var(1)
	y := d.Var(2)
	circle := d.Add(d.Sqr(x), d.Sqr(y))
	p.AddRange(circle, 4, 4)
	p.AddRange(d.Sub(x, y), 0, 0)

	params := solver.DefaultParams()
	params.NodeLimit = 20000
	params.Logger = search.NopLogger{}
	// Two equations, two variables: a square subsystem, so the
	// HC4+Newton propagator applies directly.
	params.Propagator = solver.PropagateHC4Newton

	drv, err := solver.NewDriver(p, params)
	if err != nil {
		fmt.Println("setup error:", err)
		return
	}
	sols, err := drv.Run()
	if err != nil {
		fmt.Println("solve error:", err)
		return
	}

	fmt.Printf("found %d solution box(es)\n", len(sols))
	for i, s := range sols {
		xi := s.Box.At(1).Hull()
		yi := s.Box.At(2).Hull()
		fmt.Printf("  #%d depth=%d proof=%v x∈[%g,%g] y∈[%g,%g]\n", i, s.Depth, s.Proof, xi.Lo, xi.Hi, yi.Lo, yi.Hi)
	}
}
