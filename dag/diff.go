package dag

import (
	"fmt"
	"math"

	"github.com/gokando-numerics/realpaver/interval"
)

// IntervalDiff runs forward interval evaluation of root over box, then a
// reverse sweep accumulating d(root)/d(node) into every node's IDiff
// (root's own IDiff is the degenerate interval {1}). Children must be
// visited after every parent that uses them, which the arena's insertion
// order already guarantees (child index < parent index), so the reverse
// sweep is simply a descending loop.
func (d *Dag) IntervalDiff(root int, box func(id int) interval.Interval) {
	d.IntervalEval(root, box)
	for i := range d.nodes {
		d.nodes[i].IDiff = interval.Degenerate(0)
	}
	d.nodes[root].IDiff = interval.Degenerate(1)
	for i := root; i >= 0; i-- {
		d.backpropInterval(i)
	}
}

// IntervalPartial returns d(root)/d(id) after a prior IntervalDiff(root, ...)
// call; id must be a variable already inserted into the Dag.
func (d *Dag) IntervalPartial(id int) interval.Interval {
	idx, ok := d.varNode[id]
	if !ok {
		return interval.Degenerate(0)
	}
	return d.nodes[idx].IDiff
}

func (d *Dag) addIDiff(childIdx int, contrib interval.Interval) {
	c := d.nodes[childIdx]
	c.IDiff = c.IDiff.Add(contrib)
}

func (d *Dag) backpropInterval(i int) {
	n := d.nodes[i]
	if len(n.Children) == 0 {
		return
	}
	bar := n.IDiff
	ch := func(k int) interval.Interval { return d.nodes[n.Children[k]].IVal }
	switch n.Op {
	case OpAdd:
		d.addIDiff(n.Children[0], bar)
		d.addIDiff(n.Children[1], bar)
	case OpSub:
		d.addIDiff(n.Children[0], bar)
		d.addIDiff(n.Children[1], bar.Neg())
	case OpMul:
		d.addIDiff(n.Children[0], bar.Mul(ch(1)))
		d.addIDiff(n.Children[1], bar.Mul(ch(0)))
	case OpDiv:
		x, y := ch(0), ch(1)
		d.addIDiff(n.Children[0], bar.Div(y))
		d.addIDiff(n.Children[1], bar.Mul(x.Neg()).Div(y.Sqr()))
	case OpMin:
		// Subgradient enclosure: both branches receive bar when the
		// argument intervals overlap, since either could be active.
		x, y := ch(0), ch(1)
		if x.Hi <= y.Lo {
			d.addIDiff(n.Children[0], bar)
		} else if y.Hi <= x.Lo {
			d.addIDiff(n.Children[1], bar)
		} else {
			d.addIDiff(n.Children[0], bar)
			d.addIDiff(n.Children[1], bar)
		}
	case OpMax:
		x, y := ch(0), ch(1)
		if x.Lo >= y.Hi {
			d.addIDiff(n.Children[0], bar)
		} else if y.Lo >= x.Hi {
			d.addIDiff(n.Children[1], bar)
		} else {
			d.addIDiff(n.Children[0], bar)
			d.addIDiff(n.Children[1], bar)
		}
	case OpUsb:
		d.addIDiff(n.Children[0], bar.Neg())
	case OpAbs:
		x := ch(0)
		d.addIDiff(n.Children[0], bar.Mul(x.Sgn()))
	case OpSgn:
		// d/dx sgn(x) is zero a.e.; contributes nothing.
	case OpSqr:
		x := ch(0)
		two := interval.Degenerate(2)
		d.addIDiff(n.Children[0], bar.Mul(two).Mul(x))
	case OpSqrt:
		x := ch(0)
		two := interval.Degenerate(2)
		d.addIDiff(n.Children[0], bar.Div(two.Mul(x.Sqrt())))
	case OpExp:
		d.addIDiff(n.Children[0], bar.Mul(n.IVal))
	case OpLog:
		x := ch(0)
		d.addIDiff(n.Children[0], bar.Div(x))
	case OpCos:
		x := ch(0)
		d.addIDiff(n.Children[0], bar.Mul(x.Sin().Neg()))
	case OpSin:
		x := ch(0)
		d.addIDiff(n.Children[0], bar.Mul(x.Cos()))
	case OpTan:
		one := interval.Degenerate(1)
		sec2 := one.Add(n.IVal.Sqr())
		d.addIDiff(n.Children[0], bar.Mul(sec2))
	case OpCosh:
		x := ch(0)
		d.addIDiff(n.Children[0], bar.Mul(x.Sinh()))
	case OpSinh:
		x := ch(0)
		d.addIDiff(n.Children[0], bar.Mul(x.Cosh()))
	case OpTanh:
		one := interval.Degenerate(1)
		d.addIDiff(n.Children[0], bar.Mul(one.Sub(n.IVal.Sqr())))
	case OpPow:
		k := n.Exponent
		if k != 0 {
			x := ch(0)
			kI := interval.Degenerate(float64(k))
			d.addIDiff(n.Children[0], bar.Mul(kI).Mul(x.Pow(k-1)))
		}
	case OpLin:
		for k, coef := range n.LinCoefs {
			d.addIDiff(n.Children[k], bar.Mul(coef))
		}
	default:
		panic(fmt.Sprintf("dag: unhandled op %v in IntervalDiff", n.Op))
	}
}

// RealDiff is the point-valued counterpart of IntervalDiff: a RealEval of
// root at the given point, then a reverse sweep accumulating d(root)/d(node)
// into every node's RDiff.
func (d *Dag) RealDiff(root int, box func(id int) float64) {
	d.RealEval(root, box)
	for i := range d.nodes {
		d.nodes[i].RDiff = 0
	}
	d.nodes[root].RDiff = 1
	for i := root; i >= 0; i-- {
		d.backpropReal(i)
	}
}

// RealPartial returns d(root)/d(id) after a prior RealDiff(root, ...) call.
func (d *Dag) RealPartial(id int) float64 {
	idx, ok := d.varNode[id]
	if !ok {
		return 0
	}
	return d.nodes[idx].RDiff
}

func (d *Dag) addRDiff(childIdx int, contrib float64) {
	d.nodes[childIdx].RDiff += contrib
}

func (d *Dag) backpropReal(i int) {
	n := d.nodes[i]
	if len(n.Children) == 0 {
		return
	}
	bar := n.RDiff
	ch := func(k int) float64 { return d.nodes[n.Children[k]].RVal }
	switch n.Op {
	case OpAdd:
		d.addRDiff(n.Children[0], bar)
		d.addRDiff(n.Children[1], bar)
	case OpSub:
		d.addRDiff(n.Children[0], bar)
		d.addRDiff(n.Children[1], -bar)
	case OpMul:
		d.addRDiff(n.Children[0], bar*ch(1))
		d.addRDiff(n.Children[1], bar*ch(0))
	case OpDiv:
		x, y := ch(0), ch(1)
		d.addRDiff(n.Children[0], bar/y)
		d.addRDiff(n.Children[1], -bar*x/(y*y))
	case OpMin:
		if ch(0) <= ch(1) {
			d.addRDiff(n.Children[0], bar)
		} else {
			d.addRDiff(n.Children[1], bar)
		}
	case OpMax:
		if ch(0) >= ch(1) {
			d.addRDiff(n.Children[0], bar)
		} else {
			d.addRDiff(n.Children[1], bar)
		}
	case OpUsb:
		d.addRDiff(n.Children[0], -bar)
	case OpAbs:
		d.addRDiff(n.Children[0], bar*sgnF(ch(0)))
	case OpSgn:
	case OpSqr:
		d.addRDiff(n.Children[0], bar*2*ch(0))
	case OpSqrt:
		d.addRDiff(n.Children[0], bar/(2*math.Sqrt(ch(0))))
	case OpExp:
		d.addRDiff(n.Children[0], bar*n.RVal)
	case OpLog:
		d.addRDiff(n.Children[0], bar/ch(0))
	case OpCos:
		d.addRDiff(n.Children[0], -bar*math.Sin(ch(0)))
	case OpSin:
		d.addRDiff(n.Children[0], bar*math.Cos(ch(0)))
	case OpTan:
		sec2 := 1 + n.RVal*n.RVal
		d.addRDiff(n.Children[0], bar*sec2)
	case OpCosh:
		d.addRDiff(n.Children[0], bar*math.Sinh(ch(0)))
	case OpSinh:
		d.addRDiff(n.Children[0], bar*math.Cosh(ch(0)))
	case OpTanh:
		d.addRDiff(n.Children[0], bar*(1-n.RVal*n.RVal))
	case OpPow:
		k := n.Exponent
		if k != 0 {
			d.addRDiff(n.Children[0], bar*float64(k)*math.Pow(ch(0), float64(k-1)))
		}
	case OpLin:
		for k, coef := range n.LinCoefs {
			d.addRDiff(n.Children[k], bar*coef.Mid())
		}
	default:
		panic(fmt.Sprintf("dag: unhandled op %v in RealDiff", n.Op))
	}
}
