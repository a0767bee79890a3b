package dag

import (
	"fmt"

	"github.com/gokando-numerics/realpaver/interval"
)

// IntervalEval evaluates every node in topological order against box,
// writing each node's image into Node.IVal, and returns the image of
// root. box maps a variable id to its current interval domain.
func (d *Dag) IntervalEval(root int, box func(id int) interval.Interval) interval.Interval {
	for i := 0; i <= root; i++ {
		d.evalOneInterval(i, box)
	}
	return d.nodes[root].IVal
}

// IntervalEvalAll evaluates the whole Dag (every node, not just root's
// ancestors), so every function sharing a prefix of the graph sees node
// values computed over the same box.
func (d *Dag) IntervalEvalAll(box func(id int) interval.Interval) {
	for i := range d.nodes {
		d.evalOneInterval(i, box)
	}
}

func (d *Dag) evalOneInterval(i int, box func(id int) interval.Interval) {
	n := d.nodes[i]
	ch := func(k int) interval.Interval { return d.nodes[n.Children[k]].IVal }
	switch n.Op {
	case OpConst:
		n.IVal = n.Const
	case OpVar:
		n.IVal = box(n.VarID)
	case OpAdd:
		n.IVal = ch(0).Add(ch(1))
	case OpSub:
		n.IVal = ch(0).Sub(ch(1))
	case OpMul:
		n.IVal = ch(0).Mul(ch(1))
	case OpDiv:
		n.IVal = ch(0).Div(ch(1))
	case OpMin:
		n.IVal = ch(0).Min(ch(1))
	case OpMax:
		n.IVal = ch(0).Max(ch(1))
	case OpUsb:
		n.IVal = ch(0).Neg()
	case OpAbs:
		n.IVal = ch(0).Abs()
	case OpSgn:
		n.IVal = ch(0).Sgn()
	case OpSqr:
		n.IVal = ch(0).Sqr()
	case OpSqrt:
		n.IVal = ch(0).Sqrt()
	case OpExp:
		n.IVal = ch(0).Exp()
	case OpLog:
		n.IVal = ch(0).Log()
	case OpCos:
		n.IVal = ch(0).Cos()
	case OpSin:
		n.IVal = ch(0).Sin()
	case OpTan:
		n.IVal = ch(0).Tan()
	case OpCosh:
		n.IVal = ch(0).Cosh()
	case OpSinh:
		n.IVal = ch(0).Sinh()
	case OpTanh:
		n.IVal = ch(0).Tanh()
	case OpPow:
		n.IVal = ch(0).Pow(n.Exponent)
	case OpLin:
		acc := n.LinCst
		for k, coef := range n.LinCoefs {
			acc = acc.Add(coef.Mul(ch(k)))
		}
		n.IVal = acc
	default:
		panic(fmt.Sprintf("dag: unhandled op %v in IntervalEval", n.Op))
	}
}

// RealEval evaluates every node in topological order at a point (box maps
// a variable id to its real value), writing each node's value into
// Node.RVal, and returns the value at root. Used for residual checks and
// as the forward pass of real-valued reverse differentiation.
func (d *Dag) RealEval(root int, box func(id int) float64) float64 {
	for i := 0; i <= root; i++ {
		d.evalOneReal(i, box)
	}
	return d.nodes[root].RVal
}

func (d *Dag) evalOneReal(i int, box func(id int) float64) {
	n := d.nodes[i]
	ch := func(k int) float64 { return d.nodes[n.Children[k]].RVal }
	switch n.Op {
	case OpConst:
		n.RVal = n.Const.Mid()
	case OpVar:
		n.RVal = box(n.VarID)
	case OpAdd:
		n.RVal = ch(0) + ch(1)
	case OpSub:
		n.RVal = ch(0) - ch(1)
	case OpMul:
		n.RVal = ch(0) * ch(1)
	case OpDiv:
		n.RVal = ch(0) / ch(1)
	case OpMin:
		n.RVal = minF(ch(0), ch(1))
	case OpMax:
		n.RVal = maxF(ch(0), ch(1))
	case OpUsb:
		n.RVal = -ch(0)
	case OpAbs:
		n.RVal = absF(ch(0))
	case OpSgn:
		n.RVal = sgnF(ch(0))
	case OpSqr:
		n.RVal = ch(0) * ch(0)
	case OpSqrt:
		n.RVal = sqrtF(ch(0))
	case OpExp:
		n.RVal = expF(ch(0))
	case OpLog:
		n.RVal = logF(ch(0))
	case OpCos:
		n.RVal = cosF(ch(0))
	case OpSin:
		n.RVal = sinF(ch(0))
	case OpTan:
		n.RVal = tanF(ch(0))
	case OpCosh:
		n.RVal = coshF(ch(0))
	case OpSinh:
		n.RVal = sinhF(ch(0))
	case OpTanh:
		n.RVal = tanhF(ch(0))
	case OpPow:
		n.RVal = powF(ch(0), n.Exponent)
	case OpLin:
		acc := n.LinCst.Mid()
		for k, coef := range n.LinCoefs {
			acc += coef.Mid() * ch(k)
		}
		n.RVal = acc
	default:
		panic(fmt.Sprintf("dag: unhandled op %v in RealEval", n.Op))
	}
}
