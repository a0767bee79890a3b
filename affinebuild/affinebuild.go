// Package affinebuild builds an affine.Form for every node of a dag.Dag
// over a given box, the step AffineRevise and the relaxation generator
// need before they can linearize a nonlinear function.
package affinebuild

import (
	"fmt"

	"github.com/gokando-numerics/realpaver/affine"
	"github.com/gokando-numerics/realpaver/dag"
	"github.com/gokando-numerics/realpaver/interval"
)

// Builder evaluates a dag.Dag's nodes into affine.Form values, one slot
// per node, reusing the arena's topological order the same way
// dag.Dag.IntervalEval does.
type Builder struct {
	d     *dag.Dag
	forms []affine.Form
}

// NewBuilder creates a builder bound to d. Call Build before reading Form.
func NewBuilder(d *dag.Dag) *Builder {
	return &Builder{d: d, forms: make([]affine.Form, d.Len())}
}

// Build computes the affine form of every node up to and including root,
// given the current interval domain of each variable.
func (b *Builder) Build(root int, box func(id int) interval.Interval) error {
	for i := 0; i <= root; i++ {
		if err := b.buildOne(i, box); err != nil {
			return err
		}
	}
	return nil
}

// Form returns the affine form computed for node i by the last Build call.
func (b *Builder) Form(i int) affine.Form { return b.forms[i] }

func (b *Builder) buildOne(i int, box func(id int) interval.Interval) error {
	n := b.d.Node(i)
	ch := func(k int) affine.Form { return b.forms[n.Children[k]] }
	switch n.Op {
	case dag.OpConst:
		b.forms[i] = affine.Const(n.Const)
	case dag.OpVar:
		b.forms[i] = affine.Var(int64(n.VarID), box(n.VarID))
	case dag.OpAdd:
		b.forms[i] = ch(0).Add(ch(1))
	case dag.OpSub:
		b.forms[i] = ch(0).Sub(ch(1))
	case dag.OpMul:
		b.forms[i] = ch(0).Mul(ch(1))
	case dag.OpDiv:
		b.forms[i] = ch(0).Div(ch(1))
	case dag.OpMin:
		b.forms[i] = ch(0).Min(ch(1))
	case dag.OpMax:
		b.forms[i] = ch(0).Max(ch(1))
	case dag.OpUsb:
		b.forms[i] = ch(0).Neg()
	case dag.OpAbs:
		b.forms[i] = ch(0).Abs()
	case dag.OpSgn:
		b.forms[i] = ch(0).Sgn()
	case dag.OpSqr:
		b.forms[i] = ch(0).Sqr()
	case dag.OpSqrt:
		b.forms[i] = ch(0).Sqrt()
	case dag.OpExp:
		b.forms[i] = ch(0).Exp()
	case dag.OpLog:
		b.forms[i] = ch(0).Log()
	case dag.OpCos:
		b.forms[i] = ch(0).Cos()
	case dag.OpSin:
		b.forms[i] = ch(0).Sin()
	case dag.OpTan:
		b.forms[i] = ch(0).Tan()
	case dag.OpCosh:
		b.forms[i] = ch(0).Cosh()
	case dag.OpSinh:
		b.forms[i] = ch(0).Sinh()
	case dag.OpTanh:
		b.forms[i] = ch(0).Tanh()
	case dag.OpPow:
		b.forms[i] = ch(0).Pow(n.Exponent)
	case dag.OpLin:
		acc := affine.Const(n.LinCst)
		for k, coef := range n.LinCoefs {
			acc = acc.Add(affine.Const(coef).Mul(ch(k)))
		}
		b.forms[i] = acc
	default:
		return fmt.Errorf("affinebuild: unhandled op %v", n.Op)
	}
	return nil
}
