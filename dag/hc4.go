package dag

import (
	"fmt"

	"github.com/gokando-numerics/realpaver/interval"
)

// HC4Revise runs the forward/backward consistency pass for f over the
// domains reported by get, narrowing every variable's domain via set and
// returning a certificate. It never widens: every call either tightens a
// variable's interval or leaves it unchanged.
//
// The forward pass computes f's image enclosure bottom-up (IntervalEval).
// The backward pass starts at the root with root.IVal intersected against
// f's target image, then walks the arena in descending index order —
// sound because a node's children always have a strictly smaller index,
// so by the time a node is processed every parent that could have
// narrowed it has already run.
func (d *Dag) HC4Revise(f *Fun, get func(id int) interval.Interval, set func(id int, x interval.Interval)) (Proof, error) {
	root := f.Root
	rootImg := d.IntervalEval(root, get)
	target := rootImg.Inter(f.Image)
	if target.IsEmpty() {
		return Empty, nil
	}

	work := make([]interval.Interval, len(d.nodes))
	for i := range work {
		work[i] = d.nodes[i].IVal
	}
	work[root] = target

	for i := root; i >= 0; i-- {
		n := d.nodes[i]
		if len(n.Children) == 0 {
			continue
		}
		revised, err := d.reviseChildren(n, work[i])
		if err != nil {
			return Maybe, err
		}
		for k, c := range n.Children {
			nv := work[c].Inter(revised[k])
			if nv.IsEmpty() {
				return Empty, nil
			}
			work[c] = nv
		}
	}

	for _, id := range f.sc.IDs() {
		idx := d.varNode[id]
		set(id, work[idx])
	}

	if f.Image.Lo < rootImg.Lo && rootImg.Hi < f.Image.Hi {
		return Inner, nil
	}
	return Maybe, nil
}

// reviseChildren returns, for node n constrained to lie in z, the revised
// intervals for each of n's children (in the same order as n.Children).
func (d *Dag) reviseChildren(n *Node, z interval.Interval) ([]interval.Interval, error) {
	ch := func(k int) interval.Interval { return d.nodes[n.Children[k]].IVal }
	switch n.Op {
	case OpAdd:
		return []interval.Interval{interval.AddPX(ch(0), ch(1), z), interval.AddPY(ch(0), ch(1), z)}, nil
	case OpSub:
		return []interval.Interval{interval.SubPX(ch(0), ch(1), z), interval.SubPY(ch(0), ch(1), z)}, nil
	case OpMul:
		return []interval.Interval{interval.MulPX(ch(0), ch(1), z), interval.MulPY(ch(0), ch(1), z)}, nil
	case OpDiv:
		return []interval.Interval{interval.DivPX(ch(0), ch(1), z), interval.DivPY(ch(0), ch(1), z)}, nil
	case OpMin:
		return []interval.Interval{interval.MinPX(ch(0), ch(1), z), interval.MinPY(ch(0), ch(1), z)}, nil
	case OpMax:
		return []interval.Interval{interval.MaxPX(ch(0), ch(1), z), interval.MaxPY(ch(0), ch(1), z)}, nil
	case OpUsb:
		return []interval.Interval{ch(0).Inter(z.Neg())}, nil
	case OpAbs:
		return []interval.Interval{interval.AbsPX(ch(0), z)}, nil
	case OpSgn:
		return []interval.Interval{interval.SgnPX(ch(0), z)}, nil
	case OpSqr:
		return []interval.Interval{interval.SqrPX(ch(0), z)}, nil
	case OpSqrt:
		// z = sqrt(x) => x = z^2, restricted to x >= 0.
		sq := z.Sqr()
		return []interval.Interval{ch(0).Inter(sq.Inter(interval.Positive()))}, nil
	case OpExp:
		// z = exp(x) => x = log(z).
		return []interval.Interval{ch(0).Inter(z.Log())}, nil
	case OpLog:
		// z = log(x) => x = exp(z).
		return []interval.Interval{ch(0).Inter(z.Exp())}, nil
	case OpCos:
		return []interval.Interval{ch(0).Inter(z.Acos())}, nil
	case OpSin:
		return []interval.Interval{ch(0).Inter(z.Asin())}, nil
	case OpTan:
		return []interval.Interval{ch(0).Inter(z.Atan())}, nil
	case OpCosh:
		return []interval.Interval{ch(0).Inter(z.Acosh())}, nil
	case OpSinh:
		return []interval.Interval{ch(0).Inter(z.Asinh())}, nil
	case OpTanh:
		return []interval.Interval{ch(0).Inter(z.Atanh())}, nil
	case OpPow:
		return []interval.Interval{powPX(ch(0), z, n.Exponent)}, nil
	case OpLin:
		out := make([]interval.Interval, len(n.Children))
		for k := range n.Children {
			out[k] = linPX(n, ch, z, k)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("dag: unhandled op %v in HC4Revise", n.Op)
	}
}

// linPX isolates the k-th variable of an affine-combination node: given
// z = cst + sum(coef[j]*x[j]), the revised x[k] satisfies
// coef[k]*x[k] = z - cst - sum_{j != k} coef[j]*x[j], then projects x[k]
// out of that product via interval.MulPX so a zero-width coefficient is
// handled the same way ordinary multiplication-projection handles it.
func linPX(n *Node, ch func(k int) interval.Interval, z interval.Interval, k int) interval.Interval {
	rhs := z.Sub(n.LinCst)
	for j := range n.LinCoefs {
		if j == k {
			continue
		}
		rhs = rhs.Sub(n.LinCoefs[j].Mul(ch(j)))
	}
	return interval.MulPX(ch(k), n.LinCoefs[k], rhs)
}

// nthRootInterval returns the outward-rounded enclosure of the principal
// nonnegative real n-th root of z restricted to z >= 0, computed via
// exp(log(z)/n) so it inherits soundness directly from Log/Exp/Div.
func nthRootInterval(z interval.Interval, n int) interval.Interval {
	zpos := z.Inter(interval.Positive())
	if zpos.IsEmpty() {
		return interval.Empty()
	}
	return zpos.Log().Div(interval.Degenerate(float64(n))).Exp()
}

// powPX returns the tightest x' consistent with x'^n in z.
func powPX(x, z interval.Interval, n int) interval.Interval {
	if n == 0 {
		if z.Contains(interval.Degenerate(1)) {
			return x
		}
		return interval.Empty()
	}
	if n < 0 {
		return x
	}
	if n%2 == 0 {
		if z.Hi < 0 {
			return interval.Empty()
		}
		root := nthRootInterval(z, n)
		pos := x.Inter(root)
		neg := x.Inter(root.Neg())
		return pos.Hull(neg)
	}
	posRoot := nthRootInterval(z.Inter(interval.Positive()), n)
	negRoot := nthRootInterval(z.Inter(interval.Negative()).Neg(), n).Neg()
	return x.Inter(posRoot.Hull(negRoot))
}
