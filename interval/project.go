// Projections ("revise" operators): given z in op(x, y), tighten x (resp.
// y) to the smallest interval still consistent with that relation. These
// are the building block HC4-Revise uses to propagate a DAG function's
// image back through its operands.
package interval

import "math"

// AddPX returns the tightest x' such that some s in y has x'+s possibly in z.
func AddPX(x, y, z Interval) Interval {
	if x.Empty || y.Empty || z.Empty {
		return Empty()
	}
	return x.Inter(z.Sub(y))
}

// AddPY is symmetric to AddPX.
func AddPY(x, y, z Interval) Interval { return AddPX(y, x, z) }

// SubPX returns the tightest x' consistent with x'-y in z.
func SubPX(x, y, z Interval) Interval {
	if x.Empty || y.Empty || z.Empty {
		return Empty()
	}
	return x.Inter(z.Add(y))
}

// SubPY returns the tightest y' consistent with x-y' in z.
func SubPY(x, y, z Interval) Interval {
	if x.Empty || y.Empty || z.Empty {
		return Empty()
	}
	return y.Inter(x.Sub(z))
}

// MulPX returns the tightest x' consistent with x'*y in z.
func MulPX(x, y, z Interval) Interval {
	if x.Empty || y.Empty || z.Empty {
		return Empty()
	}
	if y.Lo == 0 && y.Hi == 0 {
		if z.Contains(Degenerate(0)) {
			return x
		}
		return Empty()
	}
	return x.Inter(z.Div(y))
}

// MulPY is symmetric to MulPX.
func MulPY(x, y, z Interval) Interval { return MulPX(y, x, z) }

// DivPX returns the tightest x' consistent with x'/y in z (z = x/y).
func DivPX(x, y, z Interval) Interval {
	if x.Empty || y.Empty || z.Empty {
		return Empty()
	}
	return x.Inter(z.Mul(y))
}

// DivPY returns the tightest y' consistent with x/y' in z.
func DivPY(x, y, z Interval) Interval {
	if x.Empty || y.Empty || z.Empty {
		return Empty()
	}
	if x.Lo == 0 && x.Hi == 0 {
		if z.Contains(Degenerate(0)) {
			return y
		}
		// 0/y' must be in z but z doesn't contain 0: no consistent y' unless y has no solution
		return Empty()
	}
	// y' = x/z, handled by Div which already widens through zero.
	return y.Inter(x.Div(z))
}

// MinPX returns the tightest x' consistent with min(x',y) in z.
func MinPX(x, y, z Interval) Interval {
	if x.Empty || y.Empty || z.Empty {
		return Empty()
	}
	if z.CertainlyLt(y) {
		return x.Inter(z)
	}
	if y.CertainlyLt(z) {
		return Empty()
	}
	return x.Inter(New(z.Lo, math.Inf(1)))
}

// MinPY is symmetric to MinPX.
func MinPY(x, y, z Interval) Interval { return MinPX(y, x, z) }

// MaxPX returns the tightest x' consistent with max(x',y) in z.
func MaxPX(x, y, z Interval) Interval {
	if x.Empty || y.Empty || z.Empty {
		return Empty()
	}
	if z.CertainlyGt(y) {
		return x.Inter(z)
	}
	if y.CertainlyGt(z) {
		return Empty()
	}
	return x.Inter(New(math.Inf(-1), z.Hi))
}

// MaxPY is symmetric to MaxPX.
func MaxPY(x, y, z Interval) Interval { return MaxPX(y, x, z) }

// SqrPX returns the tightest x' consistent with x'*x' in z.
func SqrPX(x, z Interval) Interval {
	if x.Empty || z.Empty || z.Hi < 0 {
		return Empty()
	}
	zpos := z.Inter(Positive())
	root := zpos.Sqrt()
	pos := x.Inter(root)
	neg := x.Inter(root.Neg())
	return pos.Hull(neg)
}

// AbsPX returns the tightest x' consistent with |x'| in z.
func AbsPX(x, z Interval) Interval {
	if x.Empty || z.Empty || z.Hi < 0 {
		return Empty()
	}
	zpos := z.Inter(Positive())
	pos := x.Inter(zpos)
	neg := x.Inter(zpos.Neg())
	return pos.Hull(neg)
}

// SgnPX returns the tightest x' consistent with sgn(x') in z.
func SgnPX(x, z Interval) Interval {
	if x.Empty || z.Empty {
		return Empty()
	}
	allowed := Empty()
	if z.Contains(Degenerate(-1)) {
		allowed = allowed.Hull(Negative())
	}
	if z.Contains(Degenerate(0)) {
		allowed = allowed.Hull(Degenerate(0))
	}
	if z.Contains(Degenerate(1)) {
		allowed = allowed.Hull(Positive())
	}
	return x.Inter(allowed)
}
