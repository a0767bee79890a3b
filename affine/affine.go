// Package affine implements reliable AF1 affine arithmetic: a linearization
// of a nonlinear function as a0 + sum(a_i * e_i) + e*[-1,1], with interval
// coefficients, used by the contractor algebra as a cheaper (linear)
// alternative to full interval evaluation when a tighter bound is needed
// than plain interval arithmetic gives.
package affine

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gokando-numerics/realpaver/interval"
)

// LinMode selects the linearization rule elementary functions use to turn
// a nonlinear univariate function into an affine form. It is a
// process-wide static setting exactly like the spec's rounding mode: the
// solver is single-threaded (see the concurrency model), so a package
// variable is safe and avoids threading a mode parameter through every
// call.
type LinMode int

const (
	// Minrange uses the tangent at the endpoint that minimizes the
	// resulting error range; exact at one endpoint, bounded elsewhere.
	Minrange LinMode = iota
	// Chebyshev uses the secant between the two endpoints and a tangent
	// parallel to it, minimizing the maximum deviation.
	Chebyshev
)

var mode atomic.Int32

// SetMode sets the process-wide linearization mode.
func SetMode(m LinMode) { mode.Store(int32(m)) }

// Mode returns the current linearization mode (Minrange by default).
func Mode() LinMode { return LinMode(mode.Load()) }

// term is one linear entry a_i*e_i, kept sorted by strictly increasing
// noise index with a non-zero coefficient interval.
type term struct {
	idx  int64
	coef interval.Interval
}

// Form is a reliable AF1 affine form: a0 + sum(L) + e*[-1,1].
type Form struct {
	a0    interval.Interval
	terms []term
	err   interval.Interval // non-negative magnitude
	empty bool
	inf   bool
}

var noiseCounter atomic.Int64

// NextNoiseIndex allocates a fresh, process-wide unique noise index, used
// when introducing a new independent source of uncertainty (a variable,
// or a linearization residual term that must not alias an existing one).
func NextNoiseIndex() int64 { return noiseCounter.Add(1) }

// Empty returns the empty affine form (no enclosed points).
func Empty() Form { return Form{empty: true} }

// Inf returns the affine form with unbounded error, representing "no
// useful information" rather than infeasibility.
func Inf() Form { return Form{err: interval.Positive(), inf: true} }

// Const builds the affine form for a constant interval c (a degenerate
// form with no linear terms).
func Const(c interval.Interval) Form {
	if c.IsEmpty() {
		return Empty()
	}
	return Form{a0: c}
}

// Var builds the affine form for a variable whose current domain is dom,
// centered as c + r*e_idx where [c-r,c+r] = dom.
func Var(idx int64, dom interval.Interval) Form {
	if dom.IsEmpty() {
		return Empty()
	}
	c := dom.Mid()
	r := math.Max(dom.Hi-c, c-dom.Lo)
	f := Form{a0: interval.Degenerate(c)}
	if r > 0 {
		f.terms = []term{{idx: idx, coef: interval.Degenerate(r)}}
	}
	return f
}

// IsEmpty reports whether f is the empty form.
func (f Form) IsEmpty() bool { return f.empty }

// IsInf reports whether f carries an unbounded error term.
func (f Form) IsInf() bool { return f.inf }

// CoeffOf returns the coefficient of noise symbol idx in f, or the
// degenerate zero interval if idx does not appear.
func (f Form) CoeffOf(idx int64) interval.Interval {
	for _, t := range f.terms {
		if t.idx == idx {
			return t.coef
		}
	}
	return interval.Degenerate(0)
}

// WithoutTerm returns f with noise symbol idx's term removed, used to
// isolate idx's contribution when balancing an affine constraint.
func (f Form) WithoutTerm(idx int64) Form {
	if f.empty || f.inf {
		return f
	}
	out := f
	out.terms = nil
	for _, t := range f.terms {
		if t.idx != idx {
			out.terms = append(out.terms, t)
		}
	}
	return out
}

// Eval returns the interval enclosure a0 + e*[-1,1] + sum(L_i*[-1,1]).
func (f Form) Eval() interval.Interval {
	if f.empty {
		return interval.Empty()
	}
	if f.inf {
		return interval.Universe()
	}
	acc := f.a0
	for _, t := range f.terms {
		acc = acc.Add(t.coef.Mul(interval.New(-1, 1)))
	}
	acc = acc.Add(f.err.Mul(interval.New(-1, 1)))
	return acc
}

func (f Form) String() string {
	if f.empty {
		return "affine(∅)"
	}
	return fmt.Sprintf("affine(a0=%v, #terms=%d, err=%v)", f.a0, len(f.terms), f.err)
}

// merge adds two sorted term lists, combining coefficients at equal
// indices and dropping any that become exactly zero, preserving the
// strictly-increasing noise-index invariant.
func merge(a, b []term, sign float64) []term {
	out := make([]term, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j >= len(b) || (i < len(a) && a[i].idx < b[j].idx):
			out = append(out, a[i])
			i++
		case i >= len(a) || b[j].idx < a[i].idx:
			c := b[j].coef
			if sign < 0 {
				c = c.Neg()
			}
			out = append(out, term{idx: b[j].idx, coef: c})
			j++
		default:
			c := a[i].coef
			bc := b[j].coef
			if sign < 0 {
				bc = bc.Neg()
			}
			c = c.Add(bc)
			if !(c.Lo == 0 && c.Hi == 0) {
				out = append(out, term{idx: a[i].idx, coef: c})
			}
			i++
			j++
		}
	}
	return out
}

// Add returns f+g.
func (f Form) Add(g Form) Form {
	if f.empty || g.empty {
		return Empty()
	}
	if f.inf || g.inf {
		return Inf()
	}
	return Form{a0: f.a0.Add(g.a0), terms: merge(f.terms, g.terms, 1), err: f.err.Add(g.err)}
}

// Sub returns f-g.
func (f Form) Sub(g Form) Form {
	if f.empty || g.empty {
		return Empty()
	}
	if f.inf || g.inf {
		return Inf()
	}
	return Form{a0: f.a0.Sub(g.a0), terms: merge(f.terms, g.terms, -1), err: f.err.Add(g.err)}
}

// Neg returns -f.
func (f Form) Neg() Form {
	if f.empty {
		return Empty()
	}
	if f.inf {
		return Inf()
	}
	terms := make([]term, len(f.terms))
	for i, t := range f.terms {
		terms[i] = term{idx: t.idx, coef: t.coef.Neg()}
	}
	return Form{a0: f.a0.Neg(), terms: terms, err: f.err}
}

// ScaleAdd returns k*f + c for a constant interval k and c (used internally
// by Mul/Div and by the linearize machinery below).
func (f Form) ScaleAdd(k, c interval.Interval) Form {
	if f.empty {
		return Empty()
	}
	if f.inf {
		return Inf()
	}
	terms := make([]term, len(f.terms))
	for i, t := range f.terms {
		terms[i] = term{idx: t.idx, coef: k.Mul(t.coef)}
	}
	return Form{a0: k.Mul(f.a0).Add(c), terms: terms, err: k.Abs().Mul(f.err)}
}

// absSumCoeffs returns the interval sum of |coef| over all linear terms.
func absSumCoeffs(terms []term) interval.Interval {
	acc := interval.Degenerate(0)
	for _, t := range terms {
		acc = acc.Add(t.coef.Abs())
	}
	return acc
}

// Mul returns f*g using the standard AF1 multiplication rule: the linear
// part distributes the constant terms; every cross term between the two
// forms' noise symbols is folded into the aggregated error magnitude
// |a_f|*e_g + |a_g|*e_f + sum|A_i|*sum|B_j|.
func (f Form) Mul(g Form) Form {
	if f.empty || g.empty {
		return Empty()
	}
	if f.inf || g.inf {
		return Inf()
	}
	linear := f.ScaleAdd(g.a0, interval.Degenerate(0)).Add(g.ScaleAdd(f.a0, interval.Degenerate(0))).Sub(Const(f.a0.Mul(g.a0)))
	crossMag := absSumCoeffs(f.terms).Mul(absSumCoeffs(g.terms))
	extraErr := f.a0.Abs().Mul(g.err).Add(g.a0.Abs().Mul(f.err)).Add(crossMag).Add(f.err.Mul(g.err))
	result := linear
	result.err = result.err.Add(extraErr)
	return result
}

// reciprocalLinearize computes the Minrange/Chebyshev linearization
// parameters (alpha, zeta, delta) for f(x)=1/x over [lo,hi], used by Div.
func reciprocalLinearize(x interval.Interval) (alpha, zeta, delta float64) {
	lo, hi := x.Lo, x.Hi
	switch Mode() {
	case Chebyshev:
		alpha = -1 / (lo * hi)
		zetaMin := 1/lo - alpha*lo
		zetaMax := 1/hi - alpha*hi
		zeta = 0.5 * (zetaMin + zetaMax)
		delta = 0.5 * math.Abs(zetaMin-zetaMax)
	default: // Minrange
		alpha = -1 / (hi * hi)
		zetaLo := 1/lo - alpha*lo
		zetaHi := 1/hi - alpha*hi
		zeta = 0.5 * (zetaLo + zetaHi)
		delta = 0.5 * math.Abs(zetaLo-zetaHi)
	}
	return
}

// Udiv returns the reciprocal affine form 1/f, via linearization over
// f's current interval range. Division by (or through) zero yields Inf.
func (f Form) Udiv() Form {
	if f.empty {
		return Empty()
	}
	rng := f.Eval()
	if rng.IsEmpty() {
		return Empty()
	}
	if rng.StrictlyContainsZero() || (rng.Lo == 0) || (rng.Hi == 0) {
		return Inf()
	}
	if rng.Lo < 0 && rng.Hi > 0 {
		return Inf()
	}
	alpha, zeta, delta := reciprocalLinearize(rng)
	return f.Linearize(alpha, zeta, delta)
}

// Div returns f/g as f * (1/g).
func (f Form) Div(g Form) Form {
	if f.empty || g.empty {
		return Empty()
	}
	return f.Mul(g.Udiv())
}

// Linearize reduces an elementary-function application to the canonical
// AF1 shape alpha*f + zeta + delta*[-1,1]: a new error term combines the
// residual magnitude delta with the propagated linear error
// |alpha|*e_f.
func (f Form) Linearize(alpha, zeta, delta float64) Form {
	if f.empty {
		return Empty()
	}
	if f.inf {
		return Inf()
	}
	a := interval.Degenerate(alpha)
	result := f.ScaleAdd(a, interval.Degenerate(zeta))
	result.err = a.Abs().Mul(f.err).Add(interval.Degenerate(delta))
	return result
}

// Sqr returns f*f, linearized directly from f's own value range rather
// than falling back to the generic Mul(f,f) (which would double-count f's
// noise symbols as if they were independent). This is the AF2-style
// quadratic residue the spec calls for: the tangent/secant is taken on
// x^2 itself, so the one correlated source of error is f's own range.
func (f Form) Sqr() Form {
	if f.empty {
		return Empty()
	}
	if f.inf {
		return Inf()
	}
	return f.elementary(func(x float64) float64 { return x * x }, func(x float64) float64 { return 2 * x })
}

func clampFinite(x interval.Interval) interval.Interval {
	if math.IsInf(x.Lo, -1) || math.IsInf(x.Hi, 1) {
		return interval.Universe()
	}
	return x
}

// elementary applies a generic Minrange/Chebyshev linearization given the
// function's value and derivative at the endpoints; used by Exp/Log/Sin/...
func (f Form) elementary(fn func(float64) float64, dfn func(float64) float64) Form {
	rng := clampFinite(f.Eval())
	if rng.IsEmpty() {
		return Empty()
	}
	if rng.Lo == rng.Hi {
		return Const(interval.Degenerate(fn(rng.Lo)))
	}
	lo, hi := rng.Lo, rng.Hi
	flo, fhi := fn(lo), fn(hi)
	var alpha float64
	switch Mode() {
	case Chebyshev:
		alpha = (fhi - flo) / (hi - lo)
	default:
		// Minrange: use the derivative at the endpoint of smaller slope
		// magnitude so the tangent stays below/above the curve uniformly
		// for the common convex/concave elementary functions.
		dlo, dhi := dfn(lo), dfn(hi)
		if math.Abs(dlo) < math.Abs(dhi) {
			alpha = dlo
		} else {
			alpha = dhi
		}
	}
	zetaLo, zetaHi := residualExtrema(fn, dfn, alpha, lo, hi)
	zeta := 0.5 * (zetaLo + zetaHi)
	delta := 0.5 * (zetaHi - zetaLo)
	return f.Linearize(alpha, zeta, delta)
}

// residualExtrema returns the rigorous min and max of the residual
// g(x) = fn(x) - alpha*x over [lo, hi]. g is smooth with g'(x) =
// dfn(x) - alpha, so its extrema over a closed interval occur only at the
// two endpoints or at an interior point where dfn(x) = alpha; there is no
// other place an extremum can hide. bisectCritical locates that interior
// root (dfn is monotonic for every function elementary/Sqrt linearizes),
// so checking those three candidates is a rigorous enclosure — unlike a
// finite sample grid, it cannot miss the true extremum between samples.
func residualExtrema(fn, dfn func(float64) float64, alpha, lo, hi float64) (zetaLo, zetaHi float64) {
	zetaLo, zetaHi = math.Inf(1), math.Inf(-1)
	consider := func(x float64) {
		v := fn(x) - alpha*x
		if v < zetaLo {
			zetaLo = v
		}
		if v > zetaHi {
			zetaHi = v
		}
	}
	consider(lo)
	consider(hi)
	if xc, ok := bisectCritical(dfn, alpha, lo, hi); ok {
		consider(xc)
	}
	return zetaLo, zetaHi
}

// bisectCritical finds x in (lo, hi) with dfn(x) = alpha by bisection,
// assuming dfn is monotonic over [lo, hi] (true for every elementary
// function this package linearizes: exp, 1/x, trigonometric/hyperbolic
// derivatives restricted to a single monotonic branch, 1/(2*sqrt(x))).
// Returns ok=false when alpha falls outside [dfn(lo), dfn(hi)] (no
// interior root — the residual is then monotonic and its extrema are
// exactly the two endpoints already checked) or when the interval is
// degenerate.
func bisectCritical(dfn func(float64) float64, alpha, lo, hi float64) (float64, bool) {
	if hi <= lo {
		return 0, false
	}
	flo, fhi := dfn(lo)-alpha, dfn(hi)-alpha
	if flo == 0 || fhi == 0 {
		return 0, false // extremum already at an endpoint, nothing new to add
	}
	if (flo > 0) == (fhi > 0) {
		return 0, false // no sign change: monotonic dfn has no interior root
	}
	a, b, fa := lo, hi, flo
	const iterations = 60 // halves the bracket 60 times: well past float64 precision
	for i := 0; i < iterations; i++ {
		m := 0.5 * (a + b)
		fm := dfn(m) - alpha
		if fm == 0 {
			return m, true
		}
		if (fm > 0) == (fa > 0) {
			a, fa = m, fm
		} else {
			b = m
		}
	}
	return 0.5 * (a + b), true
}

func (f Form) Exp() Form  { return f.elementary(math.Exp, math.Exp) }
func (f Form) Log() Form {
	rng := f.Eval()
	if rng.Lo <= 0 {
		return Inf()
	}
	return f.elementary(math.Log, func(x float64) float64 { return 1 / x })
}
// Sqrt returns the affine form for sqrt(f), restricted to f's non-negative
// range the same way Log restricts to the positive range. The linearization
// is taken over [max(0,lo), hi] rather than [lo,hi] directly since sqrt has
// no real extension below zero.
func (f Form) Sqrt() Form {
	if f.empty {
		return Empty()
	}
	if f.inf {
		return Inf()
	}
	rng := clampFinite(f.Eval())
	if rng.IsEmpty() || rng.Hi < 0 {
		return Empty()
	}
	lo, hi := rng.Lo, rng.Hi
	if lo < 0 {
		lo = 0
	}
	if lo == hi {
		return Const(interval.Degenerate(math.Sqrt(lo)))
	}
	flo, fhi := math.Sqrt(lo), math.Sqrt(hi)
	var alpha float64
	switch Mode() {
	case Chebyshev:
		alpha = (fhi - flo) / (hi - lo)
	default:
		dlo := math.Inf(1)
		if lo > 0 {
			dlo = 0.5 / math.Sqrt(lo)
		}
		dhi := 0.5 / math.Sqrt(hi)
		if dhi < dlo {
			alpha = dhi
		} else {
			alpha = dlo
		}
	}
	dfn := func(x float64) float64 {
		if x <= 0 {
			return math.Inf(1)
		}
		return 0.5 / math.Sqrt(x)
	}
	zetaLo, zetaHi := residualExtrema(math.Sqrt, dfn, alpha, lo, hi)
	zeta := 0.5 * (zetaLo + zetaHi)
	delta := 0.5 * (zetaHi - zetaLo)
	return f.Linearize(alpha, zeta, delta)
}

func (f Form) Sin() Form  { return f.elementary(math.Sin, math.Cos) }
func (f Form) Cos() Form  { return f.elementary(math.Cos, func(x float64) float64 { return -math.Sin(x) }) }
func (f Form) Tan() Form {
	return f.elementary(math.Tan, func(x float64) float64 { c := math.Cos(x); return 1 / (c * c) })
}
func (f Form) Sinh() Form { return f.elementary(math.Sinh, math.Cosh) }
func (f Form) Cosh() Form { return f.elementary(math.Cosh, math.Sinh) }
func (f Form) Tanh() Form {
	return f.elementary(math.Tanh, func(x float64) float64 { c := math.Cosh(x); return 1 / (c * c) })
}

// Abs returns the affine form for |f|, linearized like any other
// elementary function (not exact at the kink, per AF1's shape).
func (f Form) Abs() Form {
	rng := f.Eval()
	if !rng.Empty && rng.Lo >= 0 {
		return f
	}
	if !rng.Empty && rng.Hi <= 0 {
		return f.Neg()
	}
	return f.elementary(math.Abs, func(x float64) float64 {
		if x < 0 {
			return -1
		}
		return 1
	})
}

// Sgn returns the affine form for sgn(f), widest admissible enclosure
// when the range straddles zero.
func (f Form) Sgn() Form {
	rng := f.Eval()
	if rng.Empty {
		return Empty()
	}
	if rng.Lo > 0 {
		return Const(interval.Degenerate(1))
	}
	if rng.Hi < 0 {
		return Const(interval.Degenerate(-1))
	}
	return Const(interval.New(-1, 1))
}

// Min returns the affine form for min(f,g), degrading to the interval
// enclosure's hull-constant form when neither operand certainly
// dominates (AF1 has no native conditional, matching Max below).
func (f Form) Min(g Form) Form { return minMax(f, g, true) }

// Max returns the affine form for max(f,g).
func (f Form) Max(g Form) Form { return minMax(f, g, false) }

func minMax(f, g Form, wantMin bool) Form {
	if f.empty || g.empty {
		return Empty()
	}
	rf, rg := f.Eval(), g.Eval()
	if wantMin {
		if rf.CertainlyLe(rg) {
			return f
		}
		if rg.CertainlyLe(rf) {
			return g
		}
		return Const(rf.Min(rg))
	}
	if rf.CertainlyGe(rg) {
		return f
	}
	if rg.CertainlyGe(rf) {
		return g
	}
	return Const(rf.Max(rg))
}

// Pow returns f^n for a non-negative integer exponent n, by repeated
// squaring using Sqr/Mul.
func (f Form) Pow(n int) Form {
	if n == 0 {
		return Const(interval.Degenerate(1))
	}
	if n < 0 {
		return Const(interval.Degenerate(1)).Div(f.Pow(-n))
	}
	result := Const(interval.Degenerate(1))
	base := f
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Sqr()
		n >>= 1
	}
	return result
}
