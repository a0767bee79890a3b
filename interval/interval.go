// Package interval implements closed intervals over the extended reals
// with outward-rounded arithmetic, elementary functions, set predicates,
// and the projections ("revise" operators) the contractor algebra is
// built from.
package interval

import (
	"fmt"
	"math"

	"github.com/gokando-numerics/realpaver/dround"
)

// Interval is a closed connected subset of the extended reals, or the
// distinguished empty set (Empty == true, in which case Lo/Hi are
// meaningless). Every arithmetic operation below rounds outward: the
// result always contains the mathematically exact set of results.
type Interval struct {
	Lo, Hi float64
	Empty  bool
}

// Empty is the absorbing empty interval: every operation applied to it,
// or that it is applied to, returns Empty.
func Empty() Interval { return Interval{Empty: true} }

// Universe is [-inf, +inf].
func Universe() Interval { return Interval{Lo: math.Inf(-1), Hi: math.Inf(1)} }

// Positive is [0, +inf].
func Positive() Interval { return Interval{Lo: 0, Hi: math.Inf(1)} }

// Negative is [-inf, 0].
func Negative() Interval { return Interval{Lo: math.Inf(-1), Hi: 0} }

// Pi, HalfPi and TwoPi are named constants used by the ranges of
// periodic functions, themselves outward-rounded enclosures of the
// mathematical constant.
var (
	Pi     = New(3.141592653589793, 3.1415926535897936)
	HalfPi = New(1.5707963267948966, 1.5707963267948968)
	TwoPi  = New(6.283185307179586, 6.283185307179587)
)

// New builds [lo, hi]. If lo > hi the result is Empty.
func New(lo, hi float64) Interval {
	if lo > hi || math.IsNaN(lo) || math.IsNaN(hi) {
		return Empty()
	}
	return Interval{Lo: lo, Hi: hi}
}

// Degenerate returns the point interval {v}.
func Degenerate(v float64) Interval { return Interval{Lo: v, Hi: v} }

// IsEmpty reports whether x is the empty interval.
func (x Interval) IsEmpty() bool { return x.Empty }

// String renders x for diagnostics.
func (x Interval) String() string {
	if x.Empty {
		return "∅"
	}
	return fmt.Sprintf("[%g, %g]", x.Lo, x.Hi)
}

// Mid returns the midpoint of x (0 for Empty and for the whole real line;
// when only one end is unbounded, the finite bound moved 1 toward the
// unbounded end).
func (x Interval) Mid() float64 {
	if x.Empty {
		return 0
	}
	if math.IsInf(x.Lo, -1) && math.IsInf(x.Hi, 1) {
		return 0
	}
	if math.IsInf(x.Lo, -1) {
		return x.Hi - 1
	}
	if math.IsInf(x.Hi, 1) {
		return x.Lo + 1
	}
	return 0.5*x.Lo + 0.5*x.Hi
}

// Width returns Hi-Lo (0 for Empty).
func (x Interval) Width() float64 {
	if x.Empty {
		return 0
	}
	return dround.SubUp(x.Hi, x.Lo)
}

// Mignitude returns the smallest magnitude among points of x: min(|v|), v in x.
func (x Interval) Mignitude() float64 {
	if x.Empty {
		return 0
	}
	if x.Lo > 0 {
		return x.Lo
	}
	if x.Hi < 0 {
		return -x.Hi
	}
	return 0
}

// Magnitude returns the largest magnitude among points of x: max(|v|), v in x.
func (x Interval) Magnitude() float64 {
	if x.Empty {
		return 0
	}
	return math.Max(math.Abs(x.Lo), math.Abs(x.Hi))
}

// Inflate returns midpoint + delta*(x - midpoint) + chi*[-1,1], the
// epsilon-inflation operator used to make an interval-Newton step
// generous enough to guarantee existence.
func (x Interval) Inflate(delta, chi float64) Interval {
	if x.Empty {
		return Empty()
	}
	m := x.Mid()
	r := dround.MulUp(delta, math.Max(m-x.Lo, x.Hi-m))
	return New(dround.SubDown(m, dround.AddUp(r, chi)), dround.AddUp(m, dround.AddUp(r, chi)))
}

// Round returns the smallest interval containing every integer in x.
func (x Interval) Round() Interval {
	if x.Empty {
		return Empty()
	}
	lo := math.Ceil(x.Lo)
	hi := math.Floor(x.Hi)
	if lo > hi {
		return Empty()
	}
	return Interval{Lo: lo, Hi: hi}
}

// --- set operations ---

// Hull returns the smallest interval containing both x and y.
func (x Interval) Hull(y Interval) Interval {
	if x.Empty {
		return y
	}
	if y.Empty {
		return x
	}
	return Interval{Lo: math.Min(x.Lo, y.Lo), Hi: math.Max(x.Hi, y.Hi)}
}

// Inter returns the intersection of x and y.
func (x Interval) Inter(y Interval) Interval {
	if x.Empty || y.Empty {
		return Empty()
	}
	return New(math.Max(x.Lo, y.Lo), math.Min(x.Hi, y.Hi))
}

// Overlaps reports whether x and y share at least one point.
func (x Interval) Overlaps(y Interval) bool { return !x.Inter(y).IsEmpty() }

// Disjoint reports the complement of Overlaps.
func (x Interval) Disjoint(y Interval) bool { return !x.Overlaps(y) }

// Contains reports whether y is a subset of x.
func (x Interval) Contains(y Interval) bool {
	if y.Empty {
		return true
	}
	if x.Empty {
		return false
	}
	return x.Lo <= y.Lo && y.Hi <= x.Hi
}

// StrictlyContains reports whether y is a subset of the interior of x.
func (x Interval) StrictlyContains(y Interval) bool {
	if y.Empty {
		return !x.Empty
	}
	if x.Empty {
		return false
	}
	return x.Lo < y.Lo && y.Hi < x.Hi
}

// StrictlyContainsZero reports whether 0 lies strictly inside x.
func (x Interval) StrictlyContainsZero() bool {
	return !x.Empty && x.Lo < 0 && x.Hi > 0
}

// ContainsKPi reports whether x contains a multiple of pi.
func (x Interval) ContainsKPi() bool {
	if x.Empty {
		return false
	}
	k0 := math.Ceil(x.Lo / math.Pi)
	return k0*math.Pi <= x.Hi
}

// ContainsHalfPiPluskPi reports whether x contains pi/2 + k*pi for some integer k.
func (x Interval) ContainsHalfPiPluskPi() bool {
	if x.Empty {
		return false
	}
	k0 := math.Ceil((x.Lo - math.Pi/2) / math.Pi)
	return (math.Pi/2+k0*math.Pi) <= x.Hi
}

// Equal reports set-equality.
func (x Interval) Equal(y Interval) bool {
	if x.Empty || y.Empty {
		return x.Empty == y.Empty
	}
	return x.Lo == y.Lo && x.Hi == y.Hi
}

// --- possibly/certainly comparisons ---

// PossiblyEq reports whether some point of x equals some point of y.
func (x Interval) PossiblyEq(y Interval) bool { return x.Overlaps(y) }

// CertainlyEq reports whether x and y are both the same degenerate point.
func (x Interval) CertainlyEq(y Interval) bool {
	return !x.Empty && !y.Empty && x.Lo == x.Hi && y.Lo == y.Hi && x.Lo == y.Lo
}

// PossiblyLe reports whether some r in x, s in y satisfy r <= s.
func (x Interval) PossiblyLe(y Interval) bool { return !x.Empty && !y.Empty && x.Lo <= y.Hi }

// CertainlyLe reports whether every r in x, s in y satisfy r <= s.
func (x Interval) CertainlyLe(y Interval) bool { return !x.Empty && !y.Empty && x.Hi <= y.Lo }

// PossiblyLt reports whether some r in x, s in y satisfy r < s.
func (x Interval) PossiblyLt(y Interval) bool { return !x.Empty && !y.Empty && x.Lo < y.Hi }

// CertainlyLt reports whether every r in x, s in y satisfy r < s.
func (x Interval) CertainlyLt(y Interval) bool { return !x.Empty && !y.Empty && x.Hi < y.Lo }

// PossiblyGe and CertainlyGe are the mirror images of Le.
func (x Interval) PossiblyGe(y Interval) bool  { return y.PossiblyLe(x) }
func (x Interval) CertainlyGe(y Interval) bool { return y.CertainlyLe(x) }

// PossiblyGt and CertainlyGt are the mirror images of Lt.
func (x Interval) PossiblyGt(y Interval) bool  { return y.PossiblyLt(x) }
func (x Interval) CertainlyGt(y Interval) bool { return y.CertainlyLt(x) }

// --- forward arithmetic ---

// Add returns the outward-rounded enclosure of x+y.
func (x Interval) Add(y Interval) Interval {
	if x.Empty || y.Empty {
		return Empty()
	}
	return Interval{Lo: dround.AddDown(x.Lo, y.Lo), Hi: dround.AddUp(x.Hi, y.Hi)}
}

// Sub returns the outward-rounded enclosure of x-y.
func (x Interval) Sub(y Interval) Interval {
	if x.Empty || y.Empty {
		return Empty()
	}
	return Interval{Lo: dround.SubDown(x.Lo, y.Hi), Hi: dround.SubUp(x.Hi, y.Lo)}
}

// Neg returns -x.
func (x Interval) Neg() Interval {
	if x.Empty {
		return Empty()
	}
	return Interval{Lo: -x.Hi, Hi: -x.Lo}
}

// Mul returns the outward-rounded enclosure of x*y.
func (x Interval) Mul(y Interval) Interval {
	if x.Empty || y.Empty {
		return Empty()
	}
	candidates := [4]float64{
		dround.MulDown(x.Lo, y.Lo), dround.MulDown(x.Lo, y.Hi),
		dround.MulDown(x.Hi, y.Lo), dround.MulDown(x.Hi, y.Hi),
	}
	loCand := candidates
	hiCand := [4]float64{
		dround.MulUp(x.Lo, y.Lo), dround.MulUp(x.Lo, y.Hi),
		dround.MulUp(x.Hi, y.Lo), dround.MulUp(x.Hi, y.Hi),
	}
	lo, hi := loCand[0], hiCand[0]
	for i := 1; i < 4; i++ {
		lo = math.Min(lo, loCand[i])
		hi = math.Max(hi, hiCand[i])
	}
	return Interval{Lo: lo, Hi: hi}
}

// Div returns the outward-rounded enclosure of x/y. Division by an
// interval containing zero returns a single widened interval (the
// universe, or a one-sided unbounded interval), matching the "forward
// division is a single interval" rule from the spec; the sharper
// two-piece result is only produced by the projections below.
func (x Interval) Div(y Interval) Interval {
	if x.Empty || y.Empty {
		return Empty()
	}
	if y.Lo <= 0 && y.Hi >= 0 {
		if x.StrictlyContainsZero() || (x.Lo == 0 && x.Hi == 0) {
			return Universe()
		}
		if y.Lo == 0 && y.Hi == 0 {
			return Empty()
		}
		if y.Lo == 0 {
			// y = [0, y.Hi]: division yields a one-sided interval.
			return x.divPositiveSemi(y)
		}
		if y.Hi == 0 {
			return x.divNegativeSemi(y)
		}
		return Universe()
	}
	inv := Interval{Lo: dround.DivDown(1, y.Hi), Hi: dround.DivUp(1, y.Lo)}
	return x.Mul(inv)
}

func (x Interval) divPositiveSemi(y Interval) Interval {
	if x.Hi < 0 {
		return New(math.Inf(-1), dround.DivUp(x.Hi, y.Hi))
	}
	return New(dround.DivDown(x.Lo, y.Hi), math.Inf(1))
}

func (x Interval) divNegativeSemi(y Interval) Interval {
	if x.Hi < 0 {
		return New(dround.DivDown(x.Hi, y.Lo), math.Inf(1))
	}
	return New(math.Inf(-1), dround.DivUp(x.Lo, y.Lo))
}

// Min returns the outward-rounded enclosure of min(x,y) pointwise.
func (x Interval) Min(y Interval) Interval {
	if x.Empty || y.Empty {
		return Empty()
	}
	return Interval{Lo: math.Min(x.Lo, y.Lo), Hi: math.Min(x.Hi, y.Hi)}
}

// Max returns the outward-rounded enclosure of max(x,y) pointwise.
func (x Interval) Max(y Interval) Interval {
	if x.Empty || y.Empty {
		return Empty()
	}
	return Interval{Lo: math.Max(x.Lo, y.Lo), Hi: math.Max(x.Hi, y.Hi)}
}

// Sqr returns the outward-rounded enclosure of x*x.
func (x Interval) Sqr() Interval {
	if x.Empty {
		return Empty()
	}
	if x.Lo >= 0 {
		return Interval{Lo: dround.SqrDown(x.Lo), Hi: dround.SqrUp(x.Hi)}
	}
	if x.Hi <= 0 {
		return Interval{Lo: dround.SqrDown(x.Hi), Hi: dround.SqrUp(x.Lo)}
	}
	return Interval{Lo: 0, Hi: dround.SqrUp(math.Max(-x.Lo, x.Hi))}
}

// Abs returns the outward-rounded enclosure of |x|.
func (x Interval) Abs() Interval {
	if x.Empty {
		return Empty()
	}
	if x.Lo >= 0 {
		return x
	}
	if x.Hi <= 0 {
		return x.Neg()
	}
	return Interval{Lo: 0, Hi: math.Max(-x.Lo, x.Hi)}
}

// Sgn returns the enclosure of the sign function over x.
func (x Interval) Sgn() Interval {
	if x.Empty {
		return Empty()
	}
	lo, hi := dround.SgnDown(x.Lo), dround.SgnUp(x.Hi)
	return Interval{Lo: lo, Hi: hi}
}

// Pow returns the outward-rounded enclosure of x^n for integer exponent n >= 0.
func (x Interval) Pow(n int) Interval {
	if x.Empty {
		return Empty()
	}
	if n == 0 {
		return Degenerate(1)
	}
	if n < 0 {
		return Degenerate(1).Div(x.Pow(-n))
	}
	if n%2 == 0 {
		if x.Lo >= 0 {
			return Interval{Lo: dround.PowDown(x.Lo, n), Hi: dround.PowUp(x.Hi, n)}
		}
		if x.Hi <= 0 {
			return Interval{Lo: dround.PowDown(x.Hi, n), Hi: dround.PowUp(x.Lo, n)}
		}
		return Interval{Lo: 0, Hi: dround.PowUp(math.Max(-x.Lo, x.Hi), n)}
	}
	return Interval{Lo: dround.PowDown(x.Lo, n), Hi: dround.PowUp(x.Hi, n)}
}

// --- elementary functions ---

// Sqrt returns the outward-rounded enclosure of sqrt(x) intersected with
// the domain x >= 0.
func (x Interval) Sqrt() Interval {
	if x.Empty || x.Hi < 0 {
		return Empty()
	}
	lo := math.Max(0, x.Lo)
	return Interval{Lo: dround.SqrtDown(lo), Hi: dround.SqrtUp(x.Hi)}
}

// Exp returns the outward-rounded enclosure of exp(x).
func (x Interval) Exp() Interval {
	if x.Empty {
		return Empty()
	}
	return Interval{Lo: dround.ExpDown(x.Lo), Hi: dround.ExpUp(x.Hi)}
}

// Log returns the outward-rounded enclosure of log(x) intersected with x > 0.
func (x Interval) Log() Interval {
	if x.Empty || x.Hi <= 0 {
		return Empty()
	}
	lo := x.Lo
	if lo <= 0 {
		return New(math.Inf(-1), dround.LogUp(x.Hi))
	}
	return Interval{Lo: dround.LogDown(lo), Hi: dround.LogUp(x.Hi)}
}

// Sin returns the outward-rounded enclosure of sin(x) over the full range,
// widening to [-1,1] whenever x spans more than a half period in either
// direction around an extremum.
func (x Interval) Sin() Interval {
	if x.Empty {
		return Empty()
	}
	if x.Width() >= 2*math.Pi {
		return New(-1, 1)
	}
	if x.ContainsHalfPiPluskPi() && x.containsNegHalfPiPluskPi() {
		return New(-1, 1)
	}
	lo := dround.SinDown(x.Lo)
	hi := dround.SinUp(x.Hi)
	if lo > hi {
		lo, hi = hi, lo
	}
	if x.ContainsHalfPiPluskPi() {
		hi = 1
	}
	if x.containsNegHalfPiPluskPi() {
		lo = -1
	}
	return New(math.Max(-1, lo), math.Min(1, hi))
}

func (x Interval) containsNegHalfPiPluskPi() bool {
	shifted := Interval{Lo: x.Lo + math.Pi, Hi: x.Hi + math.Pi}
	return shifted.ContainsHalfPiPluskPi()
}

// Cos returns the outward-rounded enclosure of cos(x), computed as sin(x+pi/2).
func (x Interval) Cos() Interval {
	if x.Empty {
		return Empty()
	}
	shifted := Interval{Lo: dround.AddDown(x.Lo, HalfPi.Lo), Hi: dround.AddUp(x.Hi, HalfPi.Hi)}
	return shifted.Sin()
}

// Tan returns the outward-rounded enclosure of tan(x), or Universe where x
// is at least pi wide or contains an odd multiple of pi/2.
func (x Interval) Tan() Interval {
	if x.Empty {
		return Empty()
	}
	if x.Width() >= math.Pi || x.ContainsHalfPiPluskPi() {
		return Universe()
	}
	return Interval{Lo: dround.TanDown(x.Lo), Hi: dround.TanUp(x.Hi)}
}

func (x Interval) Sinh() Interval {
	if x.Empty {
		return Empty()
	}
	return Interval{Lo: dround.SinhDown(x.Lo), Hi: dround.SinhUp(x.Hi)}
}

func (x Interval) Cosh() Interval {
	if x.Empty {
		return Empty()
	}
	if x.Lo >= 0 {
		return Interval{Lo: dround.CoshDown(x.Lo), Hi: dround.CoshUp(x.Hi)}
	}
	if x.Hi <= 0 {
		return Interval{Lo: dround.CoshDown(x.Hi), Hi: dround.CoshUp(x.Lo)}
	}
	return Interval{Lo: 1, Hi: dround.CoshUp(math.Max(-x.Lo, x.Hi))}
}

func (x Interval) Tanh() Interval {
	if x.Empty {
		return Empty()
	}
	return Interval{Lo: dround.TanhDown(x.Lo), Hi: dround.TanhUp(x.Hi)}
}

func (x Interval) Asin() Interval {
	if x.Empty {
		return Empty()
	}
	d := x.Inter(New(-1, 1))
	if d.IsEmpty() {
		return Empty()
	}
	return Interval{Lo: dround.AsinDown(d.Lo), Hi: dround.AsinUp(d.Hi)}
}

func (x Interval) Acos() Interval {
	if x.Empty {
		return Empty()
	}
	d := x.Inter(New(-1, 1))
	if d.IsEmpty() {
		return Empty()
	}
	return Interval{Lo: dround.AcosDown(d.Hi), Hi: dround.AcosUp(d.Lo)}
}

func (x Interval) Atan() Interval {
	if x.Empty {
		return Empty()
	}
	return Interval{Lo: dround.AtanDown(x.Lo), Hi: dround.AtanUp(x.Hi)}
}

func (x Interval) Asinh() Interval {
	if x.Empty {
		return Empty()
	}
	return Interval{Lo: dround.AsinhDown(x.Lo), Hi: dround.AsinhUp(x.Hi)}
}

func (x Interval) Acosh() Interval {
	if x.Empty || x.Hi < 1 {
		return Empty()
	}
	lo := math.Max(1, x.Lo)
	return Interval{Lo: dround.AcoshDown(lo), Hi: dround.AcoshUp(x.Hi)}
}

func (x Interval) Atanh() Interval {
	if x.Empty {
		return Empty()
	}
	d := x.Inter(New(-1, 1))
	if d.IsEmpty() {
		return Empty()
	}
	return Interval{Lo: dround.AtanhDown(d.Lo), Hi: dround.AtanhUp(d.Hi)}
}
