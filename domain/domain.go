// Package domain implements the Domain sum type (Interval, IntervalUnion,
// Range, RangeUnion, Binary), Variable, and the Scope-indexed containers
// DomainBox and IntervalBox that own per-variable state during search.
package domain

import (
	"fmt"

	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/rint"
)

// Tolerance is the absolute or relative width threshold at which a real
// variable's domain is declared canonical (unsplittable).
type Tolerance struct {
	Abs, Rel float64
}

// Satisfied reports whether the interval x is within tolerance.
func (t Tolerance) Satisfied(x interval.Interval) bool {
	if x.IsEmpty() {
		return true
	}
	w := x.Width()
	if w <= t.Abs {
		return true
	}
	mag := x.Magnitude()
	return mag > 0 && w <= t.Rel*mag
}

// Domain is the sum type owned by a Variable: one of Interval,
// IntervalUnion, Range, RangeUnion or Binary. Every variant supports the
// same small set of set-theoretic and search-facing operations.
type Domain interface {
	IsEmpty() bool
	Hull() interval.Interval
	Size() float64
	IsCanonical(tol Tolerance) bool
	IsConnected() bool
	ContractHull(x interval.Interval) Domain
	ContractWith(x interval.Interval) Domain
	Clone() Domain
	String() string
}

// --- Interval variant ---

// IntervalDomain wraps a single interval.Interval.
type IntervalDomain struct{ X interval.Interval }

func (d IntervalDomain) IsEmpty() bool                 { return d.X.IsEmpty() }
func (d IntervalDomain) Hull() interval.Interval       { return d.X }
func (d IntervalDomain) Size() float64                 { return d.X.Width() }
func (d IntervalDomain) IsConnected() bool             { return true }
func (d IntervalDomain) Clone() Domain                 { return IntervalDomain{X: d.X} }
func (d IntervalDomain) String() string                { return d.X.String() }
func (d IntervalDomain) IsCanonical(tol Tolerance) bool { return tol.Satisfied(d.X) }

func (d IntervalDomain) ContractHull(x interval.Interval) Domain {
	return IntervalDomain{X: d.X.Inter(x)}
}
func (d IntervalDomain) ContractWith(x interval.Interval) Domain { return d.ContractHull(x) }

// --- IntervalUnion variant ---

// IntervalUnionDomain wraps an interval.Union.
type IntervalUnionDomain struct{ U interval.Union }

func (d IntervalUnionDomain) IsEmpty() bool           { return d.U.IsEmpty() }
func (d IntervalUnionDomain) Hull() interval.Interval { return d.U.Hull() }
func (d IntervalUnionDomain) Size() float64           { return d.U.Width() }
func (d IntervalUnionDomain) IsConnected() bool       { return false }
func (d IntervalUnionDomain) Clone() Domain           { return IntervalUnionDomain{U: d.U} }
func (d IntervalUnionDomain) String() string          { return fmt.Sprintf("%v", d.U.Parts()) }
func (d IntervalUnionDomain) IsCanonical(tol Tolerance) bool {
	return len(d.U.Parts()) <= 1 && tol.Satisfied(d.U.Hull())
}
func (d IntervalUnionDomain) ContractHull(x interval.Interval) Domain {
	return IntervalDomain{X: d.U.Contract(x)}
}
func (d IntervalUnionDomain) ContractWith(x interval.Interval) Domain {
	return IntervalUnionDomain{U: d.U.ContractExact(x)}
}

// --- Range variant ---

// RangeDomain wraps an rint.Range.
type RangeDomain struct{ R rint.Range }

func (d RangeDomain) IsEmpty() bool     { return d.R.IsEmpty() }
func (d RangeDomain) IsConnected() bool { return true }
func (d RangeDomain) Hull() interval.Interval {
	if d.R.IsEmpty() {
		return interval.Empty()
	}
	return interval.New(float64(d.R.Lo), float64(d.R.Hi))
}
func (d RangeDomain) Size() float64 { return float64(d.R.Card()) }
func (d RangeDomain) Clone() Domain { return RangeDomain{R: d.R} }
func (d RangeDomain) String() string { return d.R.String() }
func (d RangeDomain) IsCanonical(tol Tolerance) bool { return d.R.IsEmpty() || d.R.IsSingleton() }

func (d RangeDomain) ContractHull(x interval.Interval) Domain {
	return RangeDomain{R: d.R.Inter(intervalToRange(x))}
}
func (d RangeDomain) ContractWith(x interval.Interval) Domain { return d.ContractHull(x) }

func intervalToRange(x interval.Interval) rint.Range {
	r := x.Round()
	if r.IsEmpty() {
		return rint.EmptyRange()
	}
	return rint.NewRange(rint.Int(r.Lo), rint.Int(r.Hi))
}

// --- RangeUnion variant ---

// RangeUnionDomain wraps an rint.RangeUnion.
type RangeUnionDomain struct{ U rint.RangeUnion }

func (d RangeUnionDomain) IsEmpty() bool { return d.U.IsEmpty() }
func (d RangeUnionDomain) Hull() interval.Interval {
	h := d.U.Hull()
	if h.IsEmpty() {
		return interval.Empty()
	}
	return interval.New(float64(h.Lo), float64(h.Hi))
}
func (d RangeUnionDomain) Size() float64     { return float64(d.U.Card()) }
func (d RangeUnionDomain) IsConnected() bool { return false }
func (d RangeUnionDomain) Clone() Domain     { return RangeUnionDomain{U: d.U} }
func (d RangeUnionDomain) String() string    { return fmt.Sprintf("%v", d.U.Parts()) }
func (d RangeUnionDomain) IsCanonical(tol Tolerance) bool {
	return len(d.U.Parts()) <= 1 && (d.U.IsEmpty() || d.U.Parts()[0].IsSingleton())
}
func (d RangeUnionDomain) ContractHull(x interval.Interval) Domain {
	return RangeDomain{R: d.U.Contract(intervalToRange(x))}
}
func (d RangeUnionDomain) ContractWith(x interval.Interval) Domain {
	return RangeUnionDomain{U: d.U.ContractExact(intervalToRange(x))}
}

// --- Binary variant ---

// BinaryDomain wraps a ZeroOne.
type BinaryDomain struct{ Z ZeroOne }

func (d BinaryDomain) IsEmpty() bool     { return d.Z.IsEmpty() }
func (d BinaryDomain) IsConnected() bool { return d.Z.Card() <= 1 }
func (d BinaryDomain) Hull() interval.Interval {
	switch {
	case d.Z.IsEmpty():
		return interval.Empty()
	case d.Z.Card() == 2:
		return interval.New(0, 1)
	case d.Z.HasZero():
		return interval.Degenerate(0)
	default:
		return interval.Degenerate(1)
	}
}
func (d BinaryDomain) Size() float64  { return float64(d.Z.Card()) }
func (d BinaryDomain) Clone() Domain  { return BinaryDomain{Z: d.Z} }
func (d BinaryDomain) String() string { return d.Z.String() }
func (d BinaryDomain) IsCanonical(tol Tolerance) bool { return d.Z.Card() <= 1 }

func (d BinaryDomain) ContractHull(x interval.Interval) Domain {
	return d.ContractWith(x)
}
func (d BinaryDomain) ContractWith(x interval.Interval) Domain {
	allowed := FullZeroOne()
	if !x.Contains(interval.Degenerate(0)) {
		allowed = ZeroOne{one: allowed.one}
	}
	if !x.Contains(interval.Degenerate(1)) {
		allowed = ZeroOne{zero: allowed.zero}
	}
	return BinaryDomain{Z: d.Z.Inter(allowed)}
}
