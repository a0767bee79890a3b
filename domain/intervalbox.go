package domain

import (
	"fmt"
	"math"

	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/scope"
)

// IntervalBox is a Scope plus a dense vector of interval.Interval values,
// the representation contractors actually narrow during propagation.
type IntervalBox struct {
	sc   scope.Scope
	vals []interval.Interval
}

// NewIntervalBox builds a box over sc with every slot initialized to init.
func NewIntervalBox(sc scope.Scope, init func(id int) interval.Interval) *IntervalBox {
	vals := make([]interval.Interval, sc.Size())
	for i, id := range sc.IDs() {
		vals[i] = init(id)
	}
	return &IntervalBox{sc: sc, vals: vals}
}

func (b *IntervalBox) Scope() scope.Scope { return b.sc }

func (b *IntervalBox) index(id int) int {
	i, ok := b.sc.Index(id)
	if !ok {
		panic(fmt.Sprintf("domain.IntervalBox: variable %d not in scope", id))
	}
	return i
}

func (b *IntervalBox) At(id int) interval.Interval   { return b.vals[b.index(id)] }
func (b *IntervalBox) Set(id int, x interval.Interval) { b.vals[b.index(id)] = x }

// AtIndex/SetIndex are the 0-based counterparts of At/Set, for callers
// that already know the scope-local index.
func (b *IntervalBox) AtIndex(i int) interval.Interval     { return b.vals[i] }
func (b *IntervalBox) SetIndex(i int, x interval.Interval) { b.vals[i] = x }

// IsEmpty reports whether any coordinate is empty.
func (b *IntervalBox) IsEmpty() bool {
	for _, x := range b.vals {
		if x.IsEmpty() {
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (b *IntervalBox) Clone() *IntervalBox {
	vals := make([]interval.Interval, len(b.vals))
	copy(vals, b.vals)
	return &IntervalBox{sc: b.sc, vals: vals}
}

// Midpoint returns the floating-point midpoint of every coordinate.
func (b *IntervalBox) Midpoint() []float64 {
	out := make([]float64, len(b.vals))
	for i, x := range b.vals {
		out[i] = x.Mid()
	}
	return out
}

// Corner returns the box obtained by picking, for variable at local index
// i, the Lo bound if the i-th bit of mask is 0, else the Hi bound.
func (b *IntervalBox) Corner(mask uint64) []float64 {
	out := make([]float64, len(b.vals))
	for i, x := range b.vals {
		if mask&(1<<uint(i)) == 0 {
			out[i] = x.Lo
		} else {
			out[i] = x.Hi
		}
	}
	return out
}

// OppositeCorner returns the corner selected by the complement of mask.
func (b *IntervalBox) OppositeCorner(mask uint64) []float64 {
	return b.Corner(^mask)
}

// GapTo returns the L-infinity distance between the boxes' Lo/Hi
// endpoints, used by DMDFS to rank pending nodes by proximity to
// already-found solutions.
func (b *IntervalBox) GapTo(other *IntervalBox) float64 {
	var maxGap float64
	for i := range b.vals {
		x, y := b.vals[i], other.vals[i]
		gap := math.Max(x.Lo-y.Hi, y.Lo-x.Hi)
		if gap > maxGap {
			maxGap = gap
		}
	}
	return maxGap
}

// HausdorffDistance returns the L-infinity Hausdorff distance between b
// and other over their shared scope.
func (b *IntervalBox) HausdorffDistance(other *IntervalBox) float64 {
	var maxD float64
	for i := range b.vals {
		x, y := b.vals[i], other.vals[i]
		d := math.Max(math.Abs(x.Lo-y.Lo), math.Abs(x.Hi-y.Hi))
		if d > maxD {
			maxD = d
		}
	}
	return maxD
}

// Inflate applies interval.Interval.Inflate coordinate-wise.
func (b *IntervalBox) Inflate(delta, chi float64) *IntervalBox {
	out := b.Clone()
	for i, x := range out.vals {
		out.vals[i] = x.Inflate(delta, chi)
	}
	return out
}

// Perimeter returns the sum of coordinate widths.
func (b *IntervalBox) Perimeter() float64 {
	var p float64
	for _, x := range b.vals {
		p += x.Width()
	}
	return p
}

// GridPerimeter returns the sum of width/tolerance ratios over every
// coordinate whose tolerance is not yet satisfied.
func (b *IntervalBox) GridPerimeter(tols []Tolerance) float64 {
	var p float64
	for i, x := range b.vals {
		if tols[i].Satisfied(x) {
			continue
		}
		denom := tols[i].Abs
		if denom <= 0 {
			denom = 1
		}
		p += x.Width() / denom
	}
	return p
}

// Splittable reports, per scope-local index, whether the coordinate's
// width exceeds the corresponding tolerance.
func (b *IntervalBox) Splittable(tols []Tolerance) []bool {
	out := make([]bool, len(b.vals))
	for i, x := range b.vals {
		out[i] = !x.IsEmpty() && !tols[i].Satisfied(x)
	}
	return out
}

// AllCanonical reports whether every coordinate is within tolerance.
func (b *IntervalBox) AllCanonical(tols []Tolerance) bool {
	for i, x := range b.vals {
		if !tols[i].Satisfied(x) {
			return false
		}
	}
	return true
}
