package domain

import "fmt"

// ZeroOne is a two-bit subset of {0, 1}, the domain of a Boolean
// variable. It is its own Domain variant rather than a degenerate Range
// because contraction must keep track of "neither value left" (empty)
// distinctly from "still undecided" ({0,1}).
type ZeroOne struct {
	zero, one bool
}

// FullZeroOne returns {0, 1}.
func FullZeroOne() ZeroOne { return ZeroOne{zero: true, one: true} }

// EmptyZeroOne returns the empty subset.
func EmptyZeroOne() ZeroOne { return ZeroOne{} }

// SingletonZeroOne returns {v} for v in {0,1}.
func SingletonZeroOne(v int) ZeroOne {
	if v == 0 {
		return ZeroOne{zero: true}
	}
	return ZeroOne{one: true}
}

// IsEmpty reports whether no value remains.
func (z ZeroOne) IsEmpty() bool { return !z.zero && !z.one }

// HasZero and HasOne report membership.
func (z ZeroOne) HasZero() bool { return z.zero }
func (z ZeroOne) HasOne() bool  { return z.one }

// Card returns the number of remaining values.
func (z ZeroOne) Card() int {
	n := 0
	if z.zero {
		n++
	}
	if z.one {
		n++
	}
	return n
}

// Inter returns the intersection of z and w.
func (z ZeroOne) Inter(w ZeroOne) ZeroOne {
	return ZeroOne{zero: z.zero && w.zero, one: z.one && w.one}
}

func (z ZeroOne) String() string {
	switch {
	case z.zero && z.one:
		return "{0,1}"
	case z.zero:
		return "{0}"
	case z.one:
		return "{1}"
	default:
		return "{}"
	}
}

func (z ZeroOne) Equal(w ZeroOne) bool { return z.zero == w.zero && z.one == w.one }

var _ = fmt.Stringer(ZeroOne{})
