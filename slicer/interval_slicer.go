// Package slicer implements the bisect/peel/partition family of domain
// splitters the search splitter consumes: IntervalSlicer for continuous
// domains, RangeSlicer for integer domains, and DomainSlicer dispatching
// across the domain.Domain sum type.
package slicer

import "github.com/gokando-numerics/realpaver/interval"

// IntervalSlicer splits an interval.Interval into an ordered left-to-right
// sequence of sub-intervals.
type IntervalSlicer struct{}

// Bisect splits x at its midpoint.
func (IntervalSlicer) Bisect(x interval.Interval) []interval.Interval {
	if x.IsEmpty() {
		return nil
	}
	m := x.Mid()
	return []interval.Interval{
		interval.New(x.Lo, m),
		interval.New(m, x.Hi),
	}
}

// Peel returns three parts: a left shaving of width pct*width(x), the
// remaining body, and a right shaving of the same width. pct is in (0, 0.5).
func (IntervalSlicer) Peel(x interval.Interval, pct float64) []interval.Interval {
	if x.IsEmpty() {
		return nil
	}
	w := x.Width()
	if pct <= 0 || pct >= 0.5 || w == 0 {
		return []interval.Interval{x}
	}
	shave := w * pct
	left := interval.New(x.Lo, x.Lo+shave)
	body := interval.New(x.Lo+shave, x.Hi-shave)
	right := interval.New(x.Hi-shave, x.Hi)
	return []interval.Interval{left, body, right}
}

// Partition splits x into n equal-width parts.
func (IntervalSlicer) Partition(x interval.Interval, n int) []interval.Interval {
	if x.IsEmpty() || n <= 0 {
		return nil
	}
	if n == 1 {
		return []interval.Interval{x}
	}
	w := x.Width() / float64(n)
	out := make([]interval.Interval, n)
	for i := 0; i < n; i++ {
		lo := x.Lo + float64(i)*w
		hi := x.Lo + float64(i+1)*w
		if i == n-1 {
			hi = x.Hi
		}
		out[i] = interval.New(lo, hi)
	}
	return out
}
