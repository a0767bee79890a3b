package slicer

import "github.com/gokando-numerics/realpaver/rint"

// RangeSlicer splits an rint.Range into an ordered left-to-right sequence
// of sub-ranges.
type RangeSlicer struct{}

// Bisect splits r at its midpoint.
func (RangeSlicer) Bisect(r rint.Range) []rint.Range {
	if r.IsEmpty() || r.IsSingleton() {
		return []rint.Range{r}
	}
	m := r.Mid()
	return []rint.Range{
		rint.NewRange(r.Lo, m),
		rint.NewRange(m+1, r.Hi),
	}
}

// Peel returns the leftmost singleton, the remaining body, and the
// rightmost singleton.
func (RangeSlicer) Peel(r rint.Range) []rint.Range {
	if r.IsEmpty() {
		return nil
	}
	if r.IsSingleton() {
		return []rint.Range{r}
	}
	if r.Hi-r.Lo == 1 {
		return []rint.Range{rint.NewRange(r.Lo, r.Lo), rint.NewRange(r.Hi, r.Hi)}
	}
	return []rint.Range{
		rint.NewRange(r.Lo, r.Lo),
		rint.NewRange(r.Lo+1, r.Hi-1),
		rint.NewRange(r.Hi, r.Hi),
	}
}

// LeftFix peels off the leftmost singleton, keeping the rest as one range.
func (RangeSlicer) LeftFix(r rint.Range) []rint.Range {
	if r.IsEmpty() || r.IsSingleton() {
		return []rint.Range{r}
	}
	return []rint.Range{rint.NewRange(r.Lo, r.Lo), rint.NewRange(r.Lo+1, r.Hi)}
}

// RightFix peels off the rightmost singleton, keeping the rest as one range.
func (RangeSlicer) RightFix(r rint.Range) []rint.Range {
	if r.IsEmpty() || r.IsSingleton() {
		return []rint.Range{r}
	}
	return []rint.Range{rint.NewRange(r.Lo, r.Hi-1), rint.NewRange(r.Hi, r.Hi)}
}

// Spray returns one singleton range per integer in r.
func (RangeSlicer) Spray(r rint.Range) []rint.Range {
	if r.IsEmpty() {
		return nil
	}
	out := make([]rint.Range, 0, r.Card())
	for v := r.Lo; v <= r.Hi; v++ {
		out = append(out, rint.NewRange(v, v))
	}
	return out
}
