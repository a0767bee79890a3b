package slicer

import (
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/rint"
)

// DomainSlicer dispatches on the Domain variant: bisects continuous
// domains at the midpoint, bisects integer ranges exactly, halves the
// number of components of a union (or bisects the lone component if only
// one remains), and splits a two-valued binary domain into {0} and {1}.
type DomainSlicer struct {
	Intervals IntervalSlicer
	Ranges    RangeSlicer
}

// Slice returns the ordered, left-to-right child domains for d.
func (s DomainSlicer) Slice(d domain.Domain) []domain.Domain {
	switch v := d.(type) {
	case domain.IntervalDomain:
		parts := s.Intervals.Bisect(v.X)
		out := make([]domain.Domain, len(parts))
		for i, p := range parts {
			out[i] = domain.IntervalDomain{X: p}
		}
		return out
	case domain.RangeDomain:
		parts := s.Ranges.Bisect(v.R)
		out := make([]domain.Domain, len(parts))
		for i, p := range parts {
			out[i] = domain.RangeDomain{R: p}
		}
		return out
	case domain.IntervalUnionDomain:
		parts := v.U.Parts()
		if len(parts) > 1 {
			mid := len(parts) / 2
			return []domain.Domain{
				intervalUnionOf(parts[:mid]),
				intervalUnionOf(parts[mid:]),
			}
		}
		bisected := s.Intervals.Bisect(v.Hull())
		out := make([]domain.Domain, len(bisected))
		for i, p := range bisected {
			out[i] = domain.IntervalDomain{X: p}
		}
		return out
	case domain.RangeUnionDomain:
		parts := v.U.Parts()
		if len(parts) > 1 {
			mid := len(parts) / 2
			return []domain.Domain{
				rangeUnionOf(parts[:mid]),
				rangeUnionOf(parts[mid:]),
			}
		}
		bisected := s.Ranges.Bisect(parts[0])
		out := make([]domain.Domain, len(bisected))
		for i, p := range bisected {
			out[i] = domain.RangeDomain{R: p}
		}
		return out
	case domain.BinaryDomain:
		var out []domain.Domain
		if v.Z.HasZero() {
			out = append(out, domain.BinaryDomain{Z: domain.SingletonZeroOne(0)})
		}
		if v.Z.HasOne() {
			out = append(out, domain.BinaryDomain{Z: domain.SingletonZeroOne(1)})
		}
		return out
	default:
		return []domain.Domain{d}
	}
}

func intervalUnionOf(parts []interval.Interval) domain.Domain {
	return domain.IntervalUnionDomain{U: interval.NewUnion(parts...)}
}

func rangeUnionOf(parts []rint.Range) domain.Domain {
	return domain.RangeUnionDomain{U: rint.NewRangeUnion(parts...)}
}
