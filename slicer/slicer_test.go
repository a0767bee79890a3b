package slicer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/interval"
	"github.com/gokando-numerics/realpaver/rint"
)

func TestIntervalBisectCoversOriginal(t *testing.T) {
	s := IntervalSlicer{}
	parts := s.Bisect(interval.New(0, 10))
	assert.Equal(t, interval.New(0, 5), parts[0])
	assert.Equal(t, interval.New(5, 10), parts[1])
}

func TestIntervalPeelShape(t *testing.T) {
	s := IntervalSlicer{}
	parts := s.Peel(interval.New(0, 10), 0.1)
	assert.Len(t, parts, 3)
	assert.InDelta(t, 1.0, parts[0].Width(), 1e-9)
	assert.InDelta(t, 8.0, parts[1].Width(), 1e-9)
	assert.InDelta(t, 1.0, parts[2].Width(), 1e-9)
}

func TestIntervalPartitionCount(t *testing.T) {
	s := IntervalSlicer{}
	parts := s.Partition(interval.New(0, 9), 3)
	assert.Len(t, parts, 3)
	for _, p := range parts {
		assert.InDelta(t, 3.0, p.Width(), 1e-9)
	}
}

func TestRangeBisectSplitsExactly(t *testing.T) {
	s := RangeSlicer{}
	parts := s.Bisect(rint.NewRange(1, 10))
	total := rint.Int(0)
	for _, p := range parts {
		total += p.Card()
	}
	assert.Equal(t, rint.Int(10), total)
}

func TestRangeSpray(t *testing.T) {
	s := RangeSlicer{}
	parts := s.Spray(rint.NewRange(1, 3))
	assert.Len(t, parts, 3)
	for _, p := range parts {
		assert.True(t, p.IsSingleton())
	}
}

func TestDomainSlicerBisectsInterval(t *testing.T) {
	ds := DomainSlicer{}
	out := ds.Slice(domain.IntervalDomain{X: interval.New(0, 2)})
	assert.Len(t, out, 2)
}

func TestDomainSlicerSplitsBinary(t *testing.T) {
	ds := DomainSlicer{}
	out := ds.Slice(domain.BinaryDomain{Z: domain.FullZeroOne()})
	assert.Len(t, out, 2)
}
