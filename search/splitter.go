package search

import (
	"github.com/gokando-numerics/realpaver/domain"
	"github.com/gokando-numerics/realpaver/slicer"
)

// Splitter turns one pending node into its children, or returns none if
// the node has no splittable variable left.
type Splitter interface {
	Split(node *Node, tols []domain.Tolerance, nextID func() int) []*Node
}

// NcspSplit selects a variable via Sel, slices its domain with Dom, and
// clones node once per slice: every slice shares the parent's other
// coordinate domains by value (Domain values are immutable), substituting
// only the split variable's own slot.
type NcspSplit struct {
	Sel Selector
	Dom slicer.DomainSlicer

	// Leftward, when non-nil, is consulted before producing children so
	// HybridDFS's alternating child order can be honored; nil means
	// always left-to-right.
	Leftward func() bool
}

// NewNcspSplit returns an NcspSplit using sel to pick variables and the
// zero-value DomainSlicer (midpoint bisection) to slice them.
func NewNcspSplit(sel Selector) *NcspSplit {
	return &NcspSplit{Sel: sel}
}

func (s *NcspSplit) Split(node *Node, tols []domain.Tolerance, nextID func() int) []*Node {
	v, ok := s.Sel.Select(node, tols)
	if !ok {
		return nil
	}
	parts := s.Dom.Slice(node.Box.At(v))
	if len(parts) == 0 {
		return nil
	}
	if s.Leftward != nil && !s.Leftward() {
		reversed := make([]domain.Domain, len(parts))
		for i, p := range parts {
			reversed[len(parts)-1-i] = p
		}
		parts = reversed
	}
	children := make([]*Node, 0, len(parts))
	for _, p := range parts {
		box := node.Box.Clone()
		box.Set(v, p)
		child := &Node{
			ID:       nextID(),
			ParentID: node.ID,
			Depth:    node.Depth + 1,
			Box:      box,
			SplitVar: v,
		}
		children = append(children, child)
	}
	return children
}
