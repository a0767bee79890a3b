package search

import (
	"math"

	"github.com/gokando-numerics/realpaver/domain"
)

// Space is the pending-node set a branch-and-prune driver pulls from;
// strategies differ only in which node Next returns.
type Space interface {
	Push(n *Node)
	// Next removes and returns the next pending node, or ok=false when
	// the space is empty.
	Next() (n *Node, ok bool)
	// NoteSolution is called whenever the driver tags a node as a
	// solution, giving strategies that rank pending nodes by proximity to
	// known solutions (DMDFS) a chance to update their bookkeeping.
	NoteSolution(box *domain.DomainBox)
	Len() int
}

// DFS is a last-in-first-out pending set.
type DFS struct {
	stack []*Node
}

func NewDFS() *DFS { return &DFS{} }

func (s *DFS) Push(n *Node) { s.stack = append(s.stack, n) }

func (s *DFS) Next() (*Node, bool) {
	if len(s.stack) == 0 {
		return nil, false
	}
	n := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return n, true
}

func (s *DFS) NoteSolution(*domain.DomainBox) {}
func (s *DFS) Len() int                       { return len(s.stack) }

// BFS is a first-in-first-out pending set.
type BFS struct {
	queue []*Node
}

func NewBFS() *BFS { return &BFS{} }

func (s *BFS) Push(n *Node) { s.queue = append(s.queue, n) }

func (s *BFS) Next() (*Node, bool) {
	if len(s.queue) == 0 {
		return nil, false
	}
	n := s.queue[0]
	s.queue = s.queue[1:]
	return n, true
}

func (s *BFS) NoteSolution(*domain.DomainBox) {}
func (s *BFS) Len() int                       { return len(s.queue) }

// DMDFS (distant-most DFS) annotates every pending node with the minimum
// L-infinity distance from its box to any solution box found so far, and
// always extracts the node with the largest such distance — pushing the
// search away from regions already known to contain a solution.
type DMDFS struct {
	nodes     []*Node
	dist      map[int]float64
	solutions []*domain.DomainBox
}

func NewDMDFS() *DMDFS {
	return &DMDFS{dist: make(map[int]float64)}
}

func (s *DMDFS) Push(n *Node) {
	s.nodes = append(s.nodes, n)
	s.dist[n.ID] = s.distanceToSolutions(n.Box)
}

func (s *DMDFS) distanceToSolutions(box *domain.DomainBox) float64 {
	if len(s.solutions) == 0 {
		return math.Inf(1)
	}
	ib := box.ToIntervalBox()
	best := math.Inf(1)
	for _, sol := range s.solutions {
		d := ib.GapTo(sol.ToIntervalBox())
		if d < best {
			best = d
		}
	}
	return best
}

func (s *DMDFS) Next() (*Node, bool) {
	if len(s.nodes) == 0 {
		return nil, false
	}
	best := 0
	for i := 1; i < len(s.nodes); i++ {
		if s.dist[s.nodes[i].ID] > s.dist[s.nodes[best].ID] {
			best = i
		}
	}
	n := s.nodes[best]
	s.nodes = append(s.nodes[:best], s.nodes[best+1:]...)
	delete(s.dist, n.ID)
	return n, true
}

func (s *DMDFS) NoteSolution(box *domain.DomainBox) {
	s.solutions = append(s.solutions, box)
	for _, n := range s.nodes {
		s.dist[n.ID] = s.distanceToSolutions(n.Box)
	}
}

func (s *DMDFS) Len() int { return len(s.nodes) }

// HybridRank selects what HybridDFS's best-first stage orders pending
// nodes by once a DFS stage flushes into it.
type HybridRank int

const (
	RankDepth HybridRank = iota
	RankPerimeter
	RankGridPerimeter
)

// HybridDFS alternates a DFS stage (stack, flipping left-to-right vs
// right-to-left child order each time a solution flushes the stack) with a
// best-first stage ordered by Rank. Whenever a solution is produced during
// the DFS stage, the entire stack is moved into the best-first set and the
// next stage begins by popping the best-first node ranked highest.
type HybridDFS struct {
	Rank HybridRank
	Tols []domain.Tolerance

	stack    []*Node
	bestSet  []*Node
	leftward bool
	inDFS    bool
}

// NewHybridDFS starts in a DFS stage ranking the eventual best-first stage
// by rank, using tols for grid-perimeter scoring.
func NewHybridDFS(rank HybridRank, tols []domain.Tolerance) *HybridDFS {
	return &HybridDFS{Rank: rank, Tols: tols, leftward: true, inDFS: true}
}

func (s *HybridDFS) Push(n *Node) {
	if s.inDFS {
		s.stack = append(s.stack, n)
	} else {
		s.bestSet = append(s.bestSet, n)
	}
}

func (s *HybridDFS) score(n *Node) float64 {
	switch s.Rank {
	case RankPerimeter:
		return n.Box.ToIntervalBox().Perimeter()
	case RankGridPerimeter:
		return n.Box.ToIntervalBox().GridPerimeter(s.Tols)
	default:
		return float64(n.Depth)
	}
}

func (s *HybridDFS) Next() (*Node, bool) {
	if s.inDFS {
		if len(s.stack) == 0 {
			if len(s.bestSet) == 0 {
				return nil, false
			}
			s.inDFS = false
		} else {
			n := s.stack[len(s.stack)-1]
			s.stack = s.stack[:len(s.stack)-1]
			return n, true
		}
	}
	if len(s.bestSet) == 0 {
		if len(s.stack) == 0 {
			return nil, false
		}
		s.inDFS = true
		return s.Next()
	}
	best := 0
	for i := 1; i < len(s.bestSet); i++ {
		if s.score(s.bestSet[i]) < s.score(s.bestSet[best]) {
			best = i
		}
	}
	n := s.bestSet[best]
	s.bestSet = append(s.bestSet[:best], s.bestSet[best+1:]...)
	return n, true
}

// NoteSolution flushes the DFS stack into the best-first set and flips the
// stage's child-ordering direction, per the hybrid strategy's definition.
func (s *HybridDFS) NoteSolution(*domain.DomainBox) {
	if len(s.stack) > 0 {
		s.bestSet = append(s.bestSet, s.stack...)
		s.stack = nil
	}
	s.leftward = !s.leftward
	s.inDFS = false
}

// Leftward reports the current child-push ordering NcspSplit should use.
func (s *HybridDFS) Leftward() bool { return s.leftward }
