// Package search implements the branch-and-prune pending-node machinery:
// the Node representation, the per-node annotation store, the family of
// pending-node spaces (DFS/BFS/DMDFS/HybridDFS), and the selector/splitter
// pair that turns one node into its children.
package search

import (
	"github.com/gokando-numerics/realpaver/contractor"
	"github.com/gokando-numerics/realpaver/domain"
)

// Node is one entry of the branch-and-prune search tree: a domain box, its
// depth and lineage, and (once the node has been contracted) the strongest
// proof certificate reached so far.
type Node struct {
	ID       int
	ParentID int
	Depth    int
	Box      *domain.DomainBox
	Proof    contractor.Proof

	// SplitVar is the variable this node's domain was narrowed on when it
	// was produced from its parent (-1 for the root), the state RR needs
	// to resume scanning from the right successor.
	SplitVar int
}

// NewRootNode wraps box as the single initial pending node.
func NewRootNode(id int, box *domain.DomainBox) *Node {
	return &Node{ID: id, ParentID: -1, Depth: 0, Box: box, SplitVar: -1}
}

// IsSolution reports whether every real coordinate is within tol and every
// discrete coordinate is canonical, per the driver's stopping test.
func (n *Node) IsSolution(tols []domain.Tolerance) bool {
	return n.Box.AllCanonical(tols)
}
