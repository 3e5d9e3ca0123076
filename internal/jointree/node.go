// Package jointree turns a parsed query's table list and merged join
// constraints into a rooted tree: one node per table alias, each edge
// carrying the band constraint between a child and its parent. It is
// grounded on the rooting and traversal conventions described in
// original_source/src/query/parsed_query.h (one join column per node) and
// the tree-shaped processing every later phase (bottom-up, top-down,
// distribute-expand, align-concat) depends on.
package jointree

import (
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/constraint"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
)

// Edge is the band constraint from a child node to its parent, always
// normalized so Constraint.SrcTable/SrcColumn name the child's side and
// Constraint.TgtTable/TgtColumn name the parent's.
type Edge struct {
	Constraint constraint.Constraint

	// WindowSize holds, per parent row (indexed by its OriginalIndex), the
	// number of this edge's child rows matched inside that parent row's
	// band — the bottom-up phase's per-edge window size, before it gets
	// folded into the parent's own LocalMult. The top-down phase reads it
	// back to give each child edge its own share of a multi-child parent's
	// FinalMult rather than splitting it evenly across every edge.
	WindowSize []int64
}

// Node is one table in the join tree: its alias, its backing table, the
// column it joins on, its parent edge (nil at the root), and its children.
type Node struct {
	Alias      string
	Table      *core.Table
	JoinColumn string

	Parent     *Node
	ParentEdge Edge

	Children []*Node
}

// PostOrder returns every node reachable from root in post-order (children
// before their parent) — the traversal the bottom-up phase (C7) requires
// so a child's LocalMult is final before its parent consumes it.
func PostOrder(root *Node) []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.Children {
			walk(c)
		}
		out = append(out, n)
	}
	walk(root)
	return out
}

// PreOrder returns every node reachable from root in pre-order (parent
// before its children) — the traversal the top-down phase (C8) requires so
// a parent's FinalMult is settled before any child reads it.
func PreOrder(root *Node) []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		out = append(out, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}
