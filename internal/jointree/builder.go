package jointree

import (
	"sort"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/constraint"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/query"
)

type rawEdge struct {
	a, b string
	c    constraint.Constraint // oriented a -> b (SrcTable == a)
}

// Build turns a parsed query and its alias-to-table map into a rooted join
// tree, per original_source/impl/src/app/query/query_parser.h's overall
// shape of "parse, then arrange aliases into a tree". It rejects:
//   - a reference to an alias or column absent from tables (SchemaError)
//   - a constraint graph that is not a tree (CyclicOrDisconnected), which
//     includes two constraints between the same pair of aliases on
//     different column pairs
func Build(q query.ParsedQuery, tables map[string]*core.Table) (*Node, map[string]*Node, error) {
	aliasOrder := make([]string, 0, len(q.Tables))
	for _, t := range q.Tables {
		aliasOrder = append(aliasOrder, t.Alias)
		if _, ok := tables[t.Alias]; !ok {
			return nil, nil, &SchemaError{Alias: t.Alias, Message: "no table loaded for this alias"}
		}
	}

	adjacency := make(map[string][]rawEdge)
	for _, alias := range aliasOrder {
		adjacency[alias] = nil
	}

	for _, c := range q.Joins {
		if _, ok := tables[c.SrcTable]; !ok {
			return nil, nil, &SchemaError{Alias: c.SrcTable, Message: "join references an unknown alias"}
		}
		if _, ok := tables[c.TgtTable]; !ok {
			return nil, nil, &SchemaError{Alias: c.TgtTable, Message: "join references an unknown alias"}
		}
		if !tables[c.SrcTable].HasColumn(c.SrcColumn) {
			return nil, nil, &SchemaError{Alias: c.SrcTable, Column: c.SrcColumn, Message: "column not found in table schema"}
		}
		if !tables[c.TgtTable].HasColumn(c.TgtColumn) {
			return nil, nil, &SchemaError{Alias: c.TgtTable, Column: c.TgtColumn, Message: "column not found in table schema"}
		}

		adjacency[c.SrcTable] = append(adjacency[c.SrcTable], rawEdge{a: c.SrcTable, b: c.TgtTable, c: c})
		adjacency[c.TgtTable] = append(adjacency[c.TgtTable], rawEdge{a: c.TgtTable, b: c.SrcTable, c: c.Reverse()})
	}

	if len(aliasOrder) == 0 {
		return nil, nil, &CyclicOrDisconnected{Message: "query has no tables"}
	}

	root := pickRoot(aliasOrder, adjacency)

	nodes := make(map[string]*Node, len(aliasOrder))
	for _, alias := range aliasOrder {
		nodes[alias] = &Node{Alias: alias, Table: tables[alias]}
	}

	visited := map[string]bool{root: true}
	order := []string{root}
	for i := 0; i < len(order); i++ {
		cur := order[i]
		for _, e := range adjacency[cur] {
			if visited[e.b] {
				continue
			}
			visited[e.b] = true
			child := nodes[e.b]
			parent := nodes[cur]
			child.Parent = parent
			// e is oriented cur -> e.b; the child-to-parent orientation
			// the tree stores wants src=child, tgt=parent, which is e.c
			// reversed relative to its own a/b labeling only when e.a is
			// the parent (cur) and e.c.SrcTable == cur.
			child.ParentEdge = Edge{Constraint: reorient(e.c, e.a, e.b)}
			parent.Children = append(parent.Children, child)
			order = append(order, e.b)
		}
	}

	if len(order) != len(aliasOrder) {
		return nil, nil, &CyclicOrDisconnected{Message: "join graph is disconnected: not every table is reachable from the others"}
	}

	edgeCount := 0
	for _, edges := range adjacency {
		edgeCount += len(edges)
	}
	// Each undirected edge appears twice (once per endpoint); a tree over
	// n nodes has exactly n-1 undirected edges, i.e. 2(n-1) directed
	// half-edges in the adjacency lists.
	if edgeCount/2 != len(aliasOrder)-1 {
		return nil, nil, &CyclicOrDisconnected{Message: "join graph contains a cycle"}
	}

	if err := assignJoinColumns(nodes[root]); err != nil {
		return nil, nil, err
	}

	return nodes[root], nodes, nil
}

// reorient returns c in the orientation where SrcTable == child and
// TgtTable == parent, given that c (as stored in the edge from a to b) has
// SrcTable == a.
func reorient(c constraint.Constraint, a, b string) constraint.Constraint {
	if c.SrcTable == b {
		return c
	}
	return c.Reverse()
}

// pickRoot chooses the first alias (in FROM-clause order) with maximum
// degree, the same heuristic original_source's join tree construction uses
// to keep tree depth small.
func pickRoot(aliasOrder []string, adjacency map[string][]rawEdge) string {
	best := aliasOrder[0]
	bestDegree := len(adjacency[best])
	for _, alias := range aliasOrder[1:] {
		if d := len(adjacency[alias]); d > bestDegree {
			best = alias
			bestDegree = d
		}
	}
	return best
}

// assignJoinColumns sets JoinColumn on every node: a non-root node's join
// column is the source column of its edge to its parent; the root's is the
// target column of its first child edge in alias order. A node whose child
// edges use other columns than its own (a chain such as a.fk = b.id AND
// b.fk = c.id) is accepted, since each edge keeps its own column pair.
func assignJoinColumns(root *Node) error {
	if err := agreeOnColumn(root, childColumns(root)); err != nil {
		return err
	}

	for _, n := range PreOrder(root) {
		for _, child := range sortedChildren(n) {
			child.JoinColumn = child.ParentEdge.Constraint.SrcColumn
			if err := agreeOnColumn(child, childColumns(child)); err != nil {
				return err
			}
		}
	}
	return nil
}

// childColumns returns the target column each of n's child edges expects n
// to carry, in deterministic (alias-sorted) order.
func childColumns(n *Node) []string {
	var cols []string
	for _, child := range sortedChildren(n) {
		cols = append(cols, child.ParentEdge.Constraint.TgtColumn)
	}
	return cols
}

func sortedChildren(n *Node) []*Node {
	out := append([]*Node(nil), n.Children...)
	sort.Slice(out, func(i, j int) bool { return out[i].Alias < out[j].Alias })
	return out
}

// agreeOnColumn sets n.JoinColumn to the first entry of cols when n has no
// join column yet (only the root, which has no parent edge). A column
// already assigned by n's own parent edge is kept, and entries of cols that
// differ from it are not an error: every edge carries its own column pair,
// which is what the phases read. An empty cols leaves n.JoinColumn
// untouched.
func agreeOnColumn(n *Node, cols []string) error {
	if n.JoinColumn == "" && len(cols) > 0 {
		n.JoinColumn = cols[0]
	}
	return nil
}
