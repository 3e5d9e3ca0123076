package phases

import (
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/combined"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/jointree"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/oblivious"
)

// TopDown computes FinalMult for every node of the tree rooted at root,
// walking it pre-order (jointree.PreOrder) so a parent's FinalMult is
// settled before any child edge reads it (spec section 4.7). It first sets
// each root row's FinalMult to its LocalMult (BottomUp leaves FinalMult at
// the 1 that InitLeafMultiplicities gave it), then propagates down every
// child edge.
func TopDown(root *jointree.Node, cfg Config) error {
	for i := range root.Table.Rows {
		root.Table.Rows[i].FinalMult = root.Table.Rows[i].LocalMult
	}

	for _, parent := range jointree.PreOrder(root) {
		for _, child := range parent.Children {
			if err := propagateToChild(parent, child, cfg); err != nil {
				return err
			}
		}
	}
	return nil
}

// propagateToChild distributes parent's per-row share across every child
// row that matches it under child's parent edge, following spec section
// 4.7's combined-table pass.
//
// When a parent row has only one child edge, that share is simply
// FinalMult/LocalMult. A parent with several children can't use that same
// ratio on every edge, though: LocalMult already multiplies together every
// edge's own window size, so dividing FinalMult by the whole of LocalMult
// would also divide out the other edges' contributions, undercounting by
// their product. Dividing by this edge's own window size instead (recorded
// by BottomUp on child.ParentEdge.WindowSize) cancels exactly the factor
// this edge contributed to LocalMult and leaves every other edge's factor
// folded into the child's own ancestor share, which is what lets each
// child's subtree be aligned against the others independently later.
func propagateToChild(parent, child *jointree.Node, cfg Config) error {
	windowSize := child.ParentEdge.WindowSize
	for i := range parent.Table.Rows {
		row := &parent.Table.Rows[i]
		if windowSize[i] == 0 {
			row.LocalWeight = 0
			continue
		}
		row.LocalWeight = row.FinalMult / windowSize[i]
	}

	rows := combined.Encode(parent.Table, child.Table, child.ParentEdge.Constraint)
	for i := range rows {
		rows[i].ForeignSum = 0
	}

	sorted, err := cfg.sort(rows, oblivious.JoinAttr)
	if err != nil {
		return err
	}

	var running int64
	for i := range sorted {
		switch sorted[i].FieldType {
		case core.Start:
			running += sorted[i].LocalWeight
		case core.Source:
			sorted[i].ForeignSum = running
			sorted[i].FinalMult = sorted[i].LocalMult * running
		case core.End:
			running -= sorted[i].LocalWeight
		}
	}

	sourceRows := make([]core.Entry, 0, child.Table.Len())
	for _, e := range sorted {
		if e.FieldType == core.Source {
			sourceRows = append(sourceRows, e)
		}
	}

	ordered, err := cfg.sort(sourceRows, oblivious.ByOriginalIndex)
	if err != nil {
		return err
	}

	for i := range ordered {
		idx := ordered[i].OriginalIndex
		child.Table.Rows[idx].FinalMult = ordered[i].FinalMult
	}

	return nil
}
