package phases

import (
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/combined"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/jointree"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/oblivious"
)

// BottomUp computes LocalMult for every node of the tree rooted at root,
// walking it post-order (jointree.PostOrder) so a child's LocalMult is
// final before any parent edge consumes it (spec section 4.6). Every node
// must already have LocalMult initialized — leaves at 1, internal nodes
// likewise before their own children are folded in — and ApplyFilters, if
// any filters apply, must already have zeroed the rows that fail.
func BottomUp(root *jointree.Node, cfg Config) error {
	for _, parent := range jointree.PostOrder(root) {
		for _, child := range parent.Children {
			if err := applyChildContribution(parent, child, cfg); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyChildContribution folds one child edge's matches into parent's
// LocalMult, following the eight-step combined-table pass of spec section
// 4.6.
func applyChildContribution(parent, child *jointree.Node, cfg Config) error {
	rows := combined.Encode(parent.Table, child.Table, child.ParentEdge.Constraint)

	for i := range rows {
		rows[i].LocalCumsum = rows[i].LocalMult
		rows[i].LocalInterval = 0
	}

	sorted, err := cfg.sort(rows, oblivious.JoinAttr)
	if err != nil {
		return err
	}

	var running int64
	for i := range sorted {
		if sorted[i].IsPadding() {
			continue
		}
		if sorted[i].FieldType == core.Source {
			running += sorted[i].LocalMult
		}
		sorted[i].LocalCumsum = running
	}

	sorted, err = cfg.sort(sorted, oblivious.Pairwise)
	if err != nil {
		return err
	}

	nSource := child.Table.Len()
	boundaries := sorted[nSource:]
	for i := 0; i+1 < len(boundaries); i += 2 {
		start, end := &boundaries[i], &boundaries[i+1]
		end.LocalInterval = end.LocalCumsum - start.LocalCumsum
	}

	sorted, err = cfg.sort(sorted, oblivious.EndFirst)
	if err != nil {
		return err
	}

	nParent := parent.Table.Len()
	ends := sorted[:nParent]
	windowSize := make([]int64, nParent)
	for i := range ends {
		idx := ends[i].OriginalIndex
		windowSize[idx] = ends[i].LocalInterval
		parent.Table.Rows[idx].LocalMult *= ends[i].LocalInterval
	}
	child.ParentEdge.WindowSize = windowSize

	return nil
}
