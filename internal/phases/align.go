package phases

import (
	"sort"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/combined"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/constraint"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/jointree"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/oblivious"
)

// windowMatch records one child row matched inside a parent row's band,
// in the order it is encountered sweeping the combined table, together
// with the cumulative LocalMult of every match that preceded it in that
// same parent row's window (its "prefix").
type windowMatch struct {
	rowIndex int64
	localMult int64
	prefix    int64
}

// AlignConcat reorders every node's expanded table into one shared
// canonical row order of length R (spec section 4.9): after it runs,
// position i of every node's table, concatenated column-wise by schema,
// is one row of the join's result. expanded holds each node's table
// after DistributeExpand (C9), keyed by alias; AlignConcat mutates each
// non-root table's AlignmentKey and then reorders it in place by that
// key. root's table is already in canonical order by construction
// (DistributeExpand lays out a row's FinalMult copies as a contiguous
// block starting at its own DstIdx, and root has no parent edge to
// reconcile that order against), so AlignConcat treats root's own
// position as the definition of "global position" and propagates it
// downward through the tree, one edge at a time, in pre-order — the same
// traversal TopDown uses, since a parent's canonical positions must be
// settled before its children's can be derived from them.
func AlignConcat(root *jointree.Node, expanded map[string]*core.Table, cfg Config) error {
	rootTable := expanded[root.Alias]
	for i := range rootTable.Rows {
		rootTable.Rows[i].AlignmentKey = int64(i)
	}

	for _, parent := range jointree.PreOrder(root) {
		if err := alignChildren(parent, expanded, cfg); err != nil {
			return err
		}
	}

	for _, n := range jointree.PreOrder(root) {
		if n == root {
			continue
		}
		tbl := expanded[n.Alias]
		sorted, err := cfg.sort(tbl.Rows, oblivious.Alignment)
		if err != nil {
			return err
		}
		expanded[n.Alias] = tbl.WithRows(core.NonPadding(sorted))
	}
	return nil
}

// alignChildren assigns AlignmentKey on every child's expanded rows for
// each of parent's child edges, per spec section 4.9: for each parent row
// r and each of its FinalMult(r) copies, decompose the copy index into a
// per-child "digit" (mixed-radix over parent.Children, since LocalMult(r)
// is their product — the same product BottomUp accumulates one edge at a
// time) plus an ancestor-repeat digit, then resolve that child digit to a
// specific matched child row and a sub-copy index within it, and stamp
// the parent's own already-resolved global position onto that exact
// expanded row.
func alignChildren(parent *jointree.Node, expanded map[string]*core.Table, cfg Config) error {
	children := sortedChildrenByAlias(parent)
	m := len(children)
	if m == 0 {
		return nil
	}

	type edgeWindows struct {
		windows map[int64][]windowMatch
		size    []int64
	}
	edges := make([]edgeWindows, m)
	for k, child := range children {
		w, sz, err := computeWindows(parent.Table, child.Table, child.ParentEdge.Constraint, cfg)
		if err != nil {
			return err
		}
		edges[k] = edgeWindows{windows: w, size: sz}
	}

	parentExpanded := expanded[parent.Alias]

	// used[k][a] counts the copies of child row a (on child edge k) already
	// claimed by earlier parent rows, so each parent row gets its own block.
	used := make([][]int64, m)
	for k, child := range children {
		used[k] = make([]int64, child.Table.Len())
	}

	for ridx := range parent.Table.Rows {
		r := &parent.Table.Rows[ridx]
		localMult := r.LocalMult
		finalMult := r.FinalMult
		if localMult == 0 || finalMult == 0 {
			continue
		}
		ancestorShare := finalMult / localMult

		suffix := make([]int64, m+1)
		suffix[m] = 1
		for k := m - 1; k >= 0; k-- {
			suffix[k] = suffix[k+1] * edges[k].size[ridx]
		}

		localBase := r.DstIdx
		for o := int64(0); o < finalMult; o++ {
			qAnc := o / localMult
			pStruct := o % localMult
			globalPos := parentExpanded.Rows[localBase+o].AlignmentKey

			for k := 0; k < m; k++ {
				windowSize := edges[k].size[ridx]
				idx := (pStruct / suffix[k+1]) % windowSize
				outer := pStruct / (suffix[k+1] * windowSize)
				inner := pStruct % suffix[k+1]
				jWithoutK := outer*suffix[k+1] + inner
				subCopyIndex := qAnc*(localMult/windowSize) + jWithoutK

				match := findMatch(edges[k].windows[int64(ridx)], idx)
				childTable := children[k].Table
				copyOfA := used[k][match.rowIndex] + subCopyIndex*childTable.Rows[match.rowIndex].LocalMult + (idx - match.prefix)
				childDstIdx := childTable.Rows[match.rowIndex].DstIdx

				childExpanded := expanded[children[k].Alias]
				childExpanded.Rows[childDstIdx+copyOfA].AlignmentKey = globalPos
			}
		}
		for k := 0; k < m; k++ {
			share := ancestorShare * (localMult / edges[k].size[ridx])
			for _, match := range edges[k].windows[int64(ridx)] {
				used[k][match.rowIndex] += share * match.localMult
			}
		}
	}
	return nil
}

// findMatch returns the windowMatch whose [prefix, prefix+localMult) range
// contains idx, via binary search over ms (sorted ascending by prefix, the
// order computeWindows builds it in).
func findMatch(ms []windowMatch, idx int64) windowMatch {
	i := sort.Search(len(ms), func(i int) bool {
		return ms[i].prefix+ms[i].localMult > idx
	})
	return ms[i]
}

// computeWindows sweeps the (parent, child) combined table once and
// returns, for every parent row (keyed by its OriginalIndex), the ordered
// list of child rows matched inside its band plus each match's prefix
// LocalMult — the same bookkeeping BottomUp's cumulative-sum pass
// computes as a single scalar per parent row (the window's total size);
// this keeps the per-match breakdown that scalar collapses, since
// align-concat needs to know not just how many matches a parent row has
// but which specific child rows they are. The combined table's sort here
// only reorders data already used, read, and aggregated inside this
// function — it never reaches an observable result on its own, so
// computeWindows sorts directly rather than through the shuffle-then-sort
// composition the oblivious phases use.
func computeWindows(parent, child *core.Table, c constraint.Constraint, cfg Config) (map[int64][]windowMatch, []int64, error) {
	rows := combined.Encode(parent, child, c)
	sort.SliceStable(rows, func(i, j int) bool {
		return oblivious.Compare(oblivious.JoinAttr, &rows[i], &rows[j]) < 0
	})

	type activeParent struct {
		prefix int64
	}
	active := make(map[int64]*activeParent)
	windows := make(map[int64][]windowMatch)
	size := make([]int64, parent.Len())

	for i := range rows {
		row := &rows[i]
		switch row.FieldType {
		case core.Start:
			active[row.OriginalIndex] = &activeParent{}
		case core.Source:
			for pidx, st := range active {
				windows[pidx] = append(windows[pidx], windowMatch{
					rowIndex:  row.OriginalIndex,
					localMult: row.LocalMult,
					prefix:    st.prefix,
				})
				st.prefix += row.LocalMult
			}
		case core.End:
			if st, ok := active[row.OriginalIndex]; ok {
				size[row.OriginalIndex] = st.prefix
				delete(active, row.OriginalIndex)
			}
		}
	}

	return windows, size, nil
}

// sortedChildrenByAlias returns n's children in a fixed, deterministic
// order. alignChildren's mixed-radix digit assignment only needs some
// fixed order (it builds and reads the per-row suffix products with the
// same ordering), not any particular one, so alias order is as good as
// any and keeps output reproducible across runs.
func sortedChildrenByAlias(n *jointree.Node) []*jointree.Node {
	out := append([]*jointree.Node(nil), n.Children...)
	sort.Slice(out, func(i, j int) bool { return out[i].Alias < out[j].Alias })
	return out
}
