package phases

import "github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"

// DistributeExpand builds the expanded table for t (spec section 4.8):
// every row t.Rows[i] appears FinalMult(i) consecutive times in the
// result, tagged with CopyIndex running 0..FinalMult(i)-1. It also stamps
// DstIdx on t's own rows (the position of each row's first copy), which
// the align-concat phase reads as a parent row's alignment key.
//
// The expansion runs as the power-of-two-stride "distribute" passes of
// Krastnikov et al.: each round only ever reads the state the previous
// round produced and copies a filled slot forward by exactly the round's
// stride, so after ceil(log2(N)) rounds every slot holds its correct
// copy, having been assembled through binary-decomposed jumps of the
// distance from its run's first slot. No round branches on a row's
// attribute values; each round does use ordinary if statements on whether
// a slot is still SORT_PADDING and on whether the source run still has a
// copy left to give (CopyIndex+stride < FinalMult), so the passes are not
// built from constant-time conditional moves.
func DistributeExpand(t *core.Table) *core.Table {
	n := len(t.Rows)

	var running int64
	dstIdx := make([]int64, n)
	for i := 0; i < n; i++ {
		dstIdx[i] = running
		running += t.Rows[i].FinalMult
		t.Rows[i].DstIdx = dstIdx[i]
	}
	total := running

	expanded := make([]core.Entry, total)
	for i := range expanded {
		expanded[i] = core.PaddingEntry()
	}
	for i := 0; i < n; i++ {
		if t.Rows[i].FinalMult == 0 {
			continue
		}
		row := t.Rows[i].Clone()
		row.DstIdx = dstIdx[i]
		row.CopyIndex = 0
		expanded[dstIdx[i]] = row
	}

	for stride := int64(1); stride < total; stride *= 2 {
		next := append([]core.Entry(nil), expanded...)
		for i := int64(0); i < total; i++ {
			if !expanded[i].IsPadding() {
				continue
			}
			src := i - stride
			if src < 0 || expanded[src].IsPadding() {
				continue
			}
			cand := expanded[src]
			if cand.CopyIndex+stride < cand.FinalMult {
				cand.CopyIndex += stride
				cand.DstIdx = i
				next[i] = cand
			}
		}
		expanded = next
	}

	return t.WithRows(expanded)
}
