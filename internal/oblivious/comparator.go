package oblivious

import "github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"

// Comparator is an enum tag selecting one of a small closed set of total
// orders over core.Entry, so MergeSort and ShuffleSort can be parameterized
// by value rather than by a per-element function pointer — the same
// enum-dispatch shape the original project's algorithms use to pick a
// comparison rule (merge_sort_manager.h's COMPARATOR_* constants), kept
// here instead of Go's usual `func(a, b) int` so that padding rows can be
// special-cased once in Compare rather than in every comparator body.
type Comparator uint8

const (
	// JoinAttr orders by JoinAttr ascending, tie-broken by fieldTypeRank
	// (a closed Start or an open End, then Source, then an open Start or a
	// closed End) then OriginalIndex.
	JoinAttr Comparator = iota
	// Pairwise groups each parent's Start/End pair adjacently, Start
	// before End.
	Pairwise
	// EndFirst places every End row first (stably, by OriginalIndex), the
	// rest after.
	EndFirst
	// Alignment orders by AlignmentKey then CopyIndex.
	Alignment
	// DstIndex orders by DstIdx ascending. No phase sorts by it today —
	// DistributeExpand derives destination slots by direct prefix-sum
	// indexing rather than a sort — but it completes the closed comparator
	// set this registry is modeled on, for a future pass that needs to
	// recover dst-order after an intervening reorder.
	DstIndex
	// JoinThenOther orders by JoinAttr then ForeignSum, for passes where a
	// later oblivious step hides the ordering's access pattern. Unused by
	// the current phases for the same reason as DstIndex above.
	JoinThenOther
	// ByOriginalIndex orders by OriginalIndex ascending. Used to propagate a
	// combined table's SOURCE rows back onto their base table in its
	// original row order (top-down phase, C8 step 5) without writing at a
	// data-dependent position directly.
	ByOriginalIndex
)

// Compare returns -1, 0, or +1 comparing a and b under cmp. A SORT_PADDING
// row always compares greater than a non-padding row, under every
// comparator, regardless of cmp.
func Compare(cmp Comparator, a, b *core.Entry) int {
	if a.IsPadding() != b.IsPadding() {
		if a.IsPadding() {
			return 1
		}
		return -1
	}
	if a.IsPadding() && b.IsPadding() {
		return 0
	}

	switch cmp {
	case JoinAttr:
		return compareJoinAttr(a, b)
	case Pairwise:
		return comparePairwise(a, b)
	case EndFirst:
		return compareEndFirst(a, b)
	case Alignment:
		return compareAlignment(a, b)
	case DstIndex:
		return compareInt64(a.DstIdx, b.DstIdx)
	case JoinThenOther:
		return compareJoinThenOther(a, b)
	case ByOriginalIndex:
		return compareInt64(a.OriginalIndex, b.OriginalIndex)
	default:
		return 0
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt32(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// fieldTypeRank orders rows at an equal join attribute so the bottom-up
// and top-down phases' cumulative-sum pass sees each boundary on the
// correct side of the SOURCE rows it must include or exclude: a closed
// (EQ) START sorts before same-valued SOURCE rows so they fall inside its
// prefix sum, while an open (NEQ) START sorts after them so they don't; END
// is the mirror image. A single edge's bounds are fixed per phase (every
// START row in one combined table shares the edge's Lower.Equality, every
// END row its Upper.Equality), so this is a constant per combined table,
// not a per-row decision.
func fieldTypeRank(f core.FieldType, eq core.EqualityType) int {
	switch f {
	case core.Start:
		if eq == core.NEQ {
			return 2
		}
		return 0
	case core.Source:
		return 1
	case core.End:
		if eq == core.NEQ {
			return 0
		}
		return 2
	default:
		return 3
	}
}

func compareJoinAttr(a, b *core.Entry) int {
	if c := compareInt32(a.JoinAttr, b.JoinAttr); c != 0 {
		return c
	}
	if c := compareInt64(int64(fieldTypeRank(a.FieldType, a.EqualityType)), int64(fieldTypeRank(b.FieldType, b.EqualityType))); c != 0 {
		return c
	}
	return compareInt64(a.OriginalIndex, b.OriginalIndex)
}

func comparePairwise(a, b *core.Entry) int {
	// SOURCE rows sort entirely before the START/END rows (their relative
	// order among themselves does not matter here); within the START/END
	// block, rows are grouped by OriginalIndex (one parent tuple's pair),
	// START before END, so a caller can skip the SOURCE prefix and then
	// walk consecutive (START, END) pairs.
	aSource, bSource := a.FieldType == core.Source, b.FieldType == core.Source
	if aSource != bSource {
		if aSource {
			return -1
		}
		return 1
	}
	if aSource {
		return compareInt64(a.OriginalIndex, b.OriginalIndex)
	}
	if c := compareInt64(a.OriginalIndex, b.OriginalIndex); c != 0 {
		return c
	}
	return compareInt64(int64(boundaryRank(a.FieldType)), int64(boundaryRank(b.FieldType)))
}

func boundaryRank(f core.FieldType) int {
	switch f {
	case core.Start:
		return 0
	case core.End:
		return 1
	default:
		return 1
	}
}

func compareEndFirst(a, b *core.Entry) int {
	aEnd, bEnd := a.FieldType == core.End, b.FieldType == core.End
	if aEnd != bEnd {
		if aEnd {
			return -1
		}
		return 1
	}
	return compareInt64(a.OriginalIndex, b.OriginalIndex)
}

func compareAlignment(a, b *core.Entry) int {
	if c := compareInt64(a.AlignmentKey, b.AlignmentKey); c != 0 {
		return c
	}
	return compareInt64(a.CopyIndex, b.CopyIndex)
}

func compareJoinThenOther(a, b *core.Entry) int {
	if c := compareInt32(a.JoinAttr, b.JoinAttr); c != 0 {
		return c
	}
	return compareInt64(a.ForeignSum, b.ForeignSum)
}
