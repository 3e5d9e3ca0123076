// Package combined builds the "combined table" a parent/child pair's band
// join is evaluated over: a single sequence of SOURCE (child), START, and
// END (parent boundary) rows whose sort order turns "is this child tuple
// within this parent's range" into a scan over sorted boundary events. It
// implements spec section 4.5's encoding, which has no direct analogue in
// original_source's C files (those inline the same boundary-event idea
// directly into each phase); this port factors it out once since every
// phase in internal/phases builds one.
package combined

import (
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/constraint"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
)

// Encode returns the combined sequence for an edge: one SOURCE row per
// child tuple (JoinAttr = that tuple's join column value) followed by one
// START and one END row per parent tuple (JoinAttr = the parent's join
// column value shifted by the edge's lower/upper deviation), in that
// group order. c must be oriented so SrcColumn names child's join column
// and TgtColumn names parent's. Each row is a full clone of its source
// tuple so the encoding is reversible: a phase can read any original
// attribute straight off a combined-table row.
func Encode(parent, child *core.Table, c constraint.Constraint) []core.Entry {
	out := make([]core.Entry, 0, child.Len()+2*parent.Len())

	childIdx := child.ColumnIndex(c.SrcColumn)
	for i := range child.Rows {
		row := child.Rows[i].Clone()
		row.FieldType = core.Source
		row.EqualityType = core.NoEquality
		row.JoinAttr = row.Attributes[childIdx]
		row.OriginalIndex = int64(i)
		out = append(out, row)
	}

	parentIdx := parent.ColumnIndex(c.TgtColumn)
	for j := range parent.Rows {
		base := parent.Rows[j].Attributes[parentIdx]

		start := parent.Rows[j].Clone()
		start.FieldType = core.Start
		start.EqualityType = c.Lower.Equality
		start.JoinAttr = shift(base, c.Lower.Deviation)
		start.OriginalIndex = int64(j)
		out = append(out, start)

		end := parent.Rows[j].Clone()
		end.FieldType = core.End
		end.EqualityType = c.Upper.Equality
		end.JoinAttr = shift(base, c.Upper.Deviation)
		end.OriginalIndex = int64(j)
		out = append(out, end)
	}

	return out
}

// shift adds a deviation to a parent join value, clamping to the infinity
// sentinels rather than letting NEG_INF/POS_INF participate in ordinary
// addition.
func shift(value, deviation int32) int32 {
	switch deviation {
	case core.NegInf:
		return core.NegInf
	case core.PosInf:
		return core.PosInf
	default:
		return value + deviation
	}
}
