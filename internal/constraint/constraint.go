// Package constraint models a band join predicate between two (table,
// column) pairs and the operations the join-tree builder needs on it:
// intersecting two constraints that share both endpoints, reversing the
// direction of an edge, and testing whether a band degenerates to a plain
// equality. It is grounded on
// original_source/impl/src/app/utils/join_constraint.h, which carries the
// same six fields under the same semantics.
package constraint

import "github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"

// Bound is one side of a band: the source row's join value must lie at
// tgtValue+Deviation, inclusive (EQ) or exclusive (NEQ) of that point.
type Bound struct {
	Deviation int32
	Equality  core.EqualityType
}

// Constraint is a 6-field join predicate: a source row with join value x
// matches a target row with join value y iff
// y+Lower.Deviation <= x <= y+Upper.Deviation, each side strict when its
// Equality is NEQ. SrcTable/SrcColumn and TgtTable/TgtColumn name the two
// (table, column) pairs the band runs between.
type Constraint struct {
	SrcTable  string
	SrcColumn string
	TgtTable  string
	TgtColumn string
	Lower     Bound
	Upper     Bound
}

// Equality returns the degenerate band for src.col = tgt.col: (0, EQ, 0, EQ).
func Equality(srcTable, srcColumn, tgtTable, tgtColumn string) Constraint {
	return Constraint{
		SrcTable: srcTable, SrcColumn: srcColumn,
		TgtTable: tgtTable, TgtColumn: tgtColumn,
		Lower: Bound{Deviation: 0, Equality: core.EQ},
		Upper: Bound{Deviation: 0, Equality: core.EQ},
	}
}

// Band returns a one- or two-sided band constraint with the given bounds.
// Callers pass core.NegInf/core.PosInf as the Deviation on the side left
// unconstrained by the source query.
func Band(srcTable, srcColumn, tgtTable, tgtColumn string, lower, upper Bound) Constraint {
	return Constraint{
		SrcTable: srcTable, SrcColumn: srcColumn,
		TgtTable: tgtTable, TgtColumn: tgtColumn,
		Lower: lower, Upper: upper,
	}
}

// IsEquality reports whether c has degenerated to a plain equality: both
// deviations zero and both bounds closed.
func (c Constraint) IsEquality() bool {
	return c.Lower.Deviation == 0 && c.Lower.Equality == core.EQ &&
		c.Upper.Deviation == 0 && c.Upper.Equality == core.EQ
}

// Reverse swaps the source and target sides of c, negating and swapping
// the deviations: (d1,eq1,d2,eq2) becomes (-d2,eq2,-d1,eq1). Used when the
// join-tree builder needs to walk an edge from the direction opposite the
// one it was originally written in.
func (c Constraint) Reverse() Constraint {
	return Constraint{
		SrcTable:  c.TgtTable,
		SrcColumn: c.TgtColumn,
		TgtTable:  c.SrcTable,
		TgtColumn: c.SrcColumn,
		Lower:     Bound{Deviation: negate(c.Upper.Deviation), Equality: c.Upper.Equality},
		Upper:     Bound{Deviation: negate(c.Lower.Deviation), Equality: c.Lower.Equality},
	}
}

func negate(d int32) int32 {
	switch d {
	case core.NegInf:
		return core.PosInf
	case core.PosInf:
		return core.NegInf
	default:
		return -d
	}
}

// Intersect computes the intersection of c1 and c2, which must share both
// (table, column) pairs in the same orientation (callers normalize
// orientation with Reverse before calling, if needed). It takes the
// maximum of the two lower bounds and the minimum of the two upper bounds;
// when the chosen deviations are equal, NEQ wins over EQ since NEQ is the
// stricter bound. ok is false when the result is empty: the new lower
// deviation exceeds the new upper deviation, or they are equal but either
// side is NEQ.
func Intersect(c1, c2 Constraint) (result Constraint, ok bool) {
	lower := maxBound(c1.Lower, c2.Lower)
	upper := minBound(c1.Upper, c2.Upper)

	if lower.Deviation > upper.Deviation {
		return Constraint{}, false
	}
	if lower.Deviation == upper.Deviation && (lower.Equality == core.NEQ || upper.Equality == core.NEQ) {
		return Constraint{}, false
	}

	return Constraint{
		SrcTable:  c1.SrcTable,
		SrcColumn: c1.SrcColumn,
		TgtTable:  c1.TgtTable,
		TgtColumn: c1.TgtColumn,
		Lower:     lower,
		Upper:     upper,
	}, true
}

// maxBound returns the stricter (larger deviation; NEQ over EQ on a tie)
// of two lower bounds.
func maxBound(a, b Bound) Bound {
	switch {
	case a.Deviation > b.Deviation:
		return a
	case b.Deviation > a.Deviation:
		return b
	case a.Equality == core.NEQ || b.Equality == core.NEQ:
		return Bound{Deviation: a.Deviation, Equality: core.NEQ}
	default:
		return a
	}
}

// minBound returns the stricter (smaller deviation; NEQ over EQ on a tie)
// of two upper bounds.
func minBound(a, b Bound) Bound {
	switch {
	case a.Deviation < b.Deviation:
		return a
	case b.Deviation < a.Deviation:
		return b
	case a.Equality == core.NEQ || b.Equality == core.NEQ:
		return Bound{Deviation: a.Deviation, Equality: core.NEQ}
	default:
		return a
	}
}
