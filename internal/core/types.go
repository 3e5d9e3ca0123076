// Package core holds the fixed-width tuple and table model shared by every
// phase of the oblivious join pipeline. Tuples are kept fixed-size so that
// later phases can move, swap, and sort them without branching on their
// payload (see internal/oblivious).
package core

import "math"

// MaxAttributes bounds the number of integer columns a single Entry can
// carry. 64 covers every table this engine is expected to join; it is also
// the width used by original_source/common/constants.h.
const MaxAttributes = 64

// NegInf and PosInf are the sentinel join-attribute values used to express
// one-sided band bounds (e.g. "x >= y" has no finite upper bound). They are
// chosen at the edges of the int32 range the same way
// original_source/common/constants.h's JOIN_ATTR_NEG_INF/POS_INF do, adapted
// from the original's floating-point join_attr to this port's signed
// 32-bit one.
const (
	NegInf int32 = math.MinInt32
	PosInf int32 = math.MaxInt32
)

// FieldType tags what role a row plays in a combined table or a base table.
type FieldType uint8

const (
	// Source marks an ordinary tuple: a base-table row, or a child-side row
	// inside a combined table.
	Source FieldType = iota
	// Start marks a lower-bound boundary event derived from a parent tuple.
	Start
	// End marks an upper-bound boundary event derived from a parent tuple.
	End
	// Target marks an ordinary parent-side tuple outside of a combined table.
	Target
	// SortPadding marks a filler row added to round a table up to a
	// required shape (a power of two for the Waksman network, or a
	// multiple of the k-way fan-in). It must sort greater than every other
	// row under every comparator, and is dropped once its purpose is
	// served.
	SortPadding
)

func (t FieldType) String() string {
	switch t {
	case Source:
		return "SOURCE"
	case Start:
		return "START"
	case End:
		return "END"
	case Target:
		return "TARGET"
	case SortPadding:
		return "SORT_PADDING"
	default:
		return "UNKNOWN"
	}
}

// EqualityType records whether a band endpoint is closed (EQ) or open (NEQ).
type EqualityType uint8

const (
	// EQ marks a closed endpoint: the boundary value itself matches.
	EQ EqualityType = iota
	// NEQ marks an open endpoint: the boundary value itself does not match.
	NEQ
	// NoEquality is used on rows where the concept does not apply (plain
	// SOURCE/TARGET rows outside of a combined table).
	NoEquality
)

func (e EqualityType) String() string {
	switch e {
	case EQ:
		return "EQ"
	case NEQ:
		return "NEQ"
	default:
		return "NONE"
	}
}
