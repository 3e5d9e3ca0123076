package core

// Entry is the fixed-width tuple record every phase of the pipeline moves,
// sorts, and swaps. Only Attributes[0:SchemaLen] are meaningful; slots
// beyond that are ignored but still occupy their fixed position so that
// Entry stays a plain, fixed-size value usable with the oblivious swap in
// internal/oblivious.
//
// The scratch fields (LocalCumsum, LocalInterval, ForeignInterval,
// LocalWeight, CopyIndex, AlignmentKey, DstIdx, ScratchIndex) are reused
// across phases; each phase resets the ones it needs at its own boundary
// rather than relying on a previous phase's values.
type Entry struct {
	Attributes [MaxAttributes]int32
	SchemaLen  int

	JoinAttr     int32
	FieldType    FieldType
	EqualityType EqualityType

	OriginalIndex int64

	LocalMult  int64
	FinalMult  int64
	ForeignSum int64

	LocalCumsum   int64
	LocalInterval int64

	ForeignInterval int64
	LocalWeight     int64

	CopyIndex    int64
	AlignmentKey int64
	DstIdx       int64
	ScratchIndex int64
}

// NewEntry returns a zero-valued Entry of FieldType Source with EqualityType
// NoEquality, the shape a freshly loaded base-table row has.
func NewEntry(schemaLen int) Entry {
	return Entry{
		SchemaLen:    schemaLen,
		FieldType:    Source,
		EqualityType: NoEquality,
	}
}

// PaddingEntry returns a SORT_PADDING filler row. Its join attribute is set
// to PosInf so that, even before a comparator's explicit padding rule is
// consulted, a naive numeric comparison still sorts it last.
func PaddingEntry() Entry {
	return Entry{
		FieldType:    SortPadding,
		EqualityType: NoEquality,
		JoinAttr:     PosInf,
	}
}

// IsPadding reports whether e is a SORT_PADDING filler.
func (e *Entry) IsPadding() bool {
	return e.FieldType == SortPadding
}

// Attribute returns the value of the i-th column. It does not bounds-check
// against SchemaLen: callers iterate against a table's schema, which is the
// authority on how many slots are meaningful.
func (e *Entry) Attribute(i int) int32 {
	return e.Attributes[i]
}

// SetAttribute sets the value of the i-th column.
func (e *Entry) SetAttribute(i int, v int32) {
	e.Attributes[i] = v
}

// Clone returns a deep copy. Entry has no pointer or slice fields, so a
// plain value copy already is one; Clone exists to make that intent
// explicit at call sites that build a new row from an existing one (e.g.
// the combined-table encoder).
func (e Entry) Clone() Entry {
	return e
}
