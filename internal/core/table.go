package core

import "fmt"

// Table is an ordered sequence of Entry rows plus an immutable ordered
// schema (column names). The j-th schema name corresponds to
// Rows[i].Attributes[j] for every row i. Name is a human-readable alias,
// not necessarily unique across a query (the same base table may be
// referenced under two aliases).
type Table struct {
	Name   string
	Schema []string
	Rows   []Entry
}

// NewTable builds an empty table with the given alias and schema.
func NewTable(name string, schema []string) *Table {
	return &Table{Name: name, Schema: append([]string(nil), schema...)}
}

// Len returns the number of rows, padding included.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the schema position of name, or -1 if the table has
// no such column.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Schema {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether name appears in the schema.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Attribute returns row i's value for column name. It panics if name is not
// in the schema; callers are expected to have validated column references
// against the schema up front (internal/jointree and internal/query do this
// at build time, not per row).
func (t *Table) Attribute(row int, name string) int32 {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		panic(fmt.Sprintf("core: table %q has no column %q", t.Name, name))
	}
	return t.Rows[row].Attributes[idx]
}

// AddRow appends entry, stamping its SchemaLen to this table's schema width.
func (t *Table) AddRow(e Entry) {
	e.SchemaLen = len(t.Schema)
	t.Rows = append(t.Rows, e)
}

// Clone returns a table with an independent Rows slice (Entry has no
// pointer fields, so each row is copied by value) sharing the same schema
// slice, since schemas are treated as immutable once built.
func (t *Table) Clone() *Table {
	out := &Table{Name: t.Name, Schema: t.Schema}
	out.Rows = append(out.Rows, t.Rows...)
	return out
}

// WithRows returns a shallow copy of t with Rows replaced by rows. Used
// throughout the phases, which build a new row slice at each step rather
// than mutate in place, matching the original project's one-table-per-pass
// structure (CombineTable, Table::map, ...).
func (t *Table) WithRows(rows []Entry) *Table {
	return &Table{Name: t.Name, Schema: t.Schema, Rows: rows}
}

// SetOriginalIndices stamps OriginalIndex with each row's current position.
// Every phase that needs to re-align a sorted stream back to a table calls
// this exactly once, at the point where the positions it captures are the
// ones later steps key off.
func (t *Table) SetOriginalIndices() {
	for i := range t.Rows {
		t.Rows[i].OriginalIndex = int64(i)
	}
}

// InitLeafMultiplicities sets LocalMult = FinalMult = 1 on every row. The
// engine calls it on every alias table, leaf or internal, when it clones
// the input tables, before the filter and bottom-up phases run (an internal
// node's LocalMult is then multiplied by each child edge's contribution).
func (t *Table) InitLeafMultiplicities() {
	for i := range t.Rows {
		t.Rows[i].LocalMult = 1
		t.Rows[i].FinalMult = 1
	}
}

// NonPadding returns a new row slice with every SORT_PADDING row removed,
// preserving the relative order of the rest. This is the single canonical
// place padding added ahead of an oblivious shuffle or sort is dropped
// afterward (see internal/oblivious's padding rule); every other component
// that pads a table for a size requirement calls this instead of
// re-implementing the filter.
func NonPadding(rows []Entry) []Entry {
	out := make([]Entry, 0, len(rows))
	for _, e := range rows {
		if e.FieldType != SortPadding {
			out = append(out, e)
		}
	}
	return out
}
