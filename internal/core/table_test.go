package core

import "testing"

func TestTableColumnIndex(t *testing.T) {
	tbl := NewTable("a", []string{"id", "value"})
	if idx := tbl.ColumnIndex("value"); idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if idx := tbl.ColumnIndex("missing"); idx != -1 {
		t.Fatalf("expected -1 for missing column, got %d", idx)
	}
	if !tbl.HasColumn("id") {
		t.Fatalf("expected HasColumn(id) true")
	}
}

func TestTableAddRowAndAttribute(t *testing.T) {
	tbl := NewTable("a", []string{"id", "value"})
	e := NewEntry(2)
	e.SetAttribute(0, 1)
	e.SetAttribute(1, 100)
	tbl.AddRow(e)

	if got := tbl.Attribute(0, "value"); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if tbl.Len() != 1 {
		t.Fatalf("expected length 1, got %d", tbl.Len())
	}
}

func TestNonPaddingFiltersPaddingRows(t *testing.T) {
	rows := []Entry{NewEntry(1), PaddingEntry(), NewEntry(1), PaddingEntry()}
	out := NonPadding(rows)
	if len(out) != 2 {
		t.Fatalf("expected 2 rows after filtering padding, got %d", len(out))
	}
	for _, e := range out {
		if e.IsPadding() {
			t.Fatalf("NonPadding must not return padding rows")
		}
	}
}

func TestSetOriginalIndices(t *testing.T) {
	tbl := NewTable("a", []string{"id"})
	tbl.AddRow(NewEntry(1))
	tbl.AddRow(NewEntry(1))
	tbl.SetOriginalIndices()
	for i, row := range tbl.Rows {
		if row.OriginalIndex != int64(i) {
			t.Fatalf("expected OriginalIndex %d, got %d", i, row.OriginalIndex)
		}
	}
}

func TestWithRowsSharesSchema(t *testing.T) {
	tbl := NewTable("a", []string{"id"})
	tbl.AddRow(NewEntry(1))
	next := tbl.WithRows([]Entry{NewEntry(1), NewEntry(1)})
	if next.Name != tbl.Name {
		t.Fatalf("expected same name")
	}
	if len(next.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(next.Rows))
	}
}
