package phases

import (
	"fmt"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/query"
)

// ApplyFilters zeroes LocalMult on every row of its alias's table that
// fails its filter predicate. Because LocalMult enters the bottom-up
// product multiplicatively (C7), a zeroed row propagates zero contribution
// to every ancestor without any data-dependent control flow — spec
// section 4.10's filter applicator (C11). Every table must already have
// LocalMult initialized (core.Table.InitLeafMultiplicities) before this
// runs; ApplyFilters only ever lowers it to zero, never raises it.
func ApplyFilters(tables map[string]*core.Table, filters []query.FilterPredicate) error {
	for _, f := range filters {
		tbl, ok := tables[f.Alias]
		if !ok {
			return fmt.Errorf("phases: filter references unknown alias %q", f.Alias)
		}
		idx := tbl.ColumnIndex(f.Column)
		if idx < 0 {
			return fmt.Errorf("phases: filter references unknown column %s.%s", f.Alias, f.Column)
		}
		for i := range tbl.Rows {
			if !matches(tbl.Rows[i].Attributes[idx], f.Op, f.Literal) {
				tbl.Rows[i].LocalMult = 0
			}
		}
	}
	return nil
}

func matches(v int32, op query.CompareOp, lit int32) bool {
	switch op {
	case query.OpEquals:
		return v == lit
	case query.OpGreaterEq:
		return v >= lit
	case query.OpGreater:
		return v > lit
	case query.OpLessEq:
		return v <= lit
	case query.OpLess:
		return v < lit
	case query.OpNotEquals:
		return v != lit
	default:
		return false
	}
}
