// Package baseline is a reference join engine for tests only: it loads the
// same tables into an in-memory SQLite database and runs the query's
// equi-join/band-join conditions as a plain SQL query, so a test can diff
// the oblivious engine's output multiset against a conventional one. It is
// grounded on original_source/tests/baseline/sqlite_baseline.cpp, which
// exists for exactly this purpose in the original project; this port swaps
// its embedded SQLite for database/sql plus modernc.org/sqlite, a pure-Go
// driver that needs no CGO toolchain, following the same driver-registration
// style as sqldef's database/sqlite3 package.
//
// internal/engine never imports this package — it is test-only scaffolding
// (spec.md section 1 calls the baseline reference engine an external
// collaborator, not part of the core).
package baseline

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/constraint"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/query"
)

// Row is one output row, as ordered int32 values matching the query's
// FROM-clause column concatenation order.
type Row []int32

// Run loads tables into a fresh in-memory SQLite database, translates q
// back into an equivalent standard SQL query, and returns every result row.
func Run(q query.ParsedQuery, tables map[string]*core.Table) ([]Row, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("baseline: failed to open in-memory database: %w", err)
	}
	defer db.Close()

	var schema []tableColumn
	for _, ref := range q.Tables {
		t, ok := tables[ref.Table]
		if !ok {
			return nil, fmt.Errorf("baseline: no table loaded for %s", ref.Table)
		}
		if err := createAndLoad(db, ref.Alias, t); err != nil {
			return nil, err
		}
		for _, col := range t.Schema {
			schema = append(schema, tableColumn{alias: ref.Alias, column: col})
		}
	}

	sqlText, err := render(q)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(sqlText)
	if err != nil {
		return nil, fmt.Errorf("baseline: query failed: %w\nquery: %s", err, sqlText)
	}
	defer rows.Close()

	var out []Row
	scanTargets := make([]interface{}, len(schema))
	values := make([]int64, len(schema))
	for i := range values {
		scanTargets[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("baseline: scan failed: %w", err)
		}
		row := make(Row, len(values))
		for i, v := range values {
			row[i] = int32(v)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

type tableColumn struct {
	alias, column string
}

func createAndLoad(db *sql.DB, alias string, t *core.Table) error {
	var cols []string
	for _, c := range t.Schema {
		cols = append(cols, fmt.Sprintf("%q integer", c))
	}
	ddl := fmt.Sprintf("CREATE TABLE %q (%s)", alias, strings.Join(cols, ", "))
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("baseline: failed to create table %s: %w", alias, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(t.Schema)), ",")
	insert := fmt.Sprintf("INSERT INTO %q VALUES (%s)", alias, placeholders)
	for i := range t.Rows {
		row := &t.Rows[i]
		args := make([]interface{}, len(t.Schema))
		for j := range t.Schema {
			args[j] = row.Attribute(j)
		}
		if _, err := db.Exec(insert, args...); err != nil {
			return fmt.Errorf("baseline: failed to insert into %s: %w", alias, err)
		}
	}
	return nil
}

// render turns q back into a standard SQL SELECT over the same FROM/WHERE
// shape the restricted dialect accepted, joining every table with a CROSS
// JOIN and moving every join and filter condition into WHERE — since the
// restricted dialect's comparisons are already exactly what SQLite's WHERE
// clause understands.
func render(q query.ParsedQuery) (string, error) {
	var from []string
	var selectCols []string
	for _, ref := range q.Tables {
		from = append(from, fmt.Sprintf("%q", ref.Alias))
	}

	var where []string
	for _, j := range q.Joins {
		where = append(where, renderJoin(j))
	}
	for _, f := range q.Filters {
		where = append(where, renderFilter(f))
	}

	for _, ref := range q.Tables {
		// The result's column order is fixed by Run's own schema slice, not
		// by this SELECT list, so selecting every column via "alias.*" in
		// FROM-clause order is enough.
		selectCols = append(selectCols, fmt.Sprintf("%q.*", ref.Alias))
	}

	stmt := fmt.Sprintf("SELECT %s FROM %s", strings.Join(selectCols, ", "), strings.Join(from, ", "))
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	return stmt, nil
}

// renderJoin turns one band constraint into a SQL WHERE fragment: a closed
// (EQ) bound renders as >=/<=, an open (NEQ) bound as >/<; a NegInf/PosInf
// deviation on that side means the join is unconstrained there and is
// skipped. An equality join (both bounds closed, deviation 0) collapses to
// a single "=" the same way spec.md's band model treats it as a degenerate
// band rather than a separate case.
func renderJoin(c constraint.Constraint) string {
	if c.IsEquality() {
		return fmt.Sprintf("%q.%q = %q.%q", c.SrcTable, c.SrcColumn, c.TgtTable, c.TgtColumn)
	}

	var parts []string
	if c.Lower.Deviation != core.NegInf {
		op := ">="
		if c.Lower.Equality == core.NEQ {
			op = ">"
		}
		parts = append(parts, fmt.Sprintf("%q.%q %s %q.%q + (%d)", c.SrcTable, c.SrcColumn, op, c.TgtTable, c.TgtColumn, c.Lower.Deviation))
	}
	if c.Upper.Deviation != core.PosInf {
		op := "<="
		if c.Upper.Equality == core.NEQ {
			op = "<"
		}
		parts = append(parts, fmt.Sprintf("%q.%q %s %q.%q + (%d)", c.SrcTable, c.SrcColumn, op, c.TgtTable, c.TgtColumn, c.Upper.Deviation))
	}
	if len(parts) == 0 {
		return "1=1"
	}
	return strings.Join(parts, " AND ")
}

func renderFilter(f query.FilterPredicate) string {
	return fmt.Sprintf("%q.%q %s %d", f.Alias, f.Column, opSymbol(f.Op), f.Literal)
}

func opSymbol(op query.CompareOp) string {
	switch op {
	case query.OpEquals:
		return "="
	case query.OpGreaterEq:
		return ">="
	case query.OpGreater:
		return ">"
	case query.OpLessEq:
		return "<="
	case query.OpLess:
		return "<"
	case query.OpNotEquals:
		return "!="
	default:
		return "="
	}
}
