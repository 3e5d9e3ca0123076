package query

import "github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/constraint"

// TableRef names one `FROM` clause entry: the alias a query's WHERE clause
// and select list use, and the real table name it refers back to.
type TableRef struct {
	Alias string
	Table string
}

// CompareOp is a filter predicate's comparison operator. Joins are
// restricted to the subset constraint.Constraint can express (see
// internal/query/parser.go); filter predicates accept all six, including
// NotEquals.
type CompareOp uint8

const (
	OpEquals CompareOp = iota
	OpGreaterEq
	OpGreater
	OpLessEq
	OpLess
	OpNotEquals
)

// FilterPredicate is a single-table condition: alias.Column Op Literal.
type FilterPredicate struct {
	Alias   string
	Column  string
	Op      CompareOp
	Literal int32
}

// ParsedQuery is the structured result of parsing a query string: the
// ordered table aliases from FROM, the join constraints extracted from
// WHERE (already merged per (src,tgt) column pair — see mergeJoins), and
// the remaining single-table filter predicates.
type ParsedQuery struct {
	Tables  []TableRef
	Joins   []constraint.Constraint
	Filters []FilterPredicate
}
