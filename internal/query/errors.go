package query

import "fmt"

// ParseError reports a syntactic problem: an unexpected token, a missing
// keyword, an unterminated clause. Position is the offset into the
// original query string where the problem was detected.
type ParseError struct {
	Position int
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("query: parse error at position %d: %s", e.Position, e.Message)
}

// UnsupportedPredicate reports a condition this restricted dialect
// recognizes but cannot express as a band constraint: a join condition
// using `!=`/`<>` (ported from
// original_source/impl/src/app/query/inequality_parser.cpp's
// operator_to_constraint, which builds an always-empty range for this case
// rather than failing outright — this port raises it explicitly instead).
// A filter predicate (not a join) may still use `!=`/`<>` freely.
type UnsupportedPredicate struct {
	Condition string
	Reason    string
}

func (e *UnsupportedPredicate) Error() string {
	return fmt.Sprintf("query: unsupported predicate %q: %s", e.Condition, e.Reason)
}

// EmptyIntersection reports that two join conditions on the same
// (source, target) column pair merge to a provably empty band (e.g.
// `a.x > b.y AND a.x < b.y`), per
// original_source/impl/src/app/query/condition_merger.cpp's
// is_valid_range check.
type EmptyIntersection struct {
	SrcTable, SrcColumn string
	TgtTable, TgtColumn string
}

func (e *EmptyIntersection) Error() string {
	return fmt.Sprintf("query: join condition on %s.%s / %s.%s has an empty intersection",
		e.SrcTable, e.SrcColumn, e.TgtTable, e.TgtColumn)
}
