package jointree

import "fmt"

// SchemaError reports that a constraint or query references a column or
// table that does not exist.
type SchemaError struct {
	Alias   string
	Column  string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("jointree: schema error on %s.%s: %s", e.Alias, e.Column, e.Message)
	}
	return fmt.Sprintf("jointree: schema error on %s: %s", e.Alias, e.Message)
}

// CyclicOrDisconnected reports that the constraint graph built from a
// query's join conditions is not a tree: either it contains a cycle, or
// some table aliases are not reachable from the others.
type CyclicOrDisconnected struct {
	Message string
}

func (e *CyclicOrDisconnected) Error() string {
	return fmt.Sprintf("jointree: %s", e.Message)
}
