package engine

import "fmt"

// InternalInvariantViolation reports that an algorithmic post-condition the
// phases are supposed to guarantee did not hold — e.g. distribute-expand
// left a SORT_PADDING row where a real copy belonged. It is never expected
// to surface from correct input; seeing one means a phase's invariant
// broke, not that the query was malformed.
type InternalInvariantViolation struct {
	Phase   string
	Message string
}

func (e *InternalInvariantViolation) Error() string {
	return fmt.Sprintf("engine: internal invariant violated in %s: %s", e.Phase, e.Message)
}
