package executor

import "errors"

// Callers distinguish failure modes with errors.Is rather than string
// matching: an unreachable upstream, an exhausted loop budget and an invalid
// terminal answer all need different user-visible handling.
var (
	ErrUpstream       = errors.New("upstream chat request failed")
	ErrBudgetExceeded = errors.New("tool loop exceeded time budget")
	ErrInvalidAnswer  = errors.New("final answer is not a JSON array")
)
