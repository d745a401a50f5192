package csp

import "errors"

// Sentinel errors reported eagerly for programmer misuse — never for
// expected infeasibility, which is represented by a nil domain set or
// an empty solution instead (see Solve, AC3.Propagate,
// AllDiffPropagator.Propagate).
var (
	// ErrUnknownVariable is returned when a caller references a
	// variable key that has not been registered with AddVar.
	ErrUnknownVariable = errors.New("csp: unknown variable")

	// ErrDuplicateArc is returned when AddBinary would create a
	// self-loop (x == y); binary constraints must relate two
	// distinct variables.
	ErrDuplicateArc = errors.New("csp: binary constraint must relate two distinct variables")

	// ErrEmptyScope is returned when AddAllDiff is called with a
	// scope of fewer than two variables.
	ErrEmptyScope = errors.New("csp: AllDiff scope must contain at least two variables")
)
