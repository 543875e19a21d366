// Package internalerr collects the sentinel errors named in §7's error
// taxonomy. Callers wrap one of these with fmt.Errorf("...: %w", ...) to
// add context while keeping errors.Is checks working.
package internalerr

import "errors"

var (
	// ErrNotFound covers lookup-out-of-range failures, e.g.
	// get_support_literal(i, j) with i or j outside [1, len].
	ErrNotFound = errors.New("not found")

	// ErrInvalidRule covers a clause that fails to parse or that
	// violates the well-formedness invariants of §3.
	ErrInvalidRule = errors.New("invalid rule")

	// ErrSolverFailed covers an ASP solver call that errored or timed
	// out; per §7 the example is skipped for structural updates, and
	// mistake-counters are left untouched.
	ErrSolverFailed = errors.New("solver failed")

	// ErrInvariantViolation covers a violated invariant (weight below
	// floor, a refinement whose body is not a superset of its parent's,
	// etc.) — fatal, aborting the learning run per §7.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrInvalidConfig covers a malformed or out-of-range configuration
	// value.
	ErrInvalidConfig = errors.New("invalid configuration")
)
