// Package exampleio specifies the example source collaborator contract
// (§6): a stream of term.Example values fed one at a time to the
// learner.
package exampleio

import (
	"context"

	"github.com/cognicore/inductor/pkg/inductor/term"
)

// Source yields examples in a fixed, source-defined order. Implementations
// are not required to support rewinding; the learner's rescoring pass
// asks for a fresh Source over the same underlying data instead.
type Source interface {
	// Next returns the next example. ok is false once the source is
	// exhausted; err is non-nil only on a genuine read failure.
	Next(ctx context.Context) (example term.Example, ok bool, err error)
	Close() error
}
