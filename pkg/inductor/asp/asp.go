// Package asp specifies the ASP-solver collaborator contract (§6): a
// black-box oracle that performs crisp-logic inference on a candidate
// theory against one example and returns a grounding.
package asp

import (
	"context"

	"github.com/cognicore/inductor/pkg/inductor/term"
)

// Solver is implemented by whatever performs crisp stable-model inference
// over a rule set and an example's ground facts. The learner treats it as
// a pure function of its inputs.
type Solver interface {
	// CrispLogicInference runs rules against example's facts under the
	// event-calculus axiom module named by axiomModule, returning the
	// inferred truth of every ground atom it derived an opinion about,
	// plus the residual inertia atoms that should persist into the next
	// example (per §4.5/§9, consumption of these is governed by the
	// caller's inertia configuration, not by the solver).
	CrispLogicInference(ctx context.Context, rules []*term.Clause, example term.Example, axiomModule string) (inferredState map[string]bool, residualInertia []term.Literal, err error)
}
