// Package structlearn specifies the structure-learning collaborator
// contract (§6): bottom-up abduction from a mistake, returning new top
// clauses with populated support sets.
package structlearn

import "github.com/cognicore/inductor/pkg/inductor/term"

// Options carries the subset of learner configuration the structure
// learner needs, threaded explicitly rather than hidden in module state.
type Options struct {
	SpecializationDepth  int
	ComparisonPredicates []term.ModeDeclaration
}

// Learner generates new top clauses from the current theory and one
// example that the theory mispredicted.
type Learner interface {
	GenerateNewRules(currentTheory []*term.Clause, example term.Example, options Options) ([]*term.Clause, error)
}
