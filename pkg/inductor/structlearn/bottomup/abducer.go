// Package bottomup is the default structlearn.Learner: for each query
// atom in the example, it builds the most-specific (bottom) clause
// reachable by generalizing one shared constant across the example's
// facts, then proposes a minimal single-literal top clause abstracted
// from it, with the bottom rule as its sole support-set witness.
package bottomup

import (
	"fmt"

	"github.com/cognicore/inductor/pkg/inductor/structlearn"
	"github.com/cognicore/inductor/pkg/inductor/term"
)

// Abducer is the default structlearn.Learner.
type Abducer struct{}

// New builds an Abducer.
func New() *Abducer { return &Abducer{} }

// GenerateNewRules implements structlearn.Learner.
func (a *Abducer) GenerateNewRules(currentTheory []*term.Clause, example term.Example, options structlearn.Options) ([]*term.Clause, error) {
	var out []*term.Clause
	for _, query := range example.QueryAtoms {
		top, err := a.generateFor(query, example)
		if err != nil {
			continue // no generalizable witness for this atom; skip it
		}
		if top != nil {
			out = append(out, top)
		}
	}
	return out, nil
}

// generateFor builds one bottom rule and its minimal top-clause
// abstraction for a single query atom.
func (a *Abducer) generateFor(query term.Literal, example term.Example) (*term.Clause, error) {
	anchor, ok := lastConstant(query)
	if !ok {
		return nil, fmt.Errorf("bottomup: query atom %s has no generalizable constant", query)
	}
	variable := term.Variable{Name: "T"}

	bottomHead := generalize(query, anchor, variable)
	var bottomBody []term.Literal
	for _, fact := range example.Facts {
		if _, shares := lastConstant(fact); !shares {
			continue
		}
		if !containsConstant(fact, anchor) {
			continue
		}
		bottomBody = append(bottomBody, generalize(fact, anchor, variable))
	}
	if len(bottomBody) == 0 {
		return nil, fmt.Errorf("bottomup: no facts share query atom %s's anchor constant", query)
	}

	bottom := term.NewClause(bottomHead, bottomBody)
	bottom.IsTopRule = false
	bottom.IsBottomRule = true

	top := term.NewClause(bottomHead, []term.Literal{bottomBody[0]})
	top.Support = []*term.Clause{bottom}
	top.IsTopRule = true
	top.IsNew = true

	return top, nil
}

// lastConstant returns lit's last argument if it is a Constant — by
// convention in this event-calculus schema, a literal's final argument
// is its time point, the shared anchor used to build a bottom rule.
func lastConstant(lit term.Literal) (term.Constant, bool) {
	if len(lit.Args) == 0 {
		return term.Constant{}, false
	}
	c, ok := lit.Args[len(lit.Args)-1].(term.Constant)
	return c, ok
}

func containsConstant(lit term.Literal, target term.Constant) bool {
	found := false
	for _, a := range lit.Args {
		if c, ok := a.(term.Constant); ok && c.Value == target.Value {
			found = true
		}
	}
	return found
}

// generalize replaces every occurrence of target within lit's arguments
// with v, preserving lit's predicate, negation, and nested structure.
func generalize(lit term.Literal, target term.Constant, v term.Variable) term.Literal {
	args := make([]term.Term, len(lit.Args))
	for i, a := range lit.Args {
		args[i] = substituteConstant(a, target, v)
	}
	return term.Literal{Predicate: lit.Predicate, Args: args, Negated: lit.Negated, Mode: lit.Mode}
}

func substituteConstant(t term.Term, target term.Constant, v term.Variable) term.Term {
	switch tv := t.(type) {
	case term.Constant:
		if tv.Value == target.Value {
			return v
		}
		return tv
	case term.Compound:
		args := make([]term.Term, len(tv.Args))
		for i, a := range tv.Args {
			args[i] = substituteConstant(a, target, v)
		}
		return term.Compound{Functor: tv.Functor, Args: args}
	default:
		return t
	}
}
