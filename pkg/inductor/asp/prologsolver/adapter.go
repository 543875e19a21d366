// Package prologsolver is the default asp.Solver, approximating the
// spec's black-box ASP oracle with an embedded SLD-resolution Prolog
// interpreter (github.com/ichiban/prolog). It is documented as an
// approximation rather than a full stable-model solver: negation is
// resolved as negation-as-failure over the program it is given, not via
// a true answer-set search. See DESIGN.md.
package prologsolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/ichiban/prolog"

	"github.com/cognicore/inductor/pkg/inductor/subsume"
	"github.com/cognicore/inductor/pkg/inductor/term"
)

// Adapter is the default asp.Solver implementation.
type Adapter struct {
	// MaxCandidates bounds how many head-atom groundings are queried per
	// call, guarding against combinatorial blow-up on examples with many
	// constants.
	MaxCandidates int
}

// New builds an Adapter with a sane default candidate cap.
func New() *Adapter {
	return &Adapter{MaxCandidates: 2048}
}

// CrispLogicInference implements asp.Solver.
func (a *Adapter) CrispLogicInference(ctx context.Context, rules []*term.Clause, example term.Example, axiomModule string) (map[string]bool, []term.Literal, error) {
	interp := prolog.New(nil, nil)

	program, err := buildProgram(rules, example)
	if err != nil {
		return nil, nil, fmt.Errorf("asp/prologsolver: build program for %s: %w", axiomModule, err)
	}
	if err := interp.Exec(program); err != nil {
		return nil, nil, fmt.Errorf("asp/prologsolver: exec program for %s: %w", axiomModule, err)
	}

	inferred := make(map[string]bool)
	var inertia []term.Literal

	for _, atom := range candidateHeadAtoms(rules, example, a.cap()) {
		select {
		case <-ctx.Done():
			return inferred, inertia, ctx.Err()
		default:
		}
		goal := toPrologGoal(atom)
		sols, err := interp.Query(goal + ".")
		if err != nil {
			return nil, nil, fmt.Errorf("asp/prologsolver: query %q: %w", goal, err)
		}
		holds := sols.Next()
		sols.Close()
		inferred[atom.String()] = holds
		if holds && atom.Predicate == "holdsAt" {
			inertia = append(inertia, atom)
		}
	}

	return inferred, inertia, nil
}

func (a *Adapter) cap() int {
	if a.MaxCandidates <= 0 {
		return 2048
	}
	return a.MaxCandidates
}

func buildProgram(rules []*term.Clause, example term.Example) (string, error) {
	var b strings.Builder
	for _, f := range example.Facts {
		if f.Negated {
			return "", fmt.Errorf("fact %s cannot be negated", f)
		}
		fmt.Fprintf(&b, "%s.\n", toPrologAtom(f))
	}
	for _, r := range rules {
		b.WriteString(toPrologRule(r))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// toPrologRule renders a clause as standard-syntax Prolog, translating
// this package's "not " negation-as-failure prefix to Prolog's "\+".
func toPrologRule(c *term.Clause) string {
	if len(c.Body) == 0 {
		return toPrologAtom(c.Head) + "."
	}
	parts := make([]string, len(c.Body))
	for i, lit := range c.Body {
		parts[i] = toPrologGoal(lit)
	}
	return toPrologAtom(c.Head) + " :- " + strings.Join(parts, ", ") + "."
}

func toPrologGoal(lit term.Literal) string {
	atom := toPrologAtom(lit)
	if lit.Negated {
		return "\\+ " + atom
	}
	return atom
}

// toPrologAtom renders lit without its negation prefix (Prolog negation
// is a goal-level operator, not part of the atom itself).
func toPrologAtom(lit term.Literal) string {
	plain := lit
	plain.Negated = false
	return plain.String()
}

// candidateHeadAtoms enumerates ground instances of every rule's head
// over the constants present in the example, bounded by maxCandidates.
// This stands in for genuine stable-model grounding: a real ASP solver
// grounds from the program's own rules and facts; this adapter grounds
// from surface constants only, which is sufficient for the bounded-arity
// event-calculus schema this learner targets.
func candidateHeadAtoms(rules []*term.Clause, example term.Example, maxCandidates int) []term.Literal {
	pool := constantPool(example)
	seenHeads := map[string]bool{}
	var out []term.Literal

	for _, r := range rules {
		vars := term.Variables(r)
		if len(vars) > subsume.MaxSubsumptionVariables {
			continue
		}
		if len(vars) == 0 {
			if !seenHeads[r.Head.String()] {
				seenHeads[r.Head.String()] = true
				out = append(out, r.Head)
			}
			continue
		}
		count := 0
		var rec func(i int, assignment map[string]term.Term)
		rec = func(i int, assignment map[string]term.Term) {
			if count >= maxCandidates || len(out) >= maxCandidates {
				return
			}
			if i == len(vars) {
				head := r.Head.Substitute(assignment)
				if !seenHeads[head.String()] {
					seenHeads[head.String()] = true
					out = append(out, head)
				}
				count++
				return
			}
			for _, c := range pool {
				assignment[vars[i].Name] = c
				rec(i+1, assignment)
			}
		}
		rec(0, map[string]term.Term{})
	}
	return out
}

func constantPool(example term.Example) []term.Term {
	seen := map[string]bool{}
	var out []term.Term
	var walkTerm func(term.Term)
	walkTerm = func(t term.Term) {
		switch v := t.(type) {
		case term.Constant:
			if !seen[v.Value] {
				seen[v.Value] = true
				out = append(out, v)
			}
		case term.Compound:
			for _, a := range v.Args {
				walkTerm(a)
			}
		}
	}
	for _, lit := range example.Facts {
		for _, a := range lit.Args {
			walkTerm(a)
		}
	}
	for _, lit := range example.QueryAtoms {
		for _, a := range lit.Args {
			walkTerm(a)
		}
	}
	return out
}
