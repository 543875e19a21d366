// Package refine generates candidate specializations of a clause from its
// support set (§4.3): it adds up to depth body literals drawn from the
// clause's bottom-rules, drops redundant and duplicate candidates, and
// restricts each survivor's inherited support set to the bottom-rules it
// still covers.
package refine

import (
	"github.com/cognicore/inductor/pkg/inductor/subsume"
	"github.com/cognicore/inductor/pkg/inductor/term"
)

// Generate computes c.Refinements in place and returns the same slice.
// depth is the maximum number of body literals added per candidate (the
// specialization depth, ≥ 1). comparisonPredicates flags which mode
// declarations are comparison predicates, for redundancy detection. seen
// is an optional set of already-generated clauses; any candidate mutually
// θ-subsumed by a member of seen is dropped.
func Generate(eng *subsume.Engine, c *term.Clause, depth int, comparisonPredicates []term.ModeDeclaration, seen []*term.Clause) []*term.Clause {
	candidates := candidateLiterals(c)
	var generated []*term.Clause

	for k := 1; k <= depth; k++ {
		for _, subset := range combinations(candidates, k) {
			if isRedundant(c.Body, subset, comparisonPredicates) {
				continue
			}
			body := append(append([]term.Literal{}, c.Body...), subset...)
			generated = append(generated, term.NewClause(c.Head, body))
		}
	}

	generated = compress(eng, generated)
	generated = dropSeen(eng, generated, seen)

	for _, r := range generated {
		r.Parent = c
		r.Weight = c.Weight
		r.IsTopRule = false
		r.IsNew = true
		r.Support = supportStillCovering(eng, r, c.Support)
	}

	c.Refinements = generated
	return generated
}

// candidateLiterals returns the distinct body literals of c's support set
// that are not already in c's own body, per §4.3 step 1.
func candidateLiterals(c *term.Clause) []term.Literal {
	var out []term.Literal
	for _, s := range c.Support {
		for _, lit := range s.Body {
			if c.HasBodyLiteral(lit) {
				continue
			}
			dup := false
			for _, existing := range out {
				if existing.Equal(lit) {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, lit)
			}
		}
	}
	return out
}

// combinations returns every k-subset of items, preserving item order
// within each subset and enumerating subsets in lexicographic order of
// their item indices.
func combinations(items []term.Literal, k int) [][]term.Literal {
	n := len(items)
	if k <= 0 || k > n {
		return nil
	}
	var out [][]term.Literal
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		subset := make([]term.Literal, k)
		for i, j := range idx {
			subset[i] = items[j]
		}
		out = append(out, subset)

		pos := k - 1
		for pos >= 0 && idx[pos] == n-k+pos {
			pos--
		}
		if pos < 0 {
			break
		}
		idx[pos]++
		for i := pos + 1; i < k; i++ {
			idx[i] = idx[i-1] + 1
		}
	}
	return out
}

// isRedundant reports whether combined := body ∪ subset consists entirely
// of literals whose mode is the same comparison-predicate mode. A
// singleton subset is never redundant, per §4.3 step 3.
func isRedundant(body []term.Literal, subset []term.Literal, comparisonPredicates []term.ModeDeclaration) bool {
	if len(subset) == 1 {
		return false
	}
	combined := append(append([]term.Literal{}, body...), subset...)
	if len(combined) == 0 {
		return false
	}
	var commonPredicate string
	for i, lit := range combined {
		mode := comparisonMode(lit, comparisonPredicates)
		if mode == "" {
			return false
		}
		if i == 0 {
			commonPredicate = mode
		} else if mode != commonPredicate {
			return false
		}
	}
	return true
}

// comparisonMode returns lit's predicate name if lit's mode is flagged as
// a comparison predicate (either directly on the literal or by matching
// one of comparisonPredicates), else "".
func comparisonMode(lit term.Literal, comparisonPredicates []term.ModeDeclaration) string {
	if lit.Mode != nil && lit.Mode.IsComparison {
		return lit.Mode.Predicate
	}
	for _, m := range comparisonPredicates {
		if m.IsComparison && m.Predicate == lit.Predicate {
			return m.Predicate
		}
	}
	return ""
}

// compress removes any candidate for which another candidate in the set
// mutually θ-subsumes it, per §4.3 step 5, keeping the lowest-index
// (earliest generated) representative.
func compress(eng *subsume.Engine, candidates []*term.Clause) []*term.Clause {
	keep := make([]bool, len(candidates))
	for i := range candidates {
		keep[i] = true
	}
	for i := 0; i < len(candidates); i++ {
		if !keep[i] {
			continue
		}
		for j := i + 1; j < len(candidates); j++ {
			if !keep[j] {
				continue
			}
			if eng.MutuallySubsumes(candidates[i], candidates[j]) {
				keep[j] = false
			}
		}
	}
	out := make([]*term.Clause, 0, len(candidates))
	for i, c := range candidates {
		if keep[i] {
			out = append(out, c)
		}
	}
	return out
}

// dropSeen filters out any candidate that is mutually θ-subsumed by some
// member of seen, per §4.3 step 6.
func dropSeen(eng *subsume.Engine, candidates []*term.Clause, seen []*term.Clause) []*term.Clause {
	if len(seen) == 0 {
		return candidates
	}
	out := make([]*term.Clause, 0, len(candidates))
	for _, c := range candidates {
		redundant := false
		for _, s := range seen {
			if eng.MutuallySubsumes(c, s) {
				redundant = true
				break
			}
		}
		if !redundant {
			out = append(out, c)
		}
	}
	return out
}

// supportStillCovering returns the subset of support that r still
// θ-subsumes, per §4.3 step 7 ("c'.support_set = { s in c.support_set :
// c' subsumes s }").
func supportStillCovering(eng *subsume.Engine, r *term.Clause, support []*term.Clause) []*term.Clause {
	var out []*term.Clause
	for _, s := range support {
		if eng.Subsumes(r, s) {
			out = append(out, s)
		}
	}
	return out
}
