// Package support manages a clause's support set (its bottom-rule
// witnesses) and whole-theory compression by mutual θ-subsumption (§4.6).
package support

import (
	"fmt"

	"github.com/cognicore/inductor/pkg/inductor/internalerr"
	"github.com/cognicore/inductor/pkg/inductor/refine"
	"github.com/cognicore/inductor/pkg/inductor/subsume"
	"github.com/cognicore/inductor/pkg/inductor/term"
)

// Set is an ordered collection of bottom-rule witnesses. It is a slice
// type rather than a map because Compress and the "lowest creation
// order" tie-break both need insertion order preserved deterministically.
type Set struct {
	clauses []*term.Clause
}

// NewSet builds an empty support set.
func NewSet() *Set { return &Set{} }

// Add appends c to the set.
func (s *Set) Add(c *term.Clause) { s.clauses = append(s.clauses, c) }

// AddAll appends every clause in cs, in order.
func (s *Set) AddAll(cs []*term.Clause) { s.clauses = append(s.clauses, cs...) }

// Remove deletes the first occurrence of c (by identity) from the set.
func (s *Set) Remove(c *term.Clause) {
	for i, existing := range s.clauses {
		if existing == c {
			s.clauses = append(s.clauses[:i], s.clauses[i+1:]...)
			return
		}
	}
}

// Clauses returns the set's members in insertion order.
func (s *Set) Clauses() []*term.Clause { return s.clauses }

// GetSupportLiteral returns the j-th body literal of the i-th witness,
// both 1-based per §7's get_support_literal(i, j). It returns
// internalerr.ErrNotFound when either index falls outside [1, len].
func (s *Set) GetSupportLiteral(i, j int) (term.Literal, error) {
	if i < 1 || i > len(s.clauses) {
		return term.Literal{}, fmt.Errorf("support: witness index %d: %w", i, internalerr.ErrNotFound)
	}
	witness := s.clauses[i-1]
	if j < 1 || j > len(witness.Body) {
		return term.Literal{}, fmt.Errorf("support: body literal index %d of witness %d: %w", j, i, internalerr.ErrNotFound)
	}
	return witness.Body[j-1], nil
}

// Compress removes any witness p for which some other witness q in the
// same set has p subsumes q, keeping the more specific witness q, per
// §4.6. Mutually-subsuming (equivalent) witnesses keep only the one with
// the lower creation order (earlier slice index), which makes repeated
// calls idempotent.
func (s *Set) Compress(eng *subsume.Engine) {
	s.clauses = compressGeneral(eng, s.clauses)
}

// compressGeneral implements the "drop the more general one" rule shared
// by Compress, parameterized over the slice so it can be unit tested and
// reused without a Set wrapper.
func compressGeneral(eng *subsume.Engine, clauses []*term.Clause) []*term.Clause {
	keep := make([]bool, len(clauses))
	for i := range clauses {
		keep[i] = true
	}
	for i, p := range clauses {
		if !keep[i] {
			continue
		}
		for j, q := range clauses {
			if i == j || !keep[j] {
				continue
			}
			if !eng.Subsumes(p, q) {
				continue
			}
			if eng.Subsumes(q, p) {
				// Equivalent: keep the lower creation order.
				if i < j {
					keep[j] = false
				} else {
					keep[i] = false
				}
				continue
			}
			keep[i] = false
		}
	}
	out := make([]*term.Clause, 0, len(clauses))
	for i, c := range clauses {
		if keep[i] {
			out = append(out, c)
		}
	}
	return out
}

// CompressTheory removes any clause p for which some other clause q
// exists with both p subsumes q and q subsumes p (logical equivalence),
// keeping one representative deterministically: the one with the lower
// creation order (earlier slice index), per §4.6.
func CompressTheory(eng *subsume.Engine, clauses []*term.Clause) []*term.Clause {
	keep := make([]bool, len(clauses))
	for i := range clauses {
		keep[i] = true
	}
	for i := 0; i < len(clauses); i++ {
		if !keep[i] {
			continue
		}
		for j := i + 1; j < len(clauses); j++ {
			if !keep[j] {
				continue
			}
			if eng.MutuallySubsumes(clauses[i], clauses[j]) {
				keep[j] = false
			}
		}
	}
	out := make([]*term.Clause, 0, len(clauses))
	for i, c := range clauses {
		if keep[i] {
			out = append(out, c)
		}
	}
	return out
}

// MergeOrAdmit implements the "merge-on-subsume" rule: if an existing top
// clause t in theory satisfies n subsumes t, t absorbs n's support set,
// regenerates its refinements, and n is discarded; otherwise n is
// admitted as a new top clause. It returns the (possibly extended) top
// clause slice.
func MergeOrAdmit(eng *subsume.Engine, theory []*term.Clause, n *term.Clause, depth int, comparisonPredicates []term.ModeDeclaration) []*term.Clause {
	for _, t := range theory {
		if eng.Subsumes(n, t) {
			t.Support = unionSupport(eng, t.Support, n.Support)
			refine.Generate(eng, t, depth, comparisonPredicates, nil)
			return theory
		}
	}
	return append(theory, n)
}

// unionSupport combines two support sets, dropping identity duplicates,
// then compresses the result.
func unionSupport(eng *subsume.Engine, a, b []*term.Clause) []*term.Clause {
	set := NewSet()
	seen := map[*term.Clause]bool{}
	for _, c := range append(append([]*term.Clause{}, a...), b...) {
		if !seen[c] {
			seen[c] = true
			set.Add(c)
		}
	}
	set.Compress(eng)
	return set.Clauses()
}
