// Package subsume implements θ-subsumption between clauses (§4.2): c1
// subsumes c2 iff some substitution of c1's variables maps its head onto
// c2's head and its body into a subset of c2's body.
package subsume

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cognicore/inductor/pkg/inductor/term"
)

// MaxSubsumptionVariables caps the number of distinct variables a clause
// may carry before Subsumes gives up and conservatively returns false.
// Worst-case cost is factorial in this number; production rules observed
// by this learner carry at most ~8 variables.
const MaxSubsumptionVariables = 8

// Subsumes reports whether c1 θ-subsumes c2, with no memoization. Tests
// that require determinism across repeated calls should use this rather
// than an Engine with a warm cache.
func Subsumes(c1, c2 *term.Clause) bool {
	return subsumesRaw(c1, c2)
}

// MutuallySubsumes reports whether c1 and c2 are logically equivalent
// under θ-subsumption in both directions.
func MutuallySubsumes(c1, c2 *term.Clause) bool {
	return Subsumes(c1, c2) && Subsumes(c2, c1)
}

// Engine memoizes subsumption results in an LRU cache keyed on the
// canonical string pair of the two clauses. A zero-size Engine performs
// no memoization at all and behaves identically to the package-level
// Subsumes function.
type Engine struct {
	cache *lru.Cache[string, bool]
}

// NewEngine builds an Engine whose cache holds up to size results. size
// <= 0 disables memoization entirely.
func NewEngine(size int) *Engine {
	if size <= 0 {
		return &Engine{}
	}
	c, err := lru.New[string, bool](size)
	if err != nil {
		// Only returns an error for a non-positive size, already excluded.
		return &Engine{}
	}
	return &Engine{cache: c}
}

// Subsumes reports whether c1 θ-subsumes c2, consulting and populating
// the engine's cache when one is configured.
func (e *Engine) Subsumes(c1, c2 *term.Clause) bool {
	if e == nil || e.cache == nil {
		return subsumesRaw(c1, c2)
	}
	key := c1.String() + "\x00" + c2.String()
	if v, ok := e.cache.Get(key); ok {
		return v
	}
	result := subsumesRaw(c1, c2)
	e.cache.Add(key, result)
	return result
}

// MutuallySubsumes reports c1 <=> c2 equivalence, using e's cache for
// each direction.
func (e *Engine) MutuallySubsumes(c1, c2 *term.Clause) bool {
	return e.Subsumes(c1, c2) && e.Subsumes(c2, c1)
}

func subsumesRaw(c1, c2 *term.Clause) bool {
	if c1.Head.Predicate != c2.Head.Predicate {
		return false
	}

	ground2, mapping := term.Skolemize(c2)
	vars := term.Variables(c1)
	if len(vars) > MaxSubsumptionVariables {
		return false
	}
	if len(vars) == 0 {
		return matchesGroundAssignment(c1, nil, nil, ground2)
	}

	pool := constantPool(mapping, ground2)
	if len(pool) == 0 {
		return false
	}
	for len(pool) < len(vars) {
		pool = append(pool, pool...)
	}

	bodySet := make(map[string]struct{}, len(ground2.Body))
	for _, lit := range ground2.Body {
		bodySet[lit.String()] = struct{}{}
	}

	return searchPermutations(c1, vars, pool, bodySet, ground2.Head)
}

// constantPool collects the distinct constants reachable from a ground
// clause, i.e. image(mapping) ∪ constants_of(c2) from §4.2 step 3 — since
// ground2 already contains exactly those constants (the original ones
// plus the skolem constants substituted in), a single walk suffices.
func constantPool(mapping map[string]term.Term, ground *term.Clause) []term.Term {
	seen := map[string]bool{}
	var out []term.Term
	add := func(t term.Term) {
		if c, ok := t.(term.Constant); ok {
			if !seen[c.Value] {
				seen[c.Value] = true
				out = append(out, c)
			}
		}
	}
	var walkLit func(term.Literal)
	var walkTerm func(term.Term)
	walkTerm = func(t term.Term) {
		switch v := t.(type) {
		case term.Constant:
			add(v)
		case term.Compound:
			for _, a := range v.Args {
				walkTerm(a)
			}
		}
	}
	walkLit = func(l term.Literal) {
		for _, a := range l.Args {
			walkTerm(a)
		}
	}
	walkLit(ground.Head)
	for _, b := range ground.Body {
		walkLit(b)
	}
	return out
}

func searchPermutations(c1 *term.Clause, vars []term.Variable, pool []term.Term, bodySet map[string]struct{}, groundHead term.Literal) bool {
	n := len(vars)
	used := make([]bool, len(pool))
	assignment := make([]term.Term, n)

	var rec func(i int) bool
	rec = func(i int) bool {
		if i == n {
			return matchesAssignment(c1, vars, assignment, bodySet, groundHead)
		}
		for idx := range pool {
			if used[idx] {
				continue
			}
			used[idx] = true
			assignment[i] = pool[idx]
			if rec(i + 1) {
				used[idx] = false
				return true
			}
			used[idx] = false
		}
		return false
	}
	return rec(0)
}

func matchesAssignment(c1 *term.Clause, vars []term.Variable, assignment []term.Term, bodySet map[string]struct{}, groundHead term.Literal) bool {
	mapping := make(map[string]term.Term, len(vars))
	for i, v := range vars {
		mapping[v.Name] = assignment[i]
	}
	headSub := c1.Head.Substitute(mapping)
	if headSub.String() != groundHead.String() {
		return false
	}
	for _, lit := range c1.Body {
		litSub := lit.Substitute(mapping)
		if _, ok := bodySet[litSub.String()]; !ok {
			return false
		}
	}
	return true
}

// matchesGroundAssignment handles the degenerate case where c1 already
// carries no variables (e.g. a fully ground fact) — there is exactly one
// "assignment", the empty one.
func matchesGroundAssignment(c1 *term.Clause, vars []term.Variable, assignment []term.Term, ground2 *term.Clause) bool {
	bodySet := make(map[string]struct{}, len(ground2.Body))
	for _, lit := range ground2.Body {
		bodySet[lit.String()] = struct{}{}
	}
	return matchesAssignment(c1, vars, assignment, bodySet, ground2.Head)
}
