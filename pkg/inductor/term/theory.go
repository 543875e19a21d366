package term

// Theory is a set of top clauses partitioned by head predicate, per §3.
// The Theory owns its top clauses; a top clause owns its support set and
// refinements.
type Theory struct {
	RunID string

	Initiation  []*Clause
	Termination []*Clause
}

// NewTheory builds an empty theory tagged with runID for log correlation.
func NewTheory(runID string) *Theory {
	return &Theory{RunID: runID}
}

// Add admits c as a top clause, routing it to the Initiation or
// Termination sub-theory by its head predicate.
func (t *Theory) Add(c *Clause) {
	if c.Head.Predicate == "terminatedAt" {
		t.Termination = append(t.Termination, c)
	} else {
		t.Initiation = append(t.Initiation, c)
	}
}

// All returns every top clause across both sub-theories.
func (t *Theory) All() []*Clause {
	out := make([]*Clause, 0, len(t.Initiation)+len(t.Termination))
	out = append(out, t.Initiation...)
	out = append(out, t.Termination...)
	return out
}

// AllIncludingRefinements returns every top clause together with every
// refinement reachable from it, used by the per-example scoring step
// which updates counters on "the full theory including refinements".
func (t *Theory) AllIncludingRefinements() []*Clause {
	var out []*Clause
	var walkRefinements func(c *Clause)
	walkRefinements = func(c *Clause) {
		out = append(out, c)
		for _, r := range c.Refinements {
			walkRefinements(r)
		}
	}
	for _, c := range t.All() {
		walkRefinements(c)
	}
	return out
}

// Replace swaps old for new in whichever sub-theory currently holds old.
// It is a no-op if old is not present.
func (t *Theory) Replace(old, new *Clause) {
	replaceIn := func(clauses []*Clause) []*Clause {
		for i, c := range clauses {
			if c == old {
				clauses[i] = new
				return clauses
			}
		}
		return clauses
	}
	t.Initiation = replaceIn(t.Initiation)
	t.Termination = replaceIn(t.Termination)
}

// SetInitiation replaces the Initiation sub-theory wholesale, used after
// rule admission, rule expansion and rescoring.
func (t *Theory) SetInitiation(clauses []*Clause) { t.Initiation = clauses }

// SetTermination replaces the Termination sub-theory wholesale.
func (t *Theory) SetTermination(clauses []*Clause) { t.Termination = clauses }

// String renders every top clause, initiation rules first, one per line.
func (t *Theory) String() string {
	var out string
	for _, c := range t.All() {
		out += c.String() + "\n"
	}
	return out
}

// Example carries a world-state snapshot and the query atoms a theory
// must entail for it, per §1.
type Example struct {
	ID         string
	Facts      []Literal
	QueryAtoms []Literal
}
