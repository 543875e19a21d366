package term

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
)

// ClauseID is a clause's stable identity, minted once at construction and
// never recomputed from content. Two clauses with identical head/body can
// carry distinct IDs (e.g. a refinement and an independently parsed copy).
type ClauseID string

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newClauseID() ClauseID {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ClauseID(ulid.MustNew(ulid.Now(), entropy).String())
}

// Clause is a Horn rule: a head literal and an ordered body. See the data
// model invariants in §3 of the specification this package implements.
type Clause struct {
	ID   ClauseID
	Head Literal
	Body []Literal

	// Weight is a confidence score with a documented non-zero floor,
	// enforced by callers (pkg/inductor/score), never by this type.
	Weight float64

	TruePositives  uint64
	FalsePositives uint64
	FalseNegatives uint64
	TrueNegatives  uint64
	TotalGroundings uint64
	Seen            uint64

	// Parent is a non-owning back-pointer to the clause this one was
	// refined from, or nil for a top-level clause. Refinements are
	// strictly longer than their parent, so this can never close a cycle.
	Parent *Clause

	// Support holds the bottom-rules this clause was abstracted from.
	Support []*Clause

	// Refinements holds the currently live candidate specializations.
	Refinements []*Clause

	PrevMeanDiff      float64
	PrevMeanDiffCount uint64

	IsTopRule               bool
	IsBottomRule            bool
	EligibleForSpecialization bool
	IsNew                   bool
}

// NewClause builds a top-level clause with a fresh identity and weight 1.0.
func NewClause(head Literal, body []Literal) *Clause {
	return &Clause{
		ID:                      newClauseID(),
		Head:                    head,
		Body:                    append([]Literal{}, body...),
		Weight:                  1.0,
		IsTopRule:               true,
		IsNew:                   true,
		EligibleForSpecialization: true,
	}
}

// EmptyClause is the well-formed sentinel value with no head literal.
func EmptyClause() *Clause {
	return &Clause{ID: newClauseID()}
}

// IsEmpty reports whether c is the empty-clause sentinel.
func (c *Clause) IsEmpty() bool {
	return c.Head.Predicate == "" && len(c.Head.Args) == 0 && len(c.Body) == 0
}

// ClearStatistics is the only legal reset of a clause's running counters,
// per invariant 4 of §3: it resets tps/fps/fns/tns/seen/refinements and the
// Hoeffding running-mean state together, never a subset.
func (c *Clause) ClearStatistics() {
	c.TruePositives = 0
	c.FalsePositives = 0
	c.FalseNegatives = 0
	c.TrueNegatives = 0
	c.TotalGroundings = 0
	c.Seen = 0
	c.Refinements = nil
	c.PrevMeanDiff = 0
	c.PrevMeanDiffCount = 0
}

// Clone deep-copies c, including its support set and refinement list, but
// never its Parent (the copy shares the same parent reference since the
// parent isn't owned by c). It is for callers that must not mutate a
// clause still referenced by the live theory while building candidates.
func (c *Clause) Clone() *Clause {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Body = append([]Literal{}, c.Body...)
	if c.Support != nil {
		clone.Support = make([]*Clause, len(c.Support))
		for i, s := range c.Support {
			clone.Support[i] = s.Clone()
		}
	}
	if c.Refinements != nil {
		clone.Refinements = make([]*Clause, len(c.Refinements))
		for i, r := range c.Refinements {
			rc := r.Clone()
			rc.Parent = &clone
			clone.Refinements[i] = rc
		}
	}
	return &clone
}

// BodyLen returns len(c.Body), the quantity the §4.4 tie-break on a
// shorter body compares.
func (c *Clause) BodyLen() int { return len(c.Body) }

// HasBodyLiteral reports whether lit (by structural equality) already
// appears in c.Body.
func (c *Clause) HasBodyLiteral(lit Literal) bool {
	for _, b := range c.Body {
		if b.Equal(lit) {
			return true
		}
	}
	return false
}

// String renders c as "head :- body1, body2, …." preserving body order.
// The empty clause renders as "[]." and a fact (no body) omits ":-".
func (c *Clause) String() string {
	if c.IsEmpty() {
		return "[]."
	}
	if len(c.Body) == 0 {
		return c.Head.String() + "."
	}
	parts := make([]string, len(c.Body))
	for i, b := range c.Body {
		parts[i] = b.String()
	}
	return c.Head.String() + " :- " + strings.Join(parts, ", ") + "."
}

// Variables returns the distinct Variables of c in left-to-right
// traversal order, head first, then body.
func Variables(c *Clause) []Variable {
	var out []Variable
	seen := map[string]bool{}
	collect := func(lit Literal) {
		for _, a := range lit.Args {
			walk(a, func(t Term) {
				if v, ok := t.(Variable); ok && !seen[v.Name] {
					seen[v.Name] = true
					out = append(out, v)
				}
			})
		}
	}
	collect(c.Head)
	for _, b := range c.Body {
		collect(b)
	}
	return out
}

// Substitute applies mapping homomorphically to every literal of c,
// preserving mode/type metadata, and returns a new Clause. Support set
// and refinements are not carried over (they belong to the pre-image).
func Substitute(c *Clause, mapping map[string]Term) *Clause {
	body := make([]Literal, len(c.Body))
	for i, b := range c.Body {
		body[i] = b.Substitute(mapping)
	}
	return &Clause{
		ID:     c.ID,
		Head:   c.Head.Substitute(mapping),
		Body:   body,
		Weight: c.Weight,
	}
}

// Skolemize assigns a fresh constant ("skolem0", "skolem1", …) to each
// distinct Variable of c, in left-to-right traversal order, and returns
// the fully ground clause along with the Variable-name -> Constant
// mapping used. Constants already present in c pass through unchanged.
func Skolemize(c *Clause) (*Clause, map[string]Term) {
	vars := Variables(c)
	mapping := make(map[string]Term, len(vars))
	for i, v := range vars {
		mapping[v.Name] = Constant{Value: fmt.Sprintf("skolem%d", i)}
	}
	return Substitute(c, mapping), mapping
}
