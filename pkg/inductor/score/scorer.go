package score

import (
	"log"

	"github.com/cognicore/inductor/pkg/inductor/subsume"
	"github.com/cognicore/inductor/pkg/inductor/term"
)

// Scorer implements the §6 "per-rule scorer" collaborator contract:
// score_and_update_weights. It mutates each rule's counters and weight
// as a side effect and reports the aggregate counts the online loop adds
// to its global statistics.
type Scorer interface {
	ScoreAndUpdateWeights(example term.Example, inferredState map[string]bool, rules []*term.Clause, cfg ScorerConfig, logger *log.Logger) (tp, fp, fn, totalGroundings uint64, newInertia []term.Literal, err error)
}

// ScorerConfig carries the subset of learner configuration the default
// scorer needs, threaded explicitly per §9's "no hidden module state"
// redesign flag.
type ScorerConfig struct {
	WeightFloor float64
	WithInertia bool
}

// GroundingScorer is the default Scorer. It is a direct, faithful-but-
// modest implementation of grounding-based counting: it is not itself
// an ASP solver, so it enumerates candidate groundings of each rule
// using the constants present in the example rather than a full
// stable-model search. Weight is adjusted by a simple multiplicative
// rule (not gradient descent, per the §1 non-goal), clamped at the
// configured floor.
type GroundingScorer struct {
	// MaxGroundingsPerRule bounds the enumeration so a rule with many
	// variables cannot blow up a single example's scoring pass.
	MaxGroundingsPerRule int
}

// NewGroundingScorer builds a GroundingScorer with a sane default cap.
func NewGroundingScorer() *GroundingScorer {
	return &GroundingScorer{MaxGroundingsPerRule: 4096}
}

func (s *GroundingScorer) ScoreAndUpdateWeights(example term.Example, inferredState map[string]bool, rules []*term.Clause, cfg ScorerConfig, logger *log.Logger) (uint64, uint64, uint64, uint64, []term.Literal, error) {
	facts := factIndex(example.Facts)
	queryTrue := queryIndex(example.QueryAtoms)

	var totalTP, totalFP, totalFN, totalGroundings uint64
	var inertia []term.Literal

	for _, rule := range rules {
		vars := term.Variables(rule)
		if len(vars) > subsume.MaxSubsumptionVariables {
			if logger != nil {
				logger.Printf("score: skipping %s, %d variables exceeds cap", rule.ID, len(vars))
			}
			continue
		}
		pool := constantsIn(example.Facts, example.QueryAtoms)
		tp, fp, fn, tn, groundings, ruleInertia := scoreRule(rule, vars, pool, facts, queryTrue, inferredState, s.boundedCap())

		rule.TruePositives += tp
		rule.FalsePositives += fp
		rule.FalseNegatives += fn
		rule.TrueNegatives += tn
		rule.TotalGroundings += groundings
		rule.Seen++
		rule.Weight = adjustWeight(rule.Weight, tp, fp, cfg.WeightFloor)

		totalTP += tp
		totalFP += fp
		totalFN += fn
		totalGroundings += groundings

		if cfg.WithInertia {
			inertia = append(inertia, ruleInertia...)
		}
	}

	return totalTP, totalFP, totalFN, totalGroundings, inertia, nil
}

func (s *GroundingScorer) boundedCap() int {
	if s.MaxGroundingsPerRule <= 0 {
		return 4096
	}
	return s.MaxGroundingsPerRule
}

func factIndex(facts []term.Literal) map[string]bool {
	idx := make(map[string]bool, len(facts))
	for _, f := range facts {
		idx[f.String()] = true
	}
	return idx
}

func queryIndex(query []term.Literal) map[string]bool {
	idx := make(map[string]bool, len(query))
	for _, q := range query {
		idx[q.String()] = true
	}
	return idx
}

// constantsIn collects the distinct constants appearing anywhere in
// facts and query, used as the grounding pool for a rule's variables.
func constantsIn(facts, query []term.Literal) []term.Term {
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
	for _, lit := range facts {
		for _, a := range lit.Args {
			walkTerm(a)
		}
	}
	for _, lit := range query {
		for _, a := range lit.Args {
			walkTerm(a)
		}
	}
	return out
}

// scoreRule enumerates groundings of rule's variables over pool (up to
// cap groundings), classifying each as tp/fp/fn/tn by comparing whether
// the rule's body holds (per facts and inferredState) against whether
// the grounded head atom is labeled true (by the query atoms or the
// inferred state).
func scoreRule(rule *term.Clause, vars []term.Variable, pool []term.Term, facts, queryTrue, inferredState map[string]bool, maxGroundings int) (tp, fp, fn, tn uint64, groundings uint64, inertia []term.Literal) {
	if len(vars) == 0 {
		covered, labelTrue, inertiaAtom := evalGrounding(rule, map[string]term.Term{}, facts, queryTrue, inferredState)
		switch {
		case covered && labelTrue:
			tp = 1
		case covered && !labelTrue:
			fp = 1
		case !covered && labelTrue:
			fn = 1
		default:
			tn = 1
		}
		if inertiaAtom.Predicate != "" {
			inertia = append(inertia, inertiaAtom)
		}
		return tp, fp, fn, tn, 1, inertia
	}
	if len(pool) == 0 {
		return 0, 0, 0, 0, 0, nil
	}

	count := 0
	var rec func(i int, assignment map[string]term.Term) bool
	rec = func(i int, assignment map[string]term.Term) bool {
		if count >= maxGroundings {
			return true // stop
		}
		if i == len(vars) {
			count++
			groundings++
			covered, labelTrue, inertiaAtom := evalGrounding(rule, assignment, facts, queryTrue, inferredState)
			switch {
			case covered && labelTrue:
				tp++
			case covered && !labelTrue:
				fp++
			case !covered && labelTrue:
				fn++
			default:
				tn++
			}
			if inertiaAtom.Predicate != "" {
				inertia = append(inertia, inertiaAtom)
			}
			return false
		}
		for _, c := range pool {
			assignment[vars[i].Name] = c
			if rec(i+1, assignment) {
				return true
			}
		}
		delete(assignment, vars[i].Name)
		return false
	}
	rec(0, map[string]term.Term{})
	return tp, fp, fn, tn, groundings, inertia
}

// evalGrounding substitutes assignment into rule and reports whether the
// body holds, whether the grounded head is labeled true, and (when the
// head predicate is "holdsAt") the grounded head literal as a residual
// inertia candidate.
func evalGrounding(rule *term.Clause, assignment map[string]term.Term, facts, queryTrue, inferredState map[string]bool) (covered, labelTrue bool, inertiaAtom term.Literal) {
	head := rule.Head.Substitute(assignment)
	covered = true
	for _, b := range rule.Body {
		bGround := b.Substitute(assignment)
		holds := atomHolds(bGround, facts, inferredState)
		if bGround.Negated {
			holds = !holds
		}
		if !holds {
			covered = false
			break
		}
	}
	key := head.String()
	labelTrue = queryTrue[key] || inferredState[key]
	if covered && head.Predicate == "holdsAt" {
		inertiaAtom = head
	}
	return covered, labelTrue, inertiaAtom
}

// atomHolds checks a (non-negated) ground atom's truth against the
// example's facts and the ASP solver's inferred state, facts taking
// precedence as the ground truth for the world at this time point.
func atomHolds(lit term.Literal, facts, inferredState map[string]bool) bool {
	plain := lit
	plain.Negated = false
	key := plain.String()
	if facts[key] {
		return true
	}
	return inferredState[key]
}

// adjustWeight applies a simple multiplicative delegated weight update:
// false positives decay the weight, true positives reinforce it, always
// clamped at floor. This stands in for the gradient-descent weight
// learner the source delegates out of scope (§1 non-goals).
func adjustWeight(weight float64, tp, fp uint64, floor float64) float64 {
	switch {
	case fp > tp:
		weight *= 0.9
	case tp > 0:
		weight *= 1.02
	}
	if floor <= 0 {
		floor = 1e-5
	}
	if weight < floor {
		weight = floor
	}
	return weight
}
