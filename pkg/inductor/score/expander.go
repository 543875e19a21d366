package score

import (
	"log"

	"github.com/cognicore/inductor/pkg/inductor/term"
)

// Strategy is the closed §6 `rule_learning_strategy` enum.
type Strategy int

const (
	StrategyHoeffding Strategy = iota
	StrategyOther
)

// ParseStrategy maps a CLI/config string to a Strategy.
func ParseStrategy(s string) (Strategy, bool) {
	switch s {
	case "", "hoeffding":
		return StrategyHoeffding, true
	case "other":
		return StrategyOther, true
	default:
		return StrategyHoeffding, false
	}
}

// Expander applies the Hoeffding test of §4.4 to each eligible top
// clause, implementing the §6 "rule expander" collaborator contract.
type Expander struct {
	Mode     Mode
	Delta    float64
	Strategy Strategy
}

// ExpandRules walks topClauses and, for each eligible one whose
// Specialize running mean clears the Hoeffding bound, replaces it with
// its best refinement (clearing the replacement's statistics so it gets
// a clean history). It returns the (possibly updated) top-clause slice
// and the set of clause IDs that were replaced this call.
//
// StrategyOther is accepted but performs no replacement — the source
// names it without specifying its criterion; until one is specified,
// this is a recognized no-op rather than a silent alias for hoeffding.
func (e Expander) ExpandRules(topClauses []*term.Clause, logger *log.Logger) ([]*term.Clause, map[term.ClauseID]bool) {
	replaced := make(map[term.ClauseID]bool)
	if e.Strategy != StrategyHoeffding {
		return topClauses, replaced
	}

	out := make([]*term.Clause, len(topClauses))
	copy(out, topClauses)

	for i, c := range out {
		if !c.EligibleForSpecialization || len(c.Refinements) == 0 {
			continue
		}
		mean, best, _ := Specialize(c, e.Mode)
		if best == c {
			continue
		}
		if !HoeffdingTest(mean, e.Delta, c.Seen) {
			continue
		}
		best.ClearStatistics()
		best.IsTopRule = true
		best.IsNew = false
		out[i] = best
		replaced[c.ID] = true
		if logger != nil {
			logger.Printf("expand: replaced %s with refinement %s (mean_diff=%.4f)", c.ID, best.ID, mean)
		}
	}
	return out, replaced
}
