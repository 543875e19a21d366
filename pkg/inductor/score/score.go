// Package score implements per-rule scoring and the Hoeffding-bound
// specialization decision (§4.4): closed-form precision/recall/F-score
// and FOIL-gain scores, the per-example best-vs-second-refinement
// comparison and its running mean of score differences, and the
// Hoeffding test an online loop uses to decide when to swap a clause for
// its best refinement.
package score

import (
	"math"

	"github.com/cognicore/inductor/pkg/inductor/term"
)

// Mode is the closed scoring-function enum named in §6's CLI surface,
// replacing the source's string-keyed dispatch per the §9 redesign flag.
type Mode int

const (
	ModeDefault Mode = iota
	ModeFOILGain
	ModeFScore
)

func (m Mode) String() string {
	switch m {
	case ModeFOILGain:
		return "foilgain"
	case ModeFScore:
		return "fscore"
	default:
		return "default"
	}
}

// ParseMode maps a CLI/config string to a Mode, defaulting to ModeDefault
// for an empty string and returning ok=false for anything unrecognized.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "default":
		return ModeDefault, true
	case "foilgain":
		return ModeFOILGain, true
	case "fscore":
		return ModeFScore, true
	default:
		return ModeDefault, false
	}
}

// Precision returns tps/(tps+fps), or 0 if the denominator is zero —
// statistical computations with undefined denominators return 0, never
// NaN, per §7.
func Precision(c *term.Clause) float64 {
	denom := c.TruePositives + c.FalsePositives
	if denom == 0 {
		return 0
	}
	return float64(c.TruePositives) / float64(denom)
}

// Recall returns tps/(tps+fns), or 0 if the denominator is zero.
func Recall(c *term.Clause) float64 {
	denom := c.TruePositives + c.FalseNegatives
	if denom == 0 {
		return 0
	}
	return float64(c.TruePositives) / float64(denom)
}

// FScore returns the harmonic mean of Precision and Recall, or 0 if both
// are zero.
func FScore(c *term.Clause) float64 {
	p, r := Precision(c), Recall(c)
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// FOILGain scores c against c.Parent per §4.4's "foilgain" formula. It
// returns 0 whenever c has no parent, self coverage is 0, or parent
// coverage is 0 or 1 (the formula is undefined/degenerate there).
func FOILGain(c *term.Clause) float64 {
	if c.Parent == nil {
		return 0
	}
	selfCoverage := Precision(c)
	if selfCoverage == 0 {
		return 0
	}
	parentCoverage := Precision(c.Parent)
	if parentCoverage == 1.0 || parentCoverage == 0 {
		return 0
	}
	raw := float64(c.TruePositives) * (math.Log(selfCoverage) - math.Log(parentCoverage))
	if raw < 0 {
		raw = 0
	}
	max := float64(c.Parent.TruePositives) * (-math.Log(parentCoverage))
	if max == 0 {
		return 0
	}
	return raw / max
}

// Score dispatches to the scoring function named by m.
func Score(c *term.Clause, m Mode) float64 {
	switch m {
	case ModeFOILGain:
		return FOILGain(c)
	case ModeFScore:
		return FScore(c)
	default:
		return Precision(c)
	}
}
