package learn

import (
	"github.com/cognicore/inductor/pkg/inductor/score"
	"github.com/cognicore/inductor/pkg/inductor/term"
)

// InertiaMode is the closed enum resolving the inertia-atom Open
// Question (§9): whether residual inertia atoms the scorer reports are
// genuinely carried into the next example's facts, or computed and
// discarded within the same call.
type InertiaMode int

const (
	// InertiaDiffuse matches the source's literal behavior: residual
	// inertia atoms are recorded and then cleared before the next
	// example is drawn, so they are never actually consulted. This is
	// the documented default — a configuration flag, not a silent
	// behavior choice, per §9.
	InertiaDiffuse InertiaMode = iota
	// InertiaCarryForward genuinely persists residual inertia atoms into
	// the next example's fact set.
	InertiaCarryForward
)

func (m InertiaMode) String() string {
	if m == InertiaCarryForward {
		return "carry_forward"
	}
	return "diffuse"
}

// ParseInertiaMode maps a CLI/config string to an InertiaMode, defaulting
// to InertiaDiffuse for an empty or unrecognized string.
func ParseInertiaMode(s string) InertiaMode {
	if s == "carry_forward" {
		return InertiaCarryForward
	}
	return InertiaDiffuse
}

// Config carries every tunable named in §6's CLI surface, threaded
// explicitly into the learner rather than read from hidden module state
// (§9's "no hidden module state" redesign flag).
type Config struct {
	SpecializationDepth  int
	PruneThreshold       float64
	ScoreMode            score.Mode
	ComparisonPredicates []term.ModeDeclaration
	WeightFloor          float64
	HoeffdingDelta       float64
	Strategy             score.Strategy
	WithInertia          bool
	InertiaMode          InertiaMode

	// AxiomModule names the event-calculus axiom set passed through to
	// the ASP solver (§6).
	AxiomModule string

	// SubsumptionCacheSize sizes the memoizing subsume.Engine. 0 disables
	// memoization.
	SubsumptionCacheSize int
}

// DefaultConfig mirrors config.DefaultLearner's defaults for callers that
// build a Config directly rather than through YAML.
func DefaultConfig() Config {
	return Config{
		SpecializationDepth: 1,
		PruneThreshold:      0,
		ScoreMode:           score.ModeDefault,
		WeightFloor:         1e-5,
		HoeffdingDelta:      0.05,
		Strategy:            score.StrategyHoeffding,
		WithInertia:         false,
		InertiaMode:         InertiaDiffuse,
		AxiomModule:         "event_calculus",
	}
}
