// Package config loads the learner's YAML configuration surface,
// matching korel/pkg/korel/config's pattern of one Load function per
// config shape.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/inductor/pkg/inductor/score"
	"github.com/cognicore/inductor/pkg/inductor/term"
)

// Learner is the on-disk shape of the learner's tunable parameters
// (spec §8). Field names mirror the snake_case keys a hand-written YAML
// file would use.
type Learner struct {
	SpecializationDepth  int      `yaml:"specialization_depth"`
	PruneThreshold       float64  `yaml:"prune_threshold"`
	ScoringFun           string   `yaml:"scoring_fun"`
	ComparisonPredicates []string `yaml:"comparison_predicates"`
	WeightFloor          float64  `yaml:"weight_floor"`
	HoeffdingDelta       float64  `yaml:"hoeffding_delta"`
	RuleLearningStrategy string   `yaml:"rule_learning_strategy"`
	WithInertia          bool     `yaml:"with_inertia"`
	InertiaMode          string   `yaml:"inertia_mode"`
}

// LoadLearner reads and parses a learner configuration file.
func LoadLearner(path string) (*Learner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	l := DefaultLearner()
	if err := yaml.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return l, nil
}

// DefaultLearner returns the spec's documented defaults (§8):
// specialization_depth=1, weight_floor=1e-5, inertia diffusing by
// default per the resolved Open Question (§9).
func DefaultLearner() *Learner {
	return &Learner{
		SpecializationDepth:  1,
		PruneThreshold:       0.0,
		ScoringFun:           "default",
		WeightFloor:          1e-5,
		HoeffdingDelta:       0.05,
		RuleLearningStrategy: "hoeffding",
		WithInertia:          false,
		InertiaMode:          "diffuse",
	}
}

// ModeDeclarations parses a []string of "predicate(+,-,#)"-style mode
// atoms into term.ModeDeclaration values with IsComparison set, for use
// as the learner's comparison-predicate set.
func ModeDeclarations(raw []string) ([]term.ModeDeclaration, error) {
	out := make([]term.ModeDeclaration, 0, len(raw))
	for _, text := range raw {
		m, err := parseModeAtom(text)
		if err != nil {
			return nil, fmt.Errorf("config: parse comparison predicate %q: %w", text, err)
		}
		m.IsComparison = true
		out = append(out, m)
	}
	return out, nil
}

// parseModeAtom reads the small "predicate(+,-,#,_)" mode-declaration
// grammar used by YAML config — distinct from, and much smaller than,
// the full clause grammar in pkg/inductor/parser.
func parseModeAtom(text string) (term.ModeDeclaration, error) {
	text = strings.TrimSpace(text)
	open := strings.IndexByte(text, '(')
	if open < 0 || !strings.HasSuffix(text, ")") {
		return term.ModeDeclaration{Predicate: text}, nil
	}
	predicate := text[:open]
	inside := text[open+1 : len(text)-1]
	if predicate == "" {
		return term.ModeDeclaration{}, fmt.Errorf("missing predicate name")
	}

	var modes []term.ArgMode
	for _, part := range strings.Split(inside, ",") {
		part = strings.TrimSpace(part)
		switch part {
		case "+":
			modes = append(modes, term.ModeInput)
		case "-":
			modes = append(modes, term.ModeOutput)
		case "#":
			modes = append(modes, term.ModeConstant)
		case "_", "":
			modes = append(modes, term.ModeDontCare)
		default:
			return term.ModeDeclaration{}, fmt.Errorf("unknown argument mode %q", part)
		}
	}
	return term.ModeDeclaration{Predicate: predicate, ArgModes: modes}, nil
}

// ScoreMode resolves the configured scoring_fun string into score.Mode,
// defaulting to score.ModeDefault when unset or unrecognized.
func (l *Learner) ScoreMode() score.Mode {
	if l.ScoringFun == "" {
		return score.ModeDefault
	}
	m, _ := score.ParseMode(l.ScoringFun)
	return m
}

// Strategy resolves the configured rule_learning_strategy string into
// score.Strategy, defaulting to score.StrategyHoeffding when unset or
// unrecognized.
func (l *Learner) Strategy() score.Strategy {
	if l.RuleLearningStrategy == "" {
		return score.StrategyHoeffding
	}
	s, _ := score.ParseStrategy(l.RuleLearningStrategy)
	return s
}
