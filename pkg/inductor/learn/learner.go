// Package learn implements the online per-example learning loop of §4.5:
// candidate selection, ASP inference, per-rule scoring, mistake-driven
// structural updates via bottom-up abduction and merge-on-subsume
// admission, and Hoeffding-driven rule expansion.
package learn

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dustin/go-humanize"

	"github.com/cognicore/inductor/pkg/inductor/asp"
	"github.com/cognicore/inductor/pkg/inductor/internalerr"
	"github.com/cognicore/inductor/pkg/inductor/refine"
	"github.com/cognicore/inductor/pkg/inductor/score"
	"github.com/cognicore/inductor/pkg/inductor/structlearn"
	"github.com/cognicore/inductor/pkg/inductor/subsume"
	"github.com/cognicore/inductor/pkg/inductor/support"
	"github.com/cognicore/inductor/pkg/inductor/term"
)

// GlobalStats is the online loop's cumulative bookkeeping (§4.5 "Global
// statistics").
type GlobalStats struct {
	TruePositives   uint64
	FalsePositives  uint64
	FalseNegatives  uint64
	TotalGroundings uint64
	ExamplesSeen    uint64
}

// Learner holds the online loop's state: the live theory, the collaborator
// set it delegates to, and the inertia atoms carried (or not) between
// examples. A Learner is not safe for concurrent use by multiple
// goroutines.
type Learner struct {
	cfg    Config
	theory *term.Theory
	engine *subsume.Engine

	solver        asp.Solver
	structLearner structlearn.Learner
	scorer        score.Scorer
	expander      score.Expander

	logger *log.Logger

	inertia []term.Literal
	stats   GlobalStats
}

// NewLearner builds a Learner with an empty theory tagged runID for log
// correlation.
func NewLearner(cfg Config, runID string, solver asp.Solver, structLearner structlearn.Learner, scorer score.Scorer, logger *log.Logger) *Learner {
	return &Learner{
		cfg:           cfg,
		theory:        term.NewTheory(runID),
		engine:        subsume.NewEngine(cfg.SubsumptionCacheSize),
		solver:        solver,
		structLearner: structLearner,
		scorer:        scorer,
		expander: score.Expander{
			Mode:     cfg.ScoreMode,
			Delta:    cfg.HoeffdingDelta,
			Strategy: cfg.Strategy,
		},
		logger: logger,
	}
}

// Theory exposes the learner's live theory, e.g. for periodic snapshots.
func (l *Learner) Theory() *term.Theory { return l.theory }

// Stats returns a copy of the learner's cumulative global statistics.
func (l *Learner) Stats() GlobalStats { return l.stats }

// Observe runs the §4.5 per-example protocol for one example, mutating
// the theory and the global statistics.
func (l *Learner) Observe(ctx context.Context, e term.Example) error {
	tp, fp, fn, totalGroundings, err := l.scoreAgainstTheory(ctx, e, true)
	if err != nil {
		if isSolverFailure(err) {
			if l.logger != nil {
				l.logger.Printf("observe %s: solver failed, skipping structural update: %v", e.ID, err)
			}
			return nil
		}
		return err
	}

	l.stats.TruePositives += tp
	l.stats.FalsePositives += fp
	l.stats.FalseNegatives += fn
	l.stats.TotalGroundings += totalGroundings
	l.stats.ExamplesSeen++

	if l.logger != nil {
		l.logger.Printf(
			"observe %s: tp=%s fp=%s fn=%s groundings=%s rules=%s",
			e.ID,
			humanize.Comma(int64(l.stats.TruePositives)),
			humanize.Comma(int64(l.stats.FalsePositives)),
			humanize.Comma(int64(l.stats.FalseNegatives)),
			humanize.Comma(int64(l.stats.TotalGroundings)),
			humanize.Comma(int64(len(l.theory.All()))),
		)
	}
	return nil
}

// scoreAgainstTheory implements §4.5 steps 1–7 (when mutateStructure is
// true) or just steps 1–3 (when false, for the rescore/evaluate pass).
func (l *Learner) scoreAgainstTheory(ctx context.Context, e term.Example, mutateStructure bool) (tp, fp, fn, totalGroundings uint64, err error) {
	// Step 1: candidate selection.
	candidates := l.candidateRules()

	// Step 2: inference.
	inferredState, residualInertia, err := l.runInference(ctx, candidates, e)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("%w: %v", internalerr.ErrSolverFailed, err)
	}

	// Step 3: scoring over the full theory including refinements.
	full := l.theory.AllIncludingRefinements()
	scorerCfg := score.ScorerConfig{WeightFloor: l.cfg.WeightFloor, WithInertia: l.cfg.WithInertia}
	tp, fp, fn, totalGroundings, newInertia, err := l.scorer.ScoreAndUpdateWeights(e, inferredState, full, scorerCfg, l.logger)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if len(candidates) == 0 {
		// §4.5 step 2: no rules were selected to drive inference, so
		// nothing predicted any query atom — every one of them is a miss,
		// regardless of what sub-threshold clauses in the full theory
		// individually scored.
		tp, fp, fn = 0, 0, uint64(len(e.QueryAtoms))
	}
	l.applyInertia(residualInertia, newInertia)

	if !mutateStructure {
		return tp, fp, fn, totalGroundings, nil
	}

	// Step 4: mistake-driven structural update.
	if fp+fn > 0 {
		if err := l.structuralUpdate(candidates, e, inferredState, scorerCfg); err != nil {
			return tp, fp, fn, totalGroundings, err
		}
	}

	// Step 6: rule expansion.
	l.expandRules()

	return tp, fp, fn, totalGroundings, nil
}

// candidateRules implements §4.5 step 1: non-empty-body top clauses
// scoring at least prune_threshold precision.
func (l *Learner) candidateRules() []*term.Clause {
	var out []*term.Clause
	for _, c := range l.theory.All() {
		if len(c.Body) == 0 {
			continue
		}
		if score.Precision(c) < l.cfg.PruneThreshold {
			continue
		}
		out = append(out, c)
	}
	return out
}

// runInference implements §4.5 step 2.
func (l *Learner) runInference(ctx context.Context, candidates []*term.Clause, e term.Example) (map[string]bool, []term.Literal, error) {
	if len(candidates) == 0 {
		return map[string]bool{}, nil, nil
	}
	augmented := e
	if l.cfg.WithInertia && len(l.inertia) > 0 {
		augmented.Facts = append(append([]term.Literal{}, e.Facts...), l.inertia...)
	}
	return l.solver.CrispLogicInference(ctx, candidates, augmented, l.cfg.AxiomModule)
}

// structuralUpdate implements §4.5 step 4: conservative abduction,
// predicate-partitioned merge-on-subsume admission, and step 5's
// re-scoring of the rules this added.
func (l *Learner) structuralUpdate(candidates []*term.Clause, e term.Example, inferredState map[string]bool, scorerCfg score.ScorerConfig) error {
	opts := structlearn.Options{
		SpecializationDepth:  l.cfg.SpecializationDepth,
		ComparisonPredicates: l.cfg.ComparisonPredicates,
	}
	newRules, err := l.structLearner.GenerateNewRules(candidates, e, opts)
	if err != nil {
		return fmt.Errorf("learn: generate new rules: %w", err)
	}
	if len(newRules) == 0 {
		return nil
	}

	var added []*term.Clause
	for _, n := range newRules {
		refine.Generate(l.engine, n, l.cfg.SpecializationDepth, l.cfg.ComparisonPredicates, nil)
		before := l.subTheoryFor(n)
		after := support.MergeOrAdmit(l.engine, before, n, l.cfg.SpecializationDepth, l.cfg.ComparisonPredicates)
		l.setSubTheoryFor(n, after)
		if len(after) > len(before) {
			added = append(added, n)
		}
	}

	if len(added) == 0 {
		return nil
	}

	// Step 5: score newly added rules on the same example.
	full := make([]*term.Clause, 0, len(added))
	for _, c := range added {
		full = append(full, c)
		full = append(full, c.Refinements...)
	}
	if _, _, _, _, _, err := l.scorer.ScoreAndUpdateWeights(e, inferredState, full, scorerCfg, l.logger); err != nil {
		return fmt.Errorf("learn: score new rules: %w", err)
	}
	return nil
}

func (l *Learner) subTheoryFor(c *term.Clause) []*term.Clause {
	if c.Head.Predicate == "terminatedAt" {
		return l.theory.Termination
	}
	return l.theory.Initiation
}

func (l *Learner) setSubTheoryFor(c *term.Clause, clauses []*term.Clause) {
	if c.Head.Predicate == "terminatedAt" {
		l.theory.SetTermination(clauses)
	} else {
		l.theory.SetInitiation(clauses)
	}
}

// expandRules implements §4.5 step 6 over both sub-theories.
func (l *Learner) expandRules() {
	newInit, _ := l.expander.ExpandRules(l.theory.Initiation, l.logger)
	l.theory.SetInitiation(newInit)
	newTerm, _ := l.expander.ExpandRules(l.theory.Termination, l.logger)
	l.theory.SetTermination(newTerm)
}

// applyInertia implements the §9 resolution: InertiaDiffuse records and
// immediately clears residual inertia, so it is computed but never
// actually consulted by the next example; InertiaCarryForward genuinely
// persists it.
func (l *Learner) applyInertia(solverInertia, scorerInertia []term.Literal) {
	if !l.cfg.WithInertia {
		l.inertia = nil
		return
	}
	combined := append(append([]term.Literal{}, solverInertia...), scorerInertia...)
	if l.cfg.InertiaMode == InertiaCarryForward {
		l.inertia = combined
		return
	}
	l.inertia = nil
}

func isSolverFailure(err error) bool {
	return errors.Is(err, internalerr.ErrSolverFailed)
}
