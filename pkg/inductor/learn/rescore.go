package learn

import (
	"context"
	"fmt"

	"github.com/cognicore/inductor/pkg/inductor/exampleio"
	"github.com/cognicore/inductor/pkg/inductor/score"
	"github.com/cognicore/inductor/pkg/inductor/term"
)

// RescoreResult is the outcome of the §4.5 termination protocol: the
// final, pruned theory, the statistics accumulated while rescoring the
// training stream, and — when a distinct test stream was supplied —
// the statistics from evaluating that frozen theory against it.
type RescoreResult struct {
	Theory        *term.Theory
	TrainingStats GlobalStats
	TestStats     *GlobalStats
}

// Rescore implements §4.5's termination protocol: clear per-rule
// statistics, replay the training stream once more against the current
// theory (scoring only — no structural mutation), then prune to rules
// whose precision meets prune_threshold. If test is non-nil it is
// evaluated against the pruned theory without further mutating the
// theory's structure.
func (l *Learner) Rescore(ctx context.Context, training exampleio.Source, test exampleio.Source) (*RescoreResult, error) {
	for _, c := range l.theory.AllIncludingRefinements() {
		c.ClearStatistics()
	}

	var trainStats GlobalStats
	for {
		e, ok, err := training.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("learn: rescore training stream: %w", err)
		}
		if !ok {
			break
		}
		tp, fp, fn, totalGroundings, err := l.scoreAgainstTheory(ctx, e, false)
		if err != nil {
			return nil, fmt.Errorf("learn: rescore example %s: %w", e.ID, err)
		}
		trainStats.TruePositives += tp
		trainStats.FalsePositives += fp
		trainStats.FalseNegatives += fn
		trainStats.TotalGroundings += totalGroundings
		trainStats.ExamplesSeen++
	}

	l.theory.SetInitiation(pruneByPrecision(l.theory.Initiation, l.cfg.PruneThreshold))
	l.theory.SetTermination(pruneByPrecision(l.theory.Termination, l.cfg.PruneThreshold))

	result := &RescoreResult{Theory: l.theory, TrainingStats: trainStats}

	if test == nil {
		return result, nil
	}

	for _, c := range l.theory.AllIncludingRefinements() {
		c.ClearStatistics()
	}

	var testStats GlobalStats
	for {
		e, ok, err := test.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("learn: evaluate test stream: %w", err)
		}
		if !ok {
			break
		}
		tp, fp, fn, totalGroundings, err := l.scoreAgainstTheory(ctx, e, false)
		if err != nil {
			return nil, fmt.Errorf("learn: evaluate test example %s: %w", e.ID, err)
		}
		testStats.TruePositives += tp
		testStats.FalsePositives += fp
		testStats.FalseNegatives += fn
		testStats.TotalGroundings += totalGroundings
		testStats.ExamplesSeen++
	}
	result.TestStats = &testStats

	return result, nil
}

// pruneByPrecision keeps clauses whose precision is at least threshold,
// per §4.5's rescore-time keep rule.
func pruneByPrecision(clauses []*term.Clause, threshold float64) []*term.Clause {
	out := make([]*term.Clause, 0, len(clauses))
	for _, c := range clauses {
		if score.Precision(c) >= threshold {
			out = append(out, c)
		}
	}
	return out
}
