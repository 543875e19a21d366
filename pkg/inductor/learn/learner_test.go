package learn

import (
	"context"
	"errors"
	"log"
	"testing"

	"github.com/cognicore/inductor/pkg/inductor/internalerr"
	"github.com/cognicore/inductor/pkg/inductor/score"
	"github.com/cognicore/inductor/pkg/inductor/structlearn"
	"github.com/cognicore/inductor/pkg/inductor/term"
)

// fakeSolver is a hand-rolled asp.Solver test double: it looks up each
// rule's head among a fixed truth table rather than actually resolving a
// program.
type fakeSolver struct {
	truths map[string]bool
	err    error
}

func (f *fakeSolver) CrispLogicInference(ctx context.Context, rules []*term.Clause, example term.Example, axiomModule string) (map[string]bool, []term.Literal, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	out := make(map[string]bool)
	for _, r := range rules {
		if v, ok := f.truths[r.Head.String()]; ok {
			out[r.Head.String()] = v
		}
	}
	return out, nil, nil
}

// fakeStructLearner returns a fixed list of new rules once, then nothing.
type fakeStructLearner struct {
	rules    []*term.Clause
	returned bool
}

func (f *fakeStructLearner) GenerateNewRules(currentTheory []*term.Clause, example term.Example, options structlearn.Options) ([]*term.Clause, error) {
	if f.returned {
		return nil, nil
	}
	f.returned = true
	return f.rules, nil
}

// fakeScorer is a hand-rolled score.Scorer: it labels every rule a true
// positive if its head string appears in example.QueryAtoms, else a
// false positive, ignoring groundings entirely.
type fakeScorer struct{}

func (fakeScorer) ScoreAndUpdateWeights(example term.Example, inferredState map[string]bool, rules []*term.Clause, cfg score.ScorerConfig, logger *log.Logger) (uint64, uint64, uint64, uint64, []term.Literal, error) {
	var tp, fp uint64
	queryTrue := map[string]bool{}
	for _, q := range example.QueryAtoms {
		queryTrue[q.String()] = true
	}
	for _, r := range rules {
		r.Seen++
		if queryTrue[r.Head.String()] {
			r.TruePositives++
			tp++
		} else {
			r.FalsePositives++
			fp++
		}
	}
	return tp, fp, 0, uint64(len(rules)), nil, nil
}

func newTestLearner(solver *fakeSolver, sl *fakeStructLearner) *Learner {
	cfg := DefaultConfig()
	return NewLearner(cfg, "test-run", solver, sl, fakeScorer{}, nil)
}

func mustLiteral(t *testing.T, predicate string, args ...term.Term) term.Literal {
	t.Helper()
	return term.NewLiteral(predicate, args...)
}

func TestObserve_NoRulesYet_NoStructuralUpdateWithoutMistakes(t *testing.T) {
	l := newTestLearner(&fakeSolver{}, &fakeStructLearner{})
	e := term.Example{ID: "e1"}
	if err := l.Observe(context.Background(), e); err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if len(l.theory.All()) != 0 {
		t.Fatalf("expected empty theory with no mistakes, got %d top clauses", len(l.theory.All()))
	}
}

func TestObserve_SolverFailureSkipsStructuralUpdateWithoutFatalError(t *testing.T) {
	l := newTestLearner(&fakeSolver{err: errors.New("timeout")}, &fakeStructLearner{})
	head := mustLiteral(t, "initiatedAt", term.Constant{Value: "f"}, term.Constant{Value: "5"})
	body := []term.Literal{mustLiteral(t, "happensAt", term.Constant{Value: "a"}, term.Constant{Value: "5"})}
	l.theory.Add(term.NewClause(head, body))

	e := term.Example{ID: "e1", QueryAtoms: []term.Literal{head}}
	if err := l.Observe(context.Background(), e); err != nil {
		t.Fatalf("Observe should not surface a solver failure as fatal: %v", err)
	}
	if l.stats.ExamplesSeen != 0 {
		t.Fatalf("expected counters untouched on solver failure, got ExamplesSeen=%d", l.stats.ExamplesSeen)
	}
}

func TestObserve_MistakeTriggersStructuralAdmission(t *testing.T) {
	head := mustLiteral(t, "initiatedAt", term.Constant{Value: "f"}, term.Constant{Value: "5"})
	newRule := term.NewClause(head, []term.Literal{
		mustLiteral(t, "happensAt", term.Constant{Value: "a"}, term.Constant{Value: "5"}),
	})
	sl := &fakeStructLearner{rules: []*term.Clause{newRule}}
	l := newTestLearner(&fakeSolver{}, sl)

	e := term.Example{ID: "e1", QueryAtoms: []term.Literal{head}}
	if err := l.Observe(context.Background(), e); err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if len(l.theory.Initiation) != 1 {
		t.Fatalf("expected new rule admitted into Initiation, got %d", len(l.theory.Initiation))
	}
	if l.stats.ExamplesSeen != 1 {
		t.Fatalf("expected ExamplesSeen=1, got %d", l.stats.ExamplesSeen)
	}
}

func TestObserve_TerminationHeadRoutesToTerminationSubTheory(t *testing.T) {
	head := mustLiteral(t, "terminatedAt", term.Constant{Value: "f"}, term.Constant{Value: "5"})
	newRule := term.NewClause(head, []term.Literal{
		mustLiteral(t, "happensAt", term.Constant{Value: "a"}, term.Constant{Value: "5"}),
	})
	sl := &fakeStructLearner{rules: []*term.Clause{newRule}}
	l := newTestLearner(&fakeSolver{}, sl)

	e := term.Example{ID: "e1", QueryAtoms: []term.Literal{head}}
	if err := l.Observe(context.Background(), e); err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if len(l.theory.Termination) != 1 {
		t.Fatalf("expected new rule admitted into Termination, got %d", len(l.theory.Termination))
	}
	if len(l.theory.Initiation) != 0 {
		t.Fatalf("expected Initiation untouched, got %d", len(l.theory.Initiation))
	}
}

func TestApplyInertia_DiffuseClearsAfterComputing(t *testing.T) {
	l := newTestLearner(&fakeSolver{}, &fakeStructLearner{})
	l.cfg.WithInertia = true
	l.cfg.InertiaMode = InertiaDiffuse

	holds := mustLiteral(t, "holdsAt", term.Constant{Value: "f"}, term.Constant{Value: "5"})
	l.applyInertia(nil, []term.Literal{holds})

	if l.inertia != nil {
		t.Fatalf("expected InertiaDiffuse to clear after computing, got %v", l.inertia)
	}
}

func TestApplyInertia_CarryForwardPersists(t *testing.T) {
	l := newTestLearner(&fakeSolver{}, &fakeStructLearner{})
	l.cfg.WithInertia = true
	l.cfg.InertiaMode = InertiaCarryForward

	holds := mustLiteral(t, "holdsAt", term.Constant{Value: "f"}, term.Constant{Value: "5"})
	l.applyInertia(nil, []term.Literal{holds})

	if len(l.inertia) != 1 || !l.inertia[0].Equal(holds) {
		t.Fatalf("expected InertiaCarryForward to persist the atom, got %v", l.inertia)
	}
}

func TestApplyInertia_WithoutInertiaAlwaysClears(t *testing.T) {
	l := newTestLearner(&fakeSolver{}, &fakeStructLearner{})
	l.cfg.WithInertia = false

	holds := mustLiteral(t, "holdsAt", term.Constant{Value: "f"}, term.Constant{Value: "5"})
	l.applyInertia(nil, []term.Literal{holds})

	if l.inertia != nil {
		t.Fatalf("expected no inertia tracked when WithInertia is false, got %v", l.inertia)
	}
}

func TestIsSolverFailure(t *testing.T) {
	if isSolverFailure(errors.New("wrap: "+internalerr.ErrSolverFailed.Error())) {
		t.Fatalf("expected plain string matching NOT to count as a sentinel match")
	}
	wrapped := &wrapErr{inner: internalerr.ErrSolverFailed}
	if !isSolverFailure(wrapped) {
		t.Fatalf("expected errors.Is match against a wrapped ErrSolverFailed")
	}
	if isSolverFailure(errors.New("some other failure")) {
		t.Fatalf("expected a plain unrelated error not to match")
	}
}

type wrapErr struct{ inner error }

func (w *wrapErr) Error() string { return "wrapped: " + w.inner.Error() }
func (w *wrapErr) Unwrap() error { return w.inner }
