package bottomup

import (
	"testing"

	"github.com/cognicore/inductor/pkg/inductor/structlearn"
	"github.com/cognicore/inductor/pkg/inductor/term"
)

func c(value string) term.Term { return term.Constant{Value: value} }

func TestGenerateNewRules_BuildsBottomRuleAndMinimalTopClause(t *testing.T) {
	query := term.NewLiteral("initiatedAt", c("f"), c("5"))
	example := term.Example{
		ID: "e1",
		Facts: []term.Literal{
			term.NewLiteral("happensAt", c("a"), c("5")),
			term.NewLiteral("happensAt", c("b"), c("7")), // no shared anchor, excluded
		},
		QueryAtoms: []term.Literal{query},
	}

	out, err := New().GenerateNewRules(nil, example, structlearn.Options{})
	if err != nil {
		t.Fatalf("GenerateNewRules: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one new top clause, got %d", len(out))
	}

	top := out[0]
	wantHead := term.NewLiteral("initiatedAt", c("f"), term.Variable{Name: "T"})
	if !top.Head.Equal(wantHead) {
		t.Errorf("top head = %s, want %s", top.Head, wantHead)
	}
	if len(top.Body) != 1 {
		t.Fatalf("expected a single-literal top clause body, got %d literals", len(top.Body))
	}
	wantBody := term.NewLiteral("happensAt", c("a"), term.Variable{Name: "T"})
	if !top.Body[0].Equal(wantBody) {
		t.Errorf("top body[0] = %s, want %s", top.Body[0], wantBody)
	}
	if !top.IsTopRule || !top.IsNew {
		t.Errorf("expected top clause flagged IsTopRule and IsNew, got %+v", top)
	}

	if len(top.Support) != 1 {
		t.Fatalf("expected exactly one support witness, got %d", len(top.Support))
	}
	witness := top.Support[0]
	if witness.IsTopRule || !witness.IsBottomRule {
		t.Errorf("expected the support witness to be flagged as a bottom rule, got %+v", witness)
	}
	if !witness.Head.Equal(wantHead) {
		t.Errorf("witness head = %s, want %s", witness.Head, wantHead)
	}
	if len(witness.Body) != 1 || !witness.Body[0].Equal(wantBody) {
		t.Errorf("witness body = %v, want [%s]", witness.Body, wantBody)
	}
}

func TestGenerateNewRules_SkipsQueryAtomWithNoConstantAnchor(t *testing.T) {
	query := term.NewLiteral("initiatedAt", term.Variable{Name: "X"})
	example := term.Example{ID: "e1", QueryAtoms: []term.Literal{query}}

	out, err := New().GenerateNewRules(nil, example, structlearn.Options{})
	if err != nil {
		t.Fatalf("GenerateNewRules: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no new rules for an ungeneralizable query atom, got %d", len(out))
	}
}

func TestGenerateNewRules_SkipsQueryAtomWithNoSharedFact(t *testing.T) {
	query := term.NewLiteral("initiatedAt", c("f"), c("5"))
	example := term.Example{
		ID:         "e1",
		Facts:      []term.Literal{term.NewLiteral("happensAt", c("b"), c("7"))},
		QueryAtoms: []term.Literal{query},
	}

	out, err := New().GenerateNewRules(nil, example, structlearn.Options{})
	if err != nil {
		t.Fatalf("GenerateNewRules: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no new rules when no fact shares the anchor constant, got %d", len(out))
	}
}
