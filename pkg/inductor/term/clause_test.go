package term

import "testing"

func event(name string) Term { return Constant{Value: name} }

func TestClauseString_Fact(t *testing.T) {
	c := NewClause(NewLiteral("happensAt", event("a"), Variable{Name: "T"}), nil)
	if got, want := c.String(), "happensAt(a,T)."; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestClauseString_WithBody(t *testing.T) {
	c := NewClause(
		NewLiteral("initiatedAt", Variable{Name: "E"}, Variable{Name: "T"}),
		[]Literal{
			NewLiteral("happensAt", Variable{Name: "A"}, Variable{Name: "T"}),
			NewLiteral("holdsAt", Variable{Name: "P"}, Variable{Name: "T"}),
		},
	)
	want := "initiatedAt(E,T) :- happensAt(A,T), holdsAt(P,T)."
	if got := c.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestEmptyClause(t *testing.T) {
	c := EmptyClause()
	if !c.IsEmpty() {
		t.Errorf("expected EmptyClause() to report IsEmpty")
	}
	if got, want := c.String(), "[]."; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestVariables_OrderedDistinctHeadThenBody(t *testing.T) {
	c := NewClause(
		NewLiteral("initiatedAt", Variable{Name: "E"}, Variable{Name: "T"}),
		[]Literal{
			NewLiteral("happensAt", Variable{Name: "A"}, Variable{Name: "T"}),
			NewLiteral("holdsAt", Variable{Name: "E"}, Variable{Name: "T"}),
		},
	)
	vars := Variables(c)
	var names []string
	for _, v := range vars {
		names = append(names, v.Name)
	}
	want := []string{"E", "T", "A"}
	if len(names) != len(want) {
		t.Fatalf("Variables() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Variables()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestSubstitute_PreservesIDAndWeight(t *testing.T) {
	c := NewClause(NewLiteral("p", Variable{Name: "X"}), nil)
	c.Weight = 0.42
	out := Substitute(c, map[string]Term{"X": Constant{Value: "a"}})
	if out.ID != c.ID {
		t.Errorf("expected substitution to preserve clause identity")
	}
	if out.Weight != c.Weight {
		t.Errorf("expected substitution to preserve weight")
	}
	if got, want := out.String(), "p(a)."; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSkolemize_RoundTrip(t *testing.T) {
	c := NewClause(
		NewLiteral("initiatedAt", Variable{Name: "E"}, Variable{Name: "T"}),
		[]Literal{NewLiteral("happensAt", Variable{Name: "E"}, Variable{Name: "T"})},
	)
	ground, mapping := Skolemize(c)
	if !ground.Head.Ground() {
		t.Fatalf("expected skolemized clause head to be ground")
	}
	for _, b := range ground.Body {
		if !b.Ground() {
			t.Errorf("expected every skolemized body literal to be ground, got %s", b)
		}
	}
	if len(mapping) != 2 {
		t.Fatalf("expected 2 mapping entries, got %d", len(mapping))
	}
	if mapping["E"].String() != "skolem0" || mapping["T"].String() != "skolem1" {
		t.Errorf("expected deterministic left-to-right skolem naming, got %v", mapping)
	}
}

func TestClause_ClearStatistics(t *testing.T) {
	c := NewClause(NewLiteral("p", Variable{Name: "X"}), nil)
	c.TruePositives, c.FalsePositives, c.FalseNegatives, c.Seen = 10, 5, 2, 12
	c.PrevMeanDiff, c.PrevMeanDiffCount = 0.3, 4
	c.Refinements = []*Clause{NewClause(NewLiteral("p", Variable{Name: "X"}), []Literal{NewLiteral("q", Variable{Name: "X"})})}

	c.ClearStatistics()

	if c.TruePositives != 0 || c.FalsePositives != 0 || c.FalseNegatives != 0 || c.Seen != 0 {
		t.Errorf("expected all counters reset, got %+v", c)
	}
	if c.PrevMeanDiff != 0 || c.PrevMeanDiffCount != 0 {
		t.Errorf("expected running-mean state reset")
	}
	if c.Refinements != nil {
		t.Errorf("expected refinements cleared")
	}
}

func TestClause_Clone(t *testing.T) {
	parent := NewClause(NewLiteral("p", Variable{Name: "X"}), nil)
	child := NewClause(NewLiteral("p", Variable{Name: "X"}), []Literal{NewLiteral("q", Variable{Name: "X"})})
	child.Parent = parent
	parent.Refinements = []*Clause{child}
	parent.Support = []*Clause{NewClause(NewLiteral("p", Variable{Name: "X"}), []Literal{NewLiteral("q", Variable{Name: "X"}), NewLiteral("r", Variable{Name: "X"})})}

	clone := parent.Clone()
	if clone == parent {
		t.Fatalf("expected Clone to return a distinct pointer")
	}
	if len(clone.Refinements) != 1 || clone.Refinements[0] == child {
		t.Errorf("expected refinements to be deep-copied")
	}
	if clone.Refinements[0].Parent != clone {
		t.Errorf("expected cloned refinement's parent to point at the clone")
	}
	if len(clone.Support) != 1 || clone.Support[0] == parent.Support[0] {
		t.Errorf("expected support set to be deep-copied")
	}
}
