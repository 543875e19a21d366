package support

import (
	"errors"
	"testing"

	"github.com/cognicore/inductor/pkg/inductor/internalerr"
	"github.com/cognicore/inductor/pkg/inductor/subsume"
	"github.com/cognicore/inductor/pkg/inductor/term"
)

func v(name string) term.Term { return term.Variable{Name: name} }

func TestSet_CompressDropsMoreGeneralWitness(t *testing.T) {
	general := term.NewClause(term.NewLiteral("p", v("X")), []term.Literal{term.NewLiteral("q", v("X"))})
	specific := term.NewClause(term.NewLiteral("p", v("X")), []term.Literal{
		term.NewLiteral("q", v("X")),
		term.NewLiteral("r", v("X")),
	})

	s := NewSet()
	s.Add(general)
	s.Add(specific)

	eng := subsume.NewEngine(0)
	s.Compress(eng)

	got := s.Clauses()
	if len(got) != 1 || got[0] != specific {
		t.Fatalf("expected compress to keep only the more specific witness, got %v", got)
	}
}

// Invariant 5 — Support-set compression idempotence.
func TestSet_CompressIdempotent(t *testing.T) {
	general := term.NewClause(term.NewLiteral("p", v("X")), []term.Literal{term.NewLiteral("q", v("X"))})
	specific := term.NewClause(term.NewLiteral("p", v("X")), []term.Literal{
		term.NewLiteral("q", v("X")),
		term.NewLiteral("r", v("X")),
	})
	unrelated := term.NewClause(term.NewLiteral("p", v("X")), []term.Literal{term.NewLiteral("s", v("X"))})

	eng := subsume.NewEngine(0)

	s := NewSet()
	s.AddAll([]*term.Clause{general, specific, unrelated})
	s.Compress(eng)
	first := append([]*term.Clause{}, s.Clauses()...)

	s.Compress(eng)
	second := s.Clauses()

	if len(first) != len(second) {
		t.Fatalf("compress not idempotent: first=%d second=%d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("compress not idempotent at index %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestRemove(t *testing.T) {
	a := term.NewClause(term.NewLiteral("p"), nil)
	b := term.NewClause(term.NewLiteral("q"), nil)
	s := NewSet()
	s.AddAll([]*term.Clause{a, b})
	s.Remove(a)
	got := s.Clauses()
	if len(got) != 1 || got[0] != b {
		t.Fatalf("expected only b to remain, got %v", got)
	}
}

func TestCompressTheory_KeepsLowestCreationOrder(t *testing.T) {
	a := term.NewClause(term.NewLiteral("p", v("X")), []term.Literal{term.NewLiteral("q", v("X"))})
	b := term.NewClause(term.NewLiteral("p", v("Y")), []term.Literal{term.NewLiteral("q", v("Y"))})
	c := term.NewClause(term.NewLiteral("p", v("Z")), []term.Literal{term.NewLiteral("q", v("Z")), term.NewLiteral("r", v("Z"))})

	eng := subsume.NewEngine(0)
	out := CompressTheory(eng, []*term.Clause{a, b, c})

	if len(out) != 2 {
		t.Fatalf("expected equivalent clauses a,b to collapse to one, got %d: %v", len(out), out)
	}
	if out[0] != a {
		t.Errorf("expected the lowest creation order (a) to survive, got %v", out[0])
	}
}

func TestMergeOrAdmit_MergesSupportIntoSubsumedTop(t *testing.T) {
	t0 := term.NewClause(term.NewLiteral("p", v("X")), []term.Literal{term.NewLiteral("q", v("X"))})
	t0.Support = []*term.Clause{term.NewClause(t0.Head, []term.Literal{term.NewLiteral("q", v("X")), term.NewLiteral("r", v("X"))})}

	n := term.NewClause(term.NewLiteral("p", v("Y")), []term.Literal{term.NewLiteral("q", v("Y"))})
	n.Support = []*term.Clause{term.NewClause(n.Head, []term.Literal{term.NewLiteral("q", v("Y")), term.NewLiteral("s", v("Y"))})}

	eng := subsume.NewEngine(0)
	theory := MergeOrAdmit(eng, []*term.Clause{t0}, n, 1, nil)

	if len(theory) != 1 {
		t.Fatalf("expected n to merge rather than be admitted, got theory of size %d", len(theory))
	}
	if len(t0.Support) != 2 {
		t.Errorf("expected t0's support to absorb n's support, got %d entries", len(t0.Support))
	}
}

func TestSet_GetSupportLiteral(t *testing.T) {
	q := term.NewLiteral("q", v("X"))
	r := term.NewLiteral("r", v("X"))
	w1 := term.NewClause(term.NewLiteral("p", v("X")), []term.Literal{q, r})
	w2 := term.NewClause(term.NewLiteral("p", v("Y")), []term.Literal{term.NewLiteral("s", v("Y"))})

	s := NewSet()
	s.AddAll([]*term.Clause{w1, w2})

	tests := []struct {
		name    string
		i, j    int
		want    term.Literal
		wantErr bool
	}{
		{name: "first witness first literal", i: 1, j: 1, want: q},
		{name: "first witness second literal", i: 1, j: 2, want: r},
		{name: "second witness first literal", i: 2, j: 1, want: term.NewLiteral("s", v("Y"))},
		{name: "witness index zero", i: 0, j: 1, wantErr: true},
		{name: "witness index past end", i: 3, j: 1, wantErr: true},
		{name: "literal index zero", i: 1, j: 0, wantErr: true},
		{name: "literal index past end", i: 1, j: 3, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.GetSupportLiteral(tt.i, tt.j)
			if tt.wantErr {
				if !errors.Is(err, internalerr.ErrNotFound) {
					t.Fatalf("expected ErrNotFound for i=%d j=%d, got %v", tt.i, tt.j, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("GetSupportLiteral(%d, %d) = %v, want %v", tt.i, tt.j, got, tt.want)
			}
		})
	}
}

func TestMergeOrAdmit_AdmitsWhenNotSubsumed(t *testing.T) {
	t0 := term.NewClause(term.NewLiteral("p", v("X")), []term.Literal{term.NewLiteral("q", v("X"))})
	n := term.NewClause(term.NewLiteral("p", v("Y")), []term.Literal{term.NewLiteral("z", v("Y"))})

	eng := subsume.NewEngine(0)
	theory := MergeOrAdmit(eng, []*term.Clause{t0}, n, 1, nil)

	if len(theory) != 2 {
		t.Fatalf("expected n to be admitted as a new top clause, got %d", len(theory))
	}
}
