// Package term implements the tagged-variant term, literal, mode, and
// clause data model that the rest of the learner operates on.
package term

import "strings"

// Term is a closed sum type over the three term shapes the model supports.
// The unexported marker method keeps the variant closed to this package,
// matching the "replace runtime dispatch with a tagged variant" guidance
// for this codebase.
type Term interface {
	String() string
	isTerm()
}

// Sort tags an optional type/sort annotation carried by variables in mode
// declarations (e.g. "time", "event"). Empty means untagged.
type Sort string

// Variable is an unbound term. By convention its Name begins with an
// uppercase letter. IOMode and SortTag are only meaningful when the
// variable appears inside a mode-declaration template literal; elsewhere
// they are zero-valued.
type Variable struct {
	Name    string
	IOMode  ArgMode
	SortTag Sort
}

func (Variable) isTerm() {}

func (v Variable) String() string { return v.Name }

// Constant is an immutable ground value. Numeric and symbolic constants
// are not distinguished at this layer; both are carried as their textual
// representation.
type Constant struct {
	Value string
}

func (Constant) isTerm() {}

func (c Constant) String() string { return c.Value }

// Compound is a function symbol applied to an ordered list of arguments.
type Compound struct {
	Functor string
	Args    []Term
}

func (Compound) isTerm() {}

func (c Compound) String() string {
	if len(c.Args) == 0 {
		return c.Functor
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Functor + "(" + strings.Join(parts, ",") + ")"
}

// IsVariable reports whether t is a Variable.
func IsVariable(t Term) bool {
	_, ok := t.(Variable)
	return ok
}

// Equal reports structural equality between two terms.
func Equal(a, b Term) bool {
	switch av := a.(type) {
	case Variable:
		bv, ok := b.(Variable)
		return ok && av.Name == bv.Name && av.IOMode == bv.IOMode && av.SortTag == bv.SortTag
	case Constant:
		bv, ok := b.(Constant)
		return ok && av.Value == bv.Value
	case Compound:
		bv, ok := b.(Compound)
		if !ok || av.Functor != bv.Functor || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !Equal(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// walk recursively visits every sub-term of t, depth-first, left-to-right.
func walk(t Term, visit func(Term)) {
	visit(t)
	if c, ok := t.(Compound); ok {
		for _, a := range c.Args {
			walk(a, visit)
		}
	}
}

// containsVariable reports whether t has any Variable sub-term.
func containsVariable(t Term) bool {
	found := false
	walk(t, func(sub Term) {
		if IsVariable(sub) {
			found = true
		}
	})
	return found
}
