package term

import "strings"

// Literal is a predicate applied to an ordered list of term arguments,
// optionally negated-as-failure, with an associated mode declaration.
type Literal struct {
	Predicate string
	Args      []Term
	Negated   bool
	Mode      *ModeDeclaration
}

// NewLiteral builds a literal with no mode attached.
func NewLiteral(predicate string, args ...Term) Literal {
	return Literal{Predicate: predicate, Args: args}
}

// Ground reports whether l has no Variable sub-term in any argument.
func (l Literal) Ground() bool {
	for _, a := range l.Args {
		if containsVariable(a) {
			return false
		}
	}
	return true
}

// Equal reports structural equality of two literals, including the
// negation flag and argument terms. Mode is not considered, since it is
// metadata derived from the predicate rather than part of its logical
// identity.
func (l Literal) Equal(o Literal) bool {
	if l.Predicate != o.Predicate || l.Negated != o.Negated || len(l.Args) != len(o.Args) {
		return false
	}
	for i := range l.Args {
		if !Equal(l.Args[i], o.Args[i]) {
			return false
		}
	}
	return true
}

// String renders the literal in Prolog-like syntax, e.g. "not p(X,Y)".
func (l Literal) String() string {
	var sb strings.Builder
	if l.Negated {
		sb.WriteString("not ")
	}
	sb.WriteString(l.Predicate)
	if len(l.Args) > 0 {
		sb.WriteString("(")
		for i, a := range l.Args {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(a.String())
		}
		sb.WriteString(")")
	}
	return sb.String()
}

// Substitute applies mapping homomorphically to every argument, returning
// a new literal with Mode metadata preserved.
func (l Literal) Substitute(mapping map[string]Term) Literal {
	out := Literal{
		Predicate: l.Predicate,
		Args:      make([]Term, len(l.Args)),
		Negated:   l.Negated,
		Mode:      l.Mode,
	}
	for i, a := range l.Args {
		out.Args[i] = substituteTerm(a, mapping)
	}
	return out
}

func substituteTerm(t Term, mapping map[string]Term) Term {
	switch v := t.(type) {
	case Variable:
		if repl, ok := mapping[v.Name]; ok {
			return repl
		}
		return v
	case Constant:
		return v
	case Compound:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = substituteTerm(a, mapping)
		}
		return Compound{Functor: v.Functor, Args: args}
	default:
		return t
	}
}

// ConsistentWithMode reports whether l's shape (predicate and arity) is
// consistent with m; negation and argument modes are not checked. It serves
// invariant 1 of §3: "A clause's body literals are each consistent with
// at least one mode declaration."
func (l Literal) ConsistentWithMode(m ModeDeclaration) bool {
	return l.Predicate == m.Predicate && len(l.Args) == m.Arity()
}
