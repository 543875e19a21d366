package term

// ArgMode tags an argument position of a mode declaration. It is a closed
// enum rather than a rune or string, per the redesign guidance against
// stringly-typed dispatch.
type ArgMode int

const (
	// ModeDontCare marks a position with no constraint.
	ModeDontCare ArgMode = iota
	// ModeInput marks a position that must be bound on entry ("+").
	ModeInput
	// ModeOutput marks a position that the literal binds ("-").
	ModeOutput
	// ModeConstant marks a position that must be a specific constant ("#").
	ModeConstant
)

func (m ArgMode) String() string {
	switch m {
	case ModeInput:
		return "+"
	case ModeOutput:
		return "-"
	case ModeConstant:
		return "#"
	default:
		return ""
	}
}

// ModeDeclaration is a template literal constraining how refinement may
// introduce a body literal of a given predicate, and carrying the flag
// used for comparison-predicate redundancy detection (§4.3).
type ModeDeclaration struct {
	Predicate    string
	ArgModes     []ArgMode
	IsComparison bool
}

// Arity returns the number of argument positions declared.
func (m ModeDeclaration) Arity() int { return len(m.ArgModes) }
