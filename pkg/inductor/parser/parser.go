// Package parser specifies the textual clause parser collaborator
// contract (§6): a pure reader from characters to the data model.
package parser

import "github.com/cognicore/inductor/pkg/inductor/term"

// Parser reads the "[weight] head :- lit1, …, litN." syntax into a
// Clause.
type Parser interface {
	Parse(text string) (*term.Clause, error)
	// ParseLiteral reads a single literal, e.g. "happensAt(a,5)" or
	// "not holdsAt(p,5)", without a trailing period. Used by example
	// sources that store facts and query atoms as bare literal text.
	ParseLiteral(text string) (term.Literal, error)
}
