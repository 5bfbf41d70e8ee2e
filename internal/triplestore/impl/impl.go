// Package impl holds the types shared by the triplestore packages.
package impl

import (
	"fmt"

	"github.com/cayleygraph/quad"
)

// Term identifies an rdf term or a context.
// Every kind of value provided by the quad package is comparable and can be used as a Term.
type Term = quad.Value

// Any is the wildcard Term.
// Inside a [Pattern] it matches any value in its position.
var Any Term

// Triple is a (subject, predicate, object) statement within a context.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
	Context   Term
}

// Pattern selects triples.
// Each field is either a concrete Term or [Any].
//
// Pattern(t) is the pattern matching exactly the triple t.
type Pattern struct {
	Subject   Term
	Predicate Term
	Object    Term
	Context   Term
}

// Complete reports if subject, predicate and object of this triple are set.
func (triple Triple) Complete() bool {
	return triple.Subject != nil && triple.Predicate != nil && triple.Object != nil
}

// Quad returns this triple as a quad.
func (triple Triple) Quad() quad.Quad {
	return quad.Quad{
		Subject:   triple.Subject,
		Predicate: triple.Predicate,
		Object:    triple.Object,
		Label:     triple.Context,
	}
}

// FromQuad turns a quad into a Triple.
// The label of the quad becomes the context.
func FromQuad(q quad.Quad) Triple {
	return Triple{
		Subject:   q.Subject,
		Predicate: q.Predicate,
		Object:    q.Object,
		Context:   q.Label,
	}
}

func (triple Triple) String() string {
	return fmt.Sprintf("%s %s %s %s", termString(triple.Subject), termString(triple.Predicate), termString(triple.Object), termString(triple.Context))
}

func (pattern Pattern) String() string {
	return Triple(pattern).String()
}

// termString formats term for debugging, using "*" for [Any].
func termString(term Term) string {
	if term == nil {
		return "*"
	}
	return term.String()
}
