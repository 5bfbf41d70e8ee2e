package loader

//spellchecker:words strconv strings github iomemory cayleygraph
import (
	"strconv"
	"strings"

	"github.com/FAU-CDI/iomemory"
	"github.com/cayleygraph/quad"
)

// ParseTerm parses a term given on the command line, in a configuration file or in a request.
// It accepts the output of the String method of every term, as well as bare iris.
//
// The empty string is the wildcard.
// Values of the form "_:name" are blank nodes, values of the form "<iri>" or "iri" are iris.
// Double-quoted values are literals, optionally followed by "@lang" or "^^<datatype>".
//
// Typed literals are returned as [quad.TypedString], the way [Load] stores them.
// A native value such as [quad.Int] has the same string form; use [NativeTerm] to obtain it.
func ParseTerm(value string) iomemory.Term {
	switch {
	case value == "":
		return iomemory.Any
	case strings.HasPrefix(value, "_:"):
		return quad.BNode(value[len("_:"):])
	case len(value) >= 2 && strings.HasPrefix(value, "<") && strings.HasSuffix(value, ">"):
		return quad.IRI(value[1 : len(value)-1])
	}

	if literal, ok := parseLiteral(value); ok {
		return literal
	}
	return quad.IRI(value)
}

// NativeTerm returns the native value of a typed literal with a well-known datatype,
// such as [quad.Int] for "42"^^<http://www.w3.org/2001/XMLSchema#integer>.
//
// When term has no native equivalent, returns ok = false.
func NativeTerm(term iomemory.Term) (native iomemory.Term, ok bool) {
	typed, isTyped := term.(quad.TypedString)
	if !isTyped {
		return nil, false
	}

	value, err := typed.ParseValue()
	if err != nil || value == nil || value == iomemory.Term(typed) {
		return nil, false
	}
	return value, true
}

// parseLiteral parses a quoted literal with an optional language or datatype.
func parseLiteral(value string) (iomemory.Term, bool) {
	if !strings.HasPrefix(value, `"`) {
		return nil, false
	}

	end := strings.LastIndex(value, `"`)
	if end == 0 {
		return nil, false
	}

	lexical, err := strconv.Unquote(value[:end+1])
	if err != nil {
		return nil, false
	}

	rest := value[end+1:]
	switch {
	case rest == "":
		return quad.String(lexical), true
	case strings.HasPrefix(rest, "@") && len(rest) > 1:
		return quad.LangString{Value: quad.String(lexical), Lang: rest[1:]}, true
	case strings.HasPrefix(rest, "^^<") && strings.HasSuffix(rest, ">"):
		return quad.TypedString{Value: quad.String(lexical), Type: quad.IRI(rest[3 : len(rest)-1])}, true
	default:
		return nil, false
	}
}
