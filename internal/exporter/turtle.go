package exporter

//spellchecker:words errors github iomemory anglo korean cayleygraph
import (
	"errors"
	"fmt"
	"io"

	"github.com/FAU-CDI/iomemory"
	"github.com/anglo-korean/rdf"
	"github.com/cayleygraph/quad"
)

// ErrNoContext is returned when an exporter that holds a single context receives a second one.
var ErrNoContext = errors.New("exporter holds a single context, select one to export")

// Turtle writes the triples of a single context as turtle.
// Namespaces bound in Store are used as prefixes.
type Turtle struct {
	Writer io.Writer
	Store  *iomemory.Store // store to take namespaces from, may be nil

	context iomemory.Term
	encoder *rdf.TripleEncoder
}

func (tt *Turtle) Begin(context iomemory.Term) error {
	if tt.encoder != nil {
		if context != tt.context {
			return ErrNoContext
		}
		return nil
	}

	tt.context = context
	tt.encoder = rdf.NewTripleEncoder(tt.Writer, rdf.Turtle)
	if tt.Store != nil {
		tt.encoder.Namespaces = make(map[string]string)
		for prefix, ns := range tt.Store.Namespaces() {
			tt.encoder.Namespaces[string(ns)] = prefix
		}
	}
	return nil
}

func (tt *Turtle) Add(triple iomemory.Triple) (err error) {
	var spo rdf.Triple

	spo.Subj, err = turtleSubject(triple.Subject)
	if err != nil {
		return err
	}

	iri, ok := triple.Predicate.(quad.IRI)
	if !ok {
		return fmt.Errorf("%w: %s as predicate", errUnsupportedTerm, triple.Predicate)
	}
	spo.Pred, err = rdf.NewIRI(string(iri))
	if err != nil {
		return err
	}

	spo.Obj, err = turtleObject(triple.Object)
	if err != nil {
		return err
	}

	return tt.encoder.Encode(spo)
}

func (tt *Turtle) End(context iomemory.Term) error {
	return nil
}

// Close flushes any pending output.
// It does not close the underlying writer.
func (tt *Turtle) Close() error {
	if tt.encoder == nil {
		return nil
	}
	return tt.encoder.Close()
}

var errUnsupportedTerm = errors.New("term cannot be written as turtle")

// turtleSubject turns an iri or blank node into a turtle subject.
func turtleSubject(term iomemory.Term) (rdf.Subject, error) {
	switch term := term.(type) {
	case quad.IRI:
		return rdf.NewIRI(string(term))
	case quad.BNode:
		return rdf.NewBlank(string(term))
	default:
		return nil, fmt.Errorf("%w: %s as subject", errUnsupportedTerm, term)
	}
}

// turtleObject turns any term into a turtle object.
func turtleObject(term iomemory.Term) (rdf.Object, error) {
	switch term := term.(type) {
	case quad.IRI:
		return rdf.NewIRI(string(term))
	case quad.BNode:
		return rdf.NewBlank(string(term))
	case quad.String:
		return rdf.NewLiteral(string(term))
	case quad.LangString:
		return rdf.NewLangLiteral(string(term.Value), term.Lang)
	case quad.TypedString:
		datatype, err := rdf.NewIRI(string(term.Type))
		if err != nil {
			return nil, err
		}
		return rdf.NewTypedLiteral(string(term.Value), datatype), nil
	case quad.Int:
		return rdf.NewLiteral(int(term))
	case quad.Float:
		return rdf.NewLiteral(float64(term))
	case quad.Bool:
		return rdf.NewLiteral(bool(term))
	case quad.Time:
		return rdf.NewLiteral(term.Native())
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedTerm, term)
	}
}
