package viewer

//spellchecker:words encoding json iter strconv github iomemory internal loader gorilla
import (
	"encoding/json"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"strconv"

	"github.com/FAU-CDI/iomemory"
	"github.com/FAU-CDI/iomemory/internal/loader"
	"github.com/gorilla/mux"
)

// Term is the json form of a term, as returned by its String method.
type Term = string

// TripleMessage is the json form of a triple.
type TripleMessage struct {
	Subject   Term `json:"s"`
	Predicate Term `json:"p"`
	Object    Term `json:"o"`
	Context   Term `json:"g,omitempty"`
}

// NewTripleMessage turns a triple into json form.
func NewTripleMessage(triple iomemory.Triple) TripleMessage {
	return TripleMessage{
		Subject:   termString(triple.Subject),
		Predicate: termString(triple.Predicate),
		Object:    termString(triple.Object),
		Context:   termString(triple.Context),
	}
}

// Triple parses the triple in this message.
func (tm TripleMessage) Triple() iomemory.Triple {
	return iomemory.Triple{
		Subject:   loader.ParseTerm(tm.Subject),
		Predicate: loader.ParseTerm(tm.Predicate),
		Object:    loader.ParseTerm(tm.Object),
		Context:   loader.ParseTerm(tm.Context),
	}
}

func termString(term iomemory.Term) Term {
	if term == nil {
		return ""
	}
	return term.String()
}

type IndexMessage struct {
	Size           uint64         `json:"size"`
	Terms          uint64         `json:"terms"`
	DefaultContext Term           `json:"default_context"`
	Stats          iomemory.Stats `json:"stats"`
}

type TriplesMessage struct {
	Triples   []TripleMessage `json:"triples"`
	Truncated bool            `json:"truncated"`
}

type ChangeMessage struct {
	Changed uint64 `json:"changed"`
	Size    uint64 `json:"size"`
}

func (viewer *Viewer) jsonIndex(w http.ResponseWriter, r *http.Request) {
	viewer.read(w, r, func(store *iomemory.Store) (any, error) {
		terms, err := store.Terms()
		if err != nil {
			return nil, err
		}
		return IndexMessage{
			Size:           store.Size(),
			Terms:          terms,
			DefaultContext: termString(store.DefaultContext()),
			Stats:          store.Stats(),
		}, nil
	})
}

func (viewer *Viewer) jsonProgress(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, viewer.Status.Progress())
}

func (viewer *Viewer) jsonNamespaces(w http.ResponseWriter, r *http.Request) {
	viewer.read(w, r, func(store *iomemory.Store) (any, error) {
		namespaces := make(map[string]string)
		for prefix, ns := range store.Namespaces() {
			namespaces[prefix] = string(ns)
		}
		return namespaces, nil
	})
}

func (viewer *Viewer) jsonContexts(w http.ResponseWriter, r *http.Request) {
	viewer.read(w, r, func(store *iomemory.Store) (any, error) {
		return collectTerms(store.Contexts())
	})
}

func (viewer *Viewer) jsonRegisterContext(w http.ResponseWriter, r *http.Request) {
	context, err := contextParam(r.URL.Query())
	if err != nil {
		viewer.jsonError(w, err)
		return
	}

	viewer.write(w, r, func(store *iomemory.Store) (any, error) {
		if err := store.RegisterContext(context); err != nil {
			return nil, err
		}
		return ChangeMessage{Size: store.Size()}, nil
	})
}

func (viewer *Viewer) jsonRemoveContext(w http.ResponseWriter, r *http.Request) {
	context, err := contextParam(r.URL.Query())
	if err != nil {
		viewer.jsonError(w, err)
		return
	}

	viewer.write(w, r, func(store *iomemory.Store) (any, error) {
		before := store.Size()
		if err := store.RemoveContext(context); err != nil {
			return nil, err
		}
		return ChangeMessage{Changed: before - store.Size(), Size: store.Size()}, nil
	})
}

func (viewer *Viewer) jsonTriples(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := -1
	if value := query.Get("limit"); value != "" {
		var err error
		limit, err = strconv.Atoi(value)
		if err != nil || limit < 0 {
			viewer.jsonError(w, fmt.Errorf("%w: limit %q", errBadQuery, value))
			return
		}
	}

	patterns := patternsParam(query)
	viewer.read(w, r, func(store *iomemory.Store) (any, error) {
		message := TriplesMessage{Triples: []TripleMessage{}}
	patterns:
		for _, pattern := range patterns {
			for triple, err := range store.Triples(pattern) {
				if err != nil {
					return nil, err
				}
				if limit >= 0 && len(message.Triples) == limit {
					message.Truncated = true
					break patterns
				}
				message.Triples = append(message.Triples, NewTripleMessage(triple))
			}
		}
		return message, nil
	})
}

// jsonAdd adds a batch of triples.
// Every triple is checked before the first one is added,
// so that a malformed batch leaves the store unchanged.
func (viewer *Viewer) jsonAdd(w http.ResponseWriter, r *http.Request) {
	var messages []TripleMessage
	if err := json.NewDecoder(r.Body).Decode(&messages); err != nil {
		viewer.jsonError(w, fmt.Errorf("%w: %w", errBadQuery, err))
		return
	}

	triples := make([]iomemory.Triple, len(messages))
	for i, message := range messages {
		triples[i] = message.Triple()
		if !triples[i].Complete() {
			viewer.jsonError(w, fmt.Errorf("triple %d: %w", i, iomemory.ErrIncomplete))
			return
		}
	}

	viewer.write(w, r, func(store *iomemory.Store) (any, error) {
		before := store.Size()
		for _, triple := range triples {
			if err := store.Add(triple); err != nil {
				return nil, err
			}
		}
		return ChangeMessage{Changed: store.Size() - before, Size: store.Size()}, nil
	})
}

func (viewer *Viewer) jsonRemove(w http.ResponseWriter, r *http.Request) {
	patterns := patternsParam(r.URL.Query())
	viewer.write(w, r, func(store *iomemory.Store) (any, error) {
		before := store.Size()
		for _, pattern := range patterns {
			if err := store.Remove(pattern); err != nil {
				return nil, err
			}
		}
		return ChangeMessage{Changed: before - store.Size(), Size: store.Size()}, nil
	})
}

func (viewer *Viewer) jsonUnique(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]
	context := loader.ParseTerm(r.URL.Query().Get("g"))

	viewer.read(w, r, func(store *iomemory.Store) (any, error) {
		switch kind {
		case "subjects":
			return collectTerms(store.UniqueSubjects(context))
		case "predicates":
			return collectTerms(store.UniquePredicates(context))
		default:
			return collectTerms(store.UniqueObjects(context))
		}
	})
}

// patternsParam reads patterns from the "s", "p", "o" and "g" parameters.
// Missing parameters are wildcards.
//
// A typed literal object matches both the literal as loaded from N-Quads,
// and the equivalent native value, so two patterns are returned in that case.
func patternsParam(query url.Values) []iomemory.Pattern {
	pattern := iomemory.Pattern{
		Subject:   loader.ParseTerm(query.Get("s")),
		Predicate: loader.ParseTerm(query.Get("p")),
		Object:    loader.ParseTerm(query.Get("o")),
		Context:   loader.ParseTerm(query.Get("g")),
	}

	native, ok := loader.NativeTerm(pattern.Object)
	if !ok {
		return []iomemory.Pattern{pattern}
	}

	other := pattern
	other.Object = native
	return []iomemory.Pattern{pattern, other}
}

// contextParam reads a required context from the "g" parameter.
func contextParam(query url.Values) (iomemory.Term, error) {
	value := query.Get("g")
	if value == "" {
		return nil, errNoContext
	}
	return loader.ParseTerm(value), nil
}

// collectTerms collects the string forms of a sequence of terms.
func collectTerms(seq iter.Seq2[iomemory.Term, error]) ([]Term, error) {
	terms := []Term{}
	for term, err := range seq {
		if err != nil {
			return nil, err
		}
		terms = append(terms, termString(term))
	}
	return terms, nil
}
