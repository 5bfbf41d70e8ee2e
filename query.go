package iomemory

//spellchecker:words iter github iomemory internal triplestore igraph impl
import (
	"fmt"
	"iter"

	"github.com/FAU-CDI/iomemory/internal/triplestore/igraph"
	"github.com/FAU-CDI/iomemory/internal/triplestore/impl"
)

// Triples returns a sequence of all triples matching pattern.
// There is no guarantee on the order of triples.
//
// A pattern with a wildcard context matches triples in every context.
// A pattern naming a term that was never added to this store matches nothing.
//
// When resolving a triple fails, the error is yielded and the sequence ends.
// The store may not be modified while the sequence is being consumed.
func (store *Store) Triples(pattern Pattern) iter.Seq2[Triple, error] {
	return func(yield func(Triple, error) bool) {
		for q, err := range store.match(pattern) {
			if err != nil {
				yield(Triple{}, err)
				return
			}

			triple, err := store.resolve(q)
			if err != nil {
				yield(Triple{}, err)
				return
			}

			if !yield(triple, nil) {
				return
			}
		}
	}
}

// Collect collects all elements of seq into a slice.
// It stops at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var result []T
	for value, err := range seq {
		if err != nil {
			return result, err
		}
		result = append(result, value)
	}
	return result, nil
}

// match returns a sequence of keyed quads matching pattern.
//
// A wildcard context is expanded by walking every context holding triples in turn.
func (store *Store) match(pattern Pattern) iter.Seq2[igraph.Quad, error] {
	return func(yield func(igraph.Quad, error) bool) {
		q, ok, err := store.lookup(pattern)
		if err != nil {
			yield(q, err)
			return
		}
		if !ok {
			return
		}

		if q.Context.Valid() {
			for match := range store.index.Match(q) {
				if !yield(match, nil) {
					return
				}
			}
			return
		}

		for context := range store.index.Contexts() {
			q.Context = context
			for match := range store.index.Match(q) {
				if !yield(match, nil) {
					return
				}
			}
		}
	}
}

// lookup turns the terms of pattern into keys, without interning any of them.
// Wildcards become the invalid key.
//
// When any concrete term has not been interned, returns ok = false.
func (store *Store) lookup(pattern Pattern) (q igraph.Quad, ok bool, err error) {
	for _, lookup := range [4]struct {
		dest *impl.ID
		term Term
	}{
		{&q.Subject, pattern.Subject},
		{&q.Predicate, pattern.Predicate},
		{&q.Object, pattern.Object},
		{&q.Context, pattern.Context},
	} {
		if lookup.term == nil {
			continue
		}

		*lookup.dest, ok, err = store.labels.Get(lookup.term)
		if err != nil {
			return q, false, fmt.Errorf("failed to lookup %s: %w", lookup.term, err)
		}
		if !ok {
			return q, false, nil
		}
	}
	return q, true, nil
}

// resolve turns the keys of q back into a Triple.
func (store *Store) resolve(q igraph.Quad) (triple Triple, err error) {
	for _, resolve := range [4]struct {
		dest *Term
		id   impl.ID
	}{
		{&triple.Subject, q.Subject},
		{&triple.Predicate, q.Predicate},
		{&triple.Object, q.Object},
		{&triple.Context, q.Context},
	} {
		*resolve.dest, err = store.labels.Reverse(resolve.id)
		if err != nil {
			return triple, fmt.Errorf("failed to resolve %s: %w", resolve.id, err)
		}
	}
	return triple, nil
}
