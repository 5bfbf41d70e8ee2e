package iomemory

//spellchecker:words errors github iomemory internal triplestore igraph impl
import (
	"errors"
	"fmt"

	"github.com/FAU-CDI/iomemory/internal/triplestore/igraph"
	"github.com/FAU-CDI/iomemory/internal/triplestore/impl"
)

// ErrIncomplete is returned when adding a triple without a subject, predicate or object.
var ErrIncomplete = errors.New("triple is missing a subject, predicate or object")

// Add adds a triple to this store.
// A triple without a context is added to the default context.
//
// Adding a triple that already exists has no effect.
func (store *Store) Add(triple Triple) error {
	if !triple.Complete() {
		return ErrIncomplete
	}
	if triple.Context == nil {
		triple.Context = store.context
	}

	// a triple made of known terms might already exist
	q, known, err := store.lookup(Pattern(triple))
	if err != nil {
		return err
	}
	if known {
		store.index.Insert(q)
		return nil
	}

	// intern all the terms
	// terms interned before a failure keep their keys.
	for _, intern := range [4]struct {
		dest *impl.ID
		term Term
	}{
		{&q.Subject, triple.Subject},
		{&q.Predicate, triple.Predicate},
		{&q.Object, triple.Object},
		{&q.Context, triple.Context},
	} {
		*intern.dest, err = store.labels.Add(intern.term)
		if err != nil {
			return fmt.Errorf("failed to intern %s: %w", intern.term, err)
		}
	}

	store.index.Insert(q)
	return nil
}

// Remove removes all triples matching pattern from this store.
// A pattern with a wildcard context removes matching triples from every context.
//
// Matches are determined before any triple is removed.
// A match missing from any of the indices is skipped, and counted in [Stats.Divergent].
func (store *Store) Remove(pattern Pattern) error {
	var matches []igraph.Quad
	for q, err := range store.match(pattern) {
		if err != nil {
			return fmt.Errorf("failed to match %s: %w", pattern, err)
		}
		matches = append(matches, q)
	}

	for _, q := range matches {
		store.index.Delete(q)
	}
	return nil
}

// RemoveContext removes all triples within the given context.
// It is equivalent to Remove(Pattern{Context: context}).
// A context that was registered explicitly remains registered.
//
// Passing [Any] removes all triples from the store.
func (store *Store) RemoveContext(context Term) error {
	return store.Remove(Pattern{Context: context})
}
