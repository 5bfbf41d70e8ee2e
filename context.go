package iomemory

//spellchecker:words iter github iomemory internal triplestore impl
import (
	"fmt"
	"iter"

	"github.com/FAU-CDI/iomemory/internal/triplestore/impl"
)

// RegisterContext declares context as known, even if it holds no triples.
func (store *Store) RegisterContext(context Term) error {
	id, err := store.labels.Add(context)
	if err != nil {
		return fmt.Errorf("failed to register context %v: %w", context, err)
	}
	store.declared[id] = struct{}{}
	return nil
}

// Contexts returns a sequence of all known contexts.
// A context is known if it holds at least one triple, or has been registered using [Store.RegisterContext].
//
// Contexts holding triples come first, followed by registered contexts without triples.
// There is no guarantee on the order within either group.
func (store *Store) Contexts() iter.Seq2[Term, error] {
	return func(yield func(Term, error) bool) {
		for id := range store.index.Contexts() {
			if !store.yieldTerm(id, yield) {
				return
			}
		}

		for id := range store.declared {
			if store.index.HasContext(id) {
				continue
			}
			if !store.yieldTerm(id, yield) {
				return
			}
		}
	}
}

// UniqueSubjects returns a sequence of the distinct subjects within context.
// A nil context refers to the default context.
func (store *Store) UniqueSubjects(context Term) iter.Seq2[Term, error] {
	return store.unique(context, store.index.Subjects)
}

// UniquePredicates returns a sequence of the distinct predicates within context.
// A nil context refers to the default context.
func (store *Store) UniquePredicates(context Term) iter.Seq2[Term, error] {
	return store.unique(context, store.index.Predicates)
}

// UniqueObjects returns a sequence of the distinct objects within context.
// A nil context refers to the default context.
func (store *Store) UniqueObjects(context Term) iter.Seq2[Term, error] {
	return store.unique(context, store.index.Objects)
}

// unique implements the Unique* methods.
func (store *Store) unique(context Term, keys func(impl.ID) iter.Seq[impl.ID]) iter.Seq2[Term, error] {
	if context == nil {
		context = store.context
	}

	return func(yield func(Term, error) bool) {
		id, ok, err := store.labels.Get(context)
		if err != nil {
			yield(nil, fmt.Errorf("failed to lookup context %s: %w", context, err))
			return
		}
		if !ok {
			return
		}

		for key := range keys(id) {
			if !store.yieldTerm(key, yield) {
				return
			}
		}
	}
}

// yieldTerm resolves id and passes it to yield.
// It returns false if iteration should stop.
func (store *Store) yieldTerm(id impl.ID, yield func(Term, error) bool) bool {
	term, err := store.labels.Reverse(id)
	if err != nil {
		yield(nil, fmt.Errorf("failed to resolve %s: %w", id, err))
		return false
	}
	return yield(term, nil)
}
