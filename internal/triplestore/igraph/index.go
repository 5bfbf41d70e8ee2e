// Package igraph provides Index, a set of covering indices over interned quads.
package igraph

import (
	"fmt"
	"iter"
	"maps"

	"github.com/FAU-CDI/iomemory/internal/triplestore/impl"
)

// cSpell:words igraph cspo cpos cosp

// Quad is a triple of ids within a context.
// Inside a pattern, an invalid id matches any id.
type Quad struct {
	Subject   impl.ID
	Predicate impl.ID
	Object    impl.ID
	Context   impl.ID
}

func (q Quad) String() string {
	return fmt.Sprintf("(%s %s %s %s)", q.Subject, q.Predicate, q.Object, q.Context)
}

// Stats holds statistics about mutations of the index.
type Stats struct {
	Added      uint64 // quads inserted
	Duplicates uint64 // inserts of quads already present
	Removed    uint64 // quads deleted
	Divergent  uint64 // deletes skipped because an index was missing the quad
}

func (stats Stats) String() string {
	return fmt.Sprintf("{added:%d,duplicates:%d,removed:%d,divergent:%d}", stats.Added, stats.Duplicates, stats.Removed, stats.Divergent)
}

// Index holds three covering indices over quads:
//
//	cspo: context -> subject -> predicate -> object
//	cpos: context -> predicate -> object -> subject
//	cosp: context -> object -> subject -> predicate
//
// All three always contain the same quads.
//
// The zero value is not ready for use; it should be initialized using a call to [Reset].
// An Index may not be accessed concurrently.
type Index struct {
	cspo  Four
	cpos  Four
	cosp  Four
	count uint64
	stats Stats
}

// Reset resets this index to be empty.
func (index *Index) Reset() {
	index.cspo = make(Four)
	index.cpos = make(Four)
	index.cosp = make(Four)
	index.count = 0
	index.stats = Stats{}
}

// Count returns the number of distinct quads in this index.
func (index *Index) Count() uint64 {
	if index == nil {
		return 0
	}
	return index.count
}

// Stats returns statistics about this index.
func (index *Index) Stats() Stats {
	return index.stats
}

// Has checks if the given quad is contained in this index.
func (index *Index) Has(q Quad) bool {
	return index.cspo.Has(q.Context, q.Subject, q.Predicate, q.Object)
}

// Insert inserts the given quad into all indices.
// Inserting a quad that already exists has no effect, and returns false.
//
// All ids of the quad must be valid.
func (index *Index) Insert(q Quad) bool {
	if index.Has(q) {
		index.stats.Duplicates++
		return false
	}

	index.cspo.Add(q.Context, q.Subject, q.Predicate, q.Object)
	index.cpos.Add(q.Context, q.Predicate, q.Object, q.Subject)
	index.cosp.Add(q.Context, q.Object, q.Subject, q.Predicate)

	index.count++
	index.stats.Added++
	return true
}

// Delete deletes the given quad from all indices.
//
// When any of the indices does not contain the quad, the indices have diverged.
// In that case, no index is modified and Delete returns false.
func (index *Index) Delete(q Quad) bool {
	if !index.cspo.Has(q.Context, q.Subject, q.Predicate, q.Object) ||
		!index.cpos.Has(q.Context, q.Predicate, q.Object, q.Subject) ||
		!index.cosp.Has(q.Context, q.Object, q.Subject, q.Predicate) {
		index.stats.Divergent++
		return false
	}

	index.cspo.Delete(q.Context, q.Subject, q.Predicate, q.Object)
	index.cpos.Delete(q.Context, q.Predicate, q.Object, q.Subject)
	index.cosp.Delete(q.Context, q.Object, q.Subject, q.Predicate)

	index.count--
	index.stats.Removed++
	return true
}

// HasContext checks if the context holds at least one quad.
func (index *Index) HasContext(context impl.ID) bool {
	_, ok := index.cspo[context]
	return ok
}

// Contexts returns a sequence of all contexts that hold at least one quad.
// There is no guarantee on order.
func (index *Index) Contexts() iter.Seq[impl.ID] {
	return maps.Keys(index.cspo)
}

// Subjects returns a sequence of the distinct subjects within the given context.
func (index *Index) Subjects(context impl.ID) iter.Seq[impl.ID] {
	return maps.Keys(index.cspo[context])
}

// Predicates returns a sequence of the distinct predicates within the given context.
func (index *Index) Predicates(context impl.ID) iter.Seq[impl.ID] {
	return maps.Keys(index.cpos[context])
}

// Objects returns a sequence of the distinct objects within the given context.
func (index *Index) Objects(context impl.ID) iter.Seq[impl.ID] {
	return maps.Keys(index.cosp[context])
}

// Match returns a sequence of all quads matching the given pattern.
// Invalid subject, predicate or object ids match any value.
// The context of the pattern must be valid, or the sequence is empty.
//
// The index is chosen by the first bound position in the order subject, predicate, object:
// cspo when the subject is bound, cpos when the predicate is, cosp when only the object is,
// and a full scan of cspo when nothing is.
//
// The sequence may not be consumed while the index is being modified.
func (index *Index) Match(pattern Quad) iter.Seq[Quad] {
	return func(yield func(Quad) bool) {
		c := pattern.Context
		if !c.Valid() {
			return
		}

		s, p, o := pattern.Subject, pattern.Predicate, pattern.Object
		switch {
		case s.Valid():
			index.cspo.Walk(c, s, p, o, func(s, p, o impl.ID) bool {
				return yield(Quad{Subject: s, Predicate: p, Object: o, Context: c})
			})
		case p.Valid():
			index.cpos.Walk(c, p, o, s, func(p, o, s impl.ID) bool {
				return yield(Quad{Subject: s, Predicate: p, Object: o, Context: c})
			})
		case o.Valid():
			index.cosp.Walk(c, o, s, p, func(o, s, p impl.ID) bool {
				return yield(Quad{Subject: s, Predicate: p, Object: o, Context: c})
			})
		default:
			index.cspo.Walk(c, s, p, o, func(s, p, o impl.ID) bool {
				return yield(Quad{Subject: s, Predicate: p, Object: o, Context: c})
			})
		}
	}
}
