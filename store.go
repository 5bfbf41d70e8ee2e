// Package iomemory implements Store, an in-memory and context-aware index of rdf triples.
//
// A Store interns every term into a random integer key and keeps three covering indices
// (context-subject-predicate-object, context-predicate-object-subject, context-object-subject-predicate)
// over those keys.
// Queries pick the most selective index for the bound positions of a pattern.
//
// A Store is not safe for concurrent use.
// Callers sharing a Store between goroutines must guard it externally,
// and must not modify it while consuming a sequence returned from it.
package iomemory

//spellchecker:words iomemory github cayleygraph google uuid internal triplestore igraph imap impl
import (
	"fmt"

	"github.com/FAU-CDI/iomemory/internal/triplestore/igraph"
	"github.com/FAU-CDI/iomemory/internal/triplestore/imap"
	"github.com/FAU-CDI/iomemory/internal/triplestore/impl"
	"github.com/cayleygraph/quad"
	"github.com/google/uuid"
)

//spellchecker:words cspo cpos cosp

type (
	// Term identifies an rdf term or a context.
	Term = impl.Term

	// Triple is a (subject, predicate, object) statement within a context.
	Triple = impl.Triple

	// Pattern selects triples, see [Store.Triples].
	Pattern = impl.Pattern

	// Stats holds statistics about the mutations performed on a store.
	Stats = igraph.Stats

	// Engine determines where the interning table of a store is kept.
	Engine = imap.Map
)

// Any is the wildcard Term.
// Inside a [Pattern] it matches any value in its position.
var Any = impl.Any

var (
	// ErrExhausted is returned when no unused key could be found for a new term.
	ErrExhausted = imap.ErrExhausted

	// ErrClosed is returned when using a store that has been closed.
	ErrClosed = imap.ErrClosed

	// ErrWildcard is returned when registering the wildcard as a context.
	ErrWildcard = imap.ErrWildcard
)

// MemoryEngine returns an engine keeping the interning table in main memory.
func MemoryEngine() Engine {
	return &imap.MemoryMap{}
}

// DiskEngine returns an engine spilling the interning table into leveldb databases below path.
// Any existing data at path is removed when a store is created.
//
// The data is not durable, and cannot be reopened by a different store.
func DiskEngine(path string) Engine {
	return imap.DiskMap{Path: path}
}

// Store is an in-memory index of triples within contexts.
//
// Terms are interned on first use and are never removed from the store.
// Removing all triples referencing a term does not free its key,
// trading memory for not having to count references.
type Store struct {
	labels imap.IMap
	index  igraph.Index

	context  Term                 // the default context
	declared map[impl.ID]struct{} // contexts registered explicitly

	prefixes   map[string]quad.IRI // prefix => namespace
	namespaces map[quad.IRI]string // namespace => prefix
}

// New creates a new store using the given engine.
// A nil engine is equivalent to [MemoryEngine].
//
// Triples added without a context are added to defaultContext.
// When defaultContext is nil, a fresh blank node is used instead.
func New(engine Engine, defaultContext Term) (*Store, error) {
	if engine == nil {
		engine = MemoryEngine()
	}
	if defaultContext == nil {
		defaultContext = quad.BNode(uuid.NewString())
	}

	store := &Store{
		context:    defaultContext,
		declared:   make(map[impl.ID]struct{}),
		prefixes:   make(map[string]quad.IRI),
		namespaces: make(map[quad.IRI]string),
	}

	if err := store.labels.Reset(engine); err != nil {
		return nil, fmt.Errorf("failed to reset labels: %w", err)
	}
	store.index.Reset()

	return store, nil
}

// DefaultContext returns the context that triples without a context are added to.
func (store *Store) DefaultContext() Term {
	return store.context
}

// Size returns the number of distinct triples in this store.
func (store *Store) Size() uint64 {
	return store.index.Count()
}

// Terms returns the number of distinct terms interned by this store.
// Terms of removed triples are still counted, see [Store].
func (store *Store) Terms() (uint64, error) {
	count, err := store.labels.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count terms: %w", err)
	}
	return count, nil
}

// Stats returns statistics about the mutations performed on this store.
func (store *Store) Stats() Stats {
	return store.index.Stats()
}

// Close closes this store and releases any storages associated with it.
// A closed store may not be used for anything but further calls to Close.
func (store *Store) Close() error {
	store.index.Reset()
	clear(store.declared)

	if err := store.labels.Close(); err != nil {
		return fmt.Errorf("failed to close labels: %w", err)
	}
	return nil
}
