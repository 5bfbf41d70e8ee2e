package iomemory

//spellchecker:words iter maps slices github cayleygraph
import (
	"iter"
	"maps"
	"slices"

	"github.com/cayleygraph/quad"
)

// Bind binds prefix to the namespace ns.
//
// Rebinding overwrites the namespace of prefix and the prefix of ns.
// Other bindings of the previous namespace or prefix are left as they are.
func (store *Store) Bind(prefix string, ns quad.IRI) {
	store.prefixes[prefix] = ns
	store.namespaces[ns] = prefix
}

// Namespace returns the namespace bound to prefix.
func (store *Store) Namespace(prefix string) (ns quad.IRI, ok bool) {
	ns, ok = store.prefixes[prefix]
	return
}

// Prefix returns the prefix bound to the namespace ns.
func (store *Store) Prefix(ns quad.IRI) (prefix string, ok bool) {
	prefix, ok = store.namespaces[ns]
	return
}

// Namespaces returns a sequence of (prefix, namespace) bindings, ordered by prefix.
func (store *Store) Namespaces() iter.Seq2[string, quad.IRI] {
	return func(yield func(string, quad.IRI) bool) {
		for _, prefix := range slices.Sorted(maps.Keys(store.prefixes)) {
			if !yield(prefix, store.prefixes[prefix]) {
				return
			}
		}
	}
}
