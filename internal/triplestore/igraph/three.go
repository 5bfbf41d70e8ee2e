package igraph

import "github.com/FAU-CDI/iomemory/internal/triplestore/impl"

// Set is the innermost level of a covering index.
// It records the presence of keys, and carries no payload.
type Set map[impl.ID]struct{}

// Two maps a level-2 key to the Set of level-3 keys.
type Two map[impl.ID]Set

// Three maps a level-1 key to the level-2 keys.
type Three map[impl.ID]Two

// Four is a covering index, mapping a context to its Three.
//
// A Four only ever contains non-empty levels:
// Delete removes any level that becomes empty.
type Four map[impl.ID]Three

// Has checks if (c, a, b, d) is contained in this index.
func (four Four) Has(c, a, b, d impl.ID) bool {
	_, ok := four[c][a][b][d]
	return ok
}

// Add inserts (c, a, b, d) into this index, creating any levels that do not yet exist.
// It reports if the entry was newly added.
func (four Four) Add(c, a, b, d impl.ID) (added bool) {
	three, ok := four[c]
	if !ok {
		three = make(Three)
		four[c] = three
	}

	two, ok := three[a]
	if !ok {
		two = make(Two)
		three[a] = two
	}

	set, ok := two[b]
	if !ok {
		set = make(Set, 1)
		two[b] = set
	}

	if _, ok := set[d]; ok {
		return false
	}
	set[d] = struct{}{}
	return true
}

// Delete removes (c, a, b, d) from this index, pruning any level that becomes empty.
// It reports if the entry existed.
func (four Four) Delete(c, a, b, d impl.ID) (deleted bool) {
	if !four.Has(c, a, b, d) {
		return false
	}

	three := four[c]
	two := three[a]
	set := two[b]

	delete(set, d)
	if len(set) > 0 {
		return true
	}

	delete(two, b)
	if len(two) > 0 {
		return true
	}

	delete(three, a)
	if len(three) > 0 {
		return true
	}

	delete(four, c)
	return true
}

// Walk calls yield for every entry (a, b, d) within context c that matches the given keys.
// An invalid key matches any key on its level.
//
// Bound keys are looked up directly, unbound keys are enumerated.
// Walk stops early and returns false once yield returns false.
func (four Four) Walk(c, a, b, d impl.ID, yield func(a, b, d impl.ID) bool) bool {
	three := four[c]
	if three == nil {
		return true
	}

	if a.Valid() {
		return three[a].walk(a, b, d, yield)
	}
	for ak, two := range three {
		if !two.walk(ak, b, d, yield) {
			return false
		}
	}
	return true
}

// walk implements walking the second and third level of a covering index, see Four.Walk.
func (two Two) walk(a, b, d impl.ID, yield func(a, b, d impl.ID) bool) bool {
	if b.Valid() {
		return two[b].walk(a, b, d, yield)
	}
	for bk, set := range two {
		if !set.walk(a, bk, d, yield) {
			return false
		}
	}
	return true
}

// walk implements walking the third level of a covering index, see Four.Walk.
func (set Set) walk(a, b, d impl.ID, yield func(a, b, d impl.ID) bool) bool {
	if d.Valid() {
		if _, ok := set[d]; ok {
			return yield(a, b, d)
		}
		return true
	}
	for dk := range set {
		if !yield(a, b, dk) {
			return false
		}
	}
	return true
}
