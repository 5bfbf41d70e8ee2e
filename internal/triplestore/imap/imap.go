//spellchecker:words imap
package imap

//spellchecker:words errors math rand github iomemory internal triplestore impl
import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/FAU-CDI/iomemory/internal/triplestore/impl"
)

// DefaultMaxDraws is the default number of candidate ids drawn for a new term.
const DefaultMaxDraws = 64

// IMap holds forward and reverse mappings between Terms and IDs.
//
// IDs are drawn at random, so that no shared counter is needed.
// Mappings are never removed: once a term has an id, it keeps it until the IMap is closed.
// This avoids reference counting at the cost of memory for terms no longer in use.
//
// An IMap may not be accessed concurrently.
//
// The zero map is not ready for use; it should be initialized using a call to [Reset].
type IMap struct {
	forward HashMap[impl.Term, impl.ID] // mapping from terms to their ids
	reverse HashMap[impl.ID, impl.Term] // mapping from ids back to their terms

	// Source is used to draw new ids.
	// When nil, a randomly seeded source is created on [Reset].
	Source *rand.Rand

	// KeyRange bounds the magnitude of drawn ids.
	// When zero, [impl.KeyRange] is used.
	KeyRange int64

	// MaxDraws is the number of candidate ids tried for a new term before giving up.
	// When zero, [DefaultMaxDraws] is used.
	MaxDraws int
}

var (
	// ErrExhausted is returned when no unused id could be found for a new term.
	ErrExhausted = errors.New("IMap: key space exhausted")

	// ErrWildcard is returned when attempting to intern the wildcard term.
	ErrWildcard = errors.New("IMap: cannot intern wildcard")

	// ErrClosed is returned when using an IMap that was not reset, or has been closed.
	ErrClosed = errors.New("IMap: closed")
)

// Reset resets this IMap to be empty, closing any previously opened storages.
func (mp *IMap) Reset(engine Map) (err error) {
	if err := mp.Close(); err != nil {
		return fmt.Errorf("failed to close map: %w", err)
	}

	var closers []io.Closer
	defer func() {
		if err == nil {
			return
		}
		for _, closer := range closers {
			if e2 := closer.Close(); e2 != nil {
				err = errors.Join(err, fmt.Errorf("failed to close storage: %w", e2))
			}
		}
	}()

	forward, err := engine.Forward()
	if err != nil {
		return fmt.Errorf("failed to create forward storage: %w", err)
	}
	closers = append(closers, forward)

	reverse, err := engine.Reverse()
	if err != nil {
		return fmt.Errorf("failed to create reverse storage: %w", err)
	}

	mp.forward, mp.reverse = forward, reverse
	if mp.Source == nil {
		mp.Source = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return nil
}

// Add inserts term into this IMap and returns the corresponding id.
// When term already exists in this IMap, returns the existing id.
func (mp *IMap) Add(term impl.Term) (id impl.ID, err error) {
	id, _, err = mp.AddNew(term)
	return
}

// AddNew behaves like Add, except additionally returns a boolean indicating if the returned id existed previously.
func (mp *IMap) AddNew(term impl.Term) (id impl.ID, old bool, err error) {
	if term == nil {
		return id, false, ErrWildcard
	}

	id, old, err = mp.Get(term)
	if err != nil || old {
		return id, old, err
	}

	id, err = mp.draw()
	if err != nil {
		return id, false, err
	}

	// store mappings in both directions
	if err := mp.forward.Set(term, id); err != nil {
		return id, false, fmt.Errorf("failed to store forward mapping: %w", err)
	}
	if err := mp.reverse.Set(id, term); err != nil {
		return id, false, fmt.Errorf("failed to store reverse mapping: %w", err)
	}
	return id, false, nil
}

// draw draws an id that is not yet in use.
func (mp *IMap) draw() (impl.ID, error) {
	attempts := mp.MaxDraws
	if attempts <= 0 {
		attempts = DefaultMaxDraws
	}

	for range attempts {
		id := impl.Draw(mp.Source, mp.KeyRange)

		used, err := mp.reverse.Has(id)
		if err != nil {
			return 0, fmt.Errorf("failed to check id: %w", err)
		}
		if !used {
			return id, nil
		}
	}

	return 0, ErrExhausted
}

// Get returns the id of the given term.
// When the term has no associated mapping returns ok = false and does not modify the state.
func (mp *IMap) Get(term impl.Term) (id impl.ID, ok bool, err error) {
	if mp.forward == nil {
		return id, false, ErrClosed
	}
	if term == nil {
		return id, false, nil
	}
	return mp.forward.Get(term)
}

// Reverse returns the term corresponding to the given id.
// When id is not contained in this map, nil is returned.
func (mp *IMap) Reverse(id impl.ID) (impl.Term, error) {
	if mp.reverse == nil {
		return nil, ErrClosed
	}
	return mp.reverse.GetZero(id)
}

// Count returns the number of terms in this map.
func (mp *IMap) Count() (uint64, error) {
	if mp.reverse == nil {
		return 0, ErrClosed
	}
	return mp.reverse.Count()
}

// Close closes any storages related to this IMap.
//
// Calling close multiple times results in err = nil.
func (mp *IMap) Close() error {
	var errs [2]error

	if mp.forward != nil {
		errs[0] = mp.forward.Close()
		mp.forward = nil
	}
	if mp.reverse != nil {
		errs[1] = mp.reverse.Close()
		mp.reverse = nil
	}

	return errors.Join(errs[:]...)
}
