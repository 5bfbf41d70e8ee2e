//spellchecker:words imap
package imap

import "github.com/FAU-CDI/iomemory/internal/triplestore/impl"

// Map represents the backend of an IMap and creates appropriate key-value stores.
type Map interface {
	Forward() (HashMap[impl.Term, impl.ID], error)
	Reverse() (HashMap[impl.ID, impl.Term], error)
}

// HashMap is something that stores key-value pairs.
type HashMap[Key comparable, Value any] interface {
	// Close closes this store
	Close() error

	// Set sets the given key to the given value
	Set(key Key, value Value) error

	// Get retrieves the value for Key from the given storage.
	// The second value indicates if the value was found.
	Get(key Key) (Value, bool, error)

	// GetZero is like Get, but when the value does not exist returns the zero value
	GetZero(key Key) (Value, error)

	// Has is like Get, but returns only the second value.
	Has(key Key) (bool, error)

	// Count counts the number of elements in this store
	Count() (uint64, error)
}
