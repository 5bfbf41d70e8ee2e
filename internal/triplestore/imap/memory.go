//spellchecker:words imap
package imap

import (
	"errors"
)

// Memory implements [HashMap] using a plain go map.
type Memory[Key comparable, Value any] struct {
	mp map[Key]Value
}

// MakeMemory makes a new memory instance with space for size elements.
func MakeMemory[Key comparable, Value any](size int) Memory[Key, Value] {
	return Memory[Key, Value]{
		mp: make(map[Key]Value, size),
	}
}

// IsNil checks if this memory has not been initialized, or has been closed.
func (ims Memory[Key, Value]) IsNil() bool {
	return ims.mp == nil
}

var errMemoryUninitialized = errors.New("map not initialized")

func (ims Memory[Key, Value]) Set(key Key, value Value) error {
	if ims.mp == nil {
		return errMemoryUninitialized
	}

	ims.mp[key] = value
	return nil
}

// Get returns the given value if it exists.
func (ims Memory[Key, Value]) Get(key Key) (Value, bool, error) {
	value, ok := ims.mp[key]
	return value, ok, nil
}

// GetZero returns the value associated with Key, or the zero value otherwise.
func (ims Memory[Key, Value]) GetZero(key Key) (Value, error) {
	return ims.mp[key], nil
}

func (ims Memory[Key, Value]) Has(key Key) (bool, error) {
	_, ok := ims.mp[key]
	return ok, nil
}

// Close closes this Memory, deleting all values.
func (ims *Memory[Key, Value]) Close() error {
	ims.mp = nil
	return nil
}

func (ims Memory[Key, Value]) Count() (uint64, error) {
	return uint64(len(ims.mp)), nil
}
