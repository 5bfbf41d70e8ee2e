//spellchecker:words imap
package imap

//spellchecker:words encoding errors path filepath github iomemory internal triplestore impl syndtr goleveldb leveldb cayleygraph
import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FAU-CDI/iomemory/internal/triplestore/impl"
	"github.com/cayleygraph/quad"
	"github.com/syndtr/goleveldb/leveldb"
)

// DiskMap represents an engine that keeps the interning tables in leveldb databases below Path.
//
// Any data found at Path is wiped when the storages are created.
// A DiskMap trades lookup speed for a smaller heap; it does not make a store durable.
//
// Terms are encoded using gob.
// Values of type [quad.Time] cannot be encoded.
type DiskMap struct {
	Path string
}

var (
	_ Map = (*DiskMap)(nil)
)

func init() {
	gob.Register(quad.IRI(""))
	gob.Register(quad.BNode(""))
	gob.Register(quad.String(""))
	gob.Register(quad.LangString{})
	gob.Register(quad.TypedString{})
	gob.Register(quad.Int(0))
	gob.Register(quad.Float(0))
	gob.Register(quad.Bool(false))
}

// MarshalTerm encodes a term into bytes.
// Encoding the same term twice results in identical bytes.
func MarshalTerm(term impl.Term) ([]byte, error) {
	if term == nil {
		return nil, ErrWildcard
	}

	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(&term); err != nil {
		return nil, fmt.Errorf("failed to encode term: %w", err)
	}
	return buffer.Bytes(), nil
}

// UnmarshalTerm decodes a term encoded with [MarshalTerm].
func UnmarshalTerm(dest *impl.Term, src []byte) error {
	if err := gob.NewDecoder(bytes.NewReader(src)).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode term: %w", err)
	}
	return nil
}

func (de DiskMap) Forward() (HashMap[impl.Term, impl.ID], error) {
	forward := filepath.Join(de.Path, "forward.leveldb")

	ds, err := NewDiskStorage[impl.Term, impl.ID](forward)
	if err != nil {
		return nil, err
	}

	ds.MarshalKey = MarshalTerm
	ds.UnmarshalKey = UnmarshalTerm

	ds.MarshalValue = impl.MarshalID
	ds.UnmarshalValue = impl.UnmarshalID

	return ds, nil
}

func (de DiskMap) Reverse() (HashMap[impl.ID, impl.Term], error) {
	reverse := filepath.Join(de.Path, "reverse.leveldb")

	ds, err := NewDiskStorage[impl.ID, impl.Term](reverse)
	if err != nil {
		return nil, err
	}

	ds.MarshalKey = impl.MarshalID
	ds.UnmarshalKey = impl.UnmarshalID

	ds.MarshalValue = MarshalTerm
	ds.UnmarshalValue = UnmarshalTerm

	return ds, nil
}

var errNoCodec = errors.New("DiskStorage: no codec configured")

// NewDiskStorage creates a new disk-based storage at the given path.
// If the path already exists, it is deleted first.
//
// The returned storage has no codecs; the caller must set the Marshal and Unmarshal functions.
func NewDiskStorage[Key comparable, Value any](path string) (*DiskStorage[Key, Value], error) {
	if _, err := os.Stat(path); err == nil {
		if err := os.RemoveAll(path); err != nil {
			return nil, fmt.Errorf("failed to cleanup path: %w", err)
		}
	}

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database file: %w", err)
	}

	noKey := func(dest *Key, src []byte) error { return errNoCodec }
	noValue := func(dest *Value, src []byte) error { return errNoCodec }

	storage := &DiskStorage[Key, Value]{
		DB: db,

		MarshalKey:     func(Key) ([]byte, error) { return nil, errNoCodec },
		UnmarshalKey:   noKey,
		MarshalValue:   func(Value) ([]byte, error) { return nil, errNoCodec },
		UnmarshalValue: noValue,
	}
	return storage, nil
}

// DiskStorage implements HashMap inside a leveldb database.
type DiskStorage[Key comparable, Value any] struct {
	DB *leveldb.DB

	MarshalKey     func(key Key) ([]byte, error)
	UnmarshalKey   func(dest *Key, src []byte) error
	MarshalValue   func(value Value) ([]byte, error)
	UnmarshalValue func(dest *Value, src []byte) error
}

func (ds *DiskStorage[Key, Value]) Set(key Key, value Value) error {
	keyB, err := ds.MarshalKey(key)
	if err != nil {
		return fmt.Errorf("failed to marshal key: %w", err)
	}
	valueB, err := ds.MarshalValue(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := ds.DB.Put(keyB, valueB, nil); err != nil {
		return fmt.Errorf("failed to set value for key: %w", err)
	}
	return nil
}

// Get returns the given value if it exists.
func (ds *DiskStorage[Key, Value]) Get(key Key) (v Value, b bool, err error) {
	keyB, err := ds.MarshalKey(key)
	if err != nil {
		return v, b, fmt.Errorf("failed to marshal key: %w", err)
	}

	valueB, err := ds.DB.Get(keyB, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, b, fmt.Errorf("failed to get key from database: %w", err)
	}

	if err := ds.UnmarshalValue(&v, valueB); err != nil {
		return v, b, fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return v, true, nil
}

// GetZero returns the value associated with Key, or the zero value otherwise.
func (ds *DiskStorage[Key, Value]) GetZero(key Key) (Value, error) {
	value, _, err := ds.Get(key)
	return value, err
}

func (ds *DiskStorage[Key, Value]) Has(key Key) (bool, error) {
	keyB, err := ds.MarshalKey(key)
	if err != nil {
		return false, fmt.Errorf("failed to marshal key: %w", err)
	}

	ok, err := ds.DB.Has(keyB, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check database for key: %w", err)
	}
	return ok, nil
}

func (ds *DiskStorage[Key, Value]) Close() error {
	var err error

	if ds.DB != nil {
		err = ds.DB.Close()
	}
	ds.DB = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Count returns the number of objects in this DiskStorage.
func (ds *DiskStorage[Key, Value]) Count() (count uint64, err error) {
	it := ds.DB.NewIterator(nil, nil)
	defer it.Release()

	for it.Next() {
		count++
	}
	if err := it.Error(); err != nil {
		return 0, fmt.Errorf("failed to count database: %w", err)
	}
	return count, nil
}
