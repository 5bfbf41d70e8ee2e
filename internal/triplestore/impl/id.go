package impl

// cspell:words twiesing

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
)

// ID is the surrogate key of an interned Term.
// Not all IDs are valid, see [Valid].
//
// IDs are signed and drawn sparsely from [-KeyRange, -1] ∪ [1, KeyRange].
// The zero ID is never assigned, the index layer uses it to mean "any value".
type ID int64

// IDLen is the size of an encoded ID in bytes.
const IDLen = 8

// KeyRange is the default bound on the magnitude of a drawn ID.
const KeyRange int64 = 2_000_000_000

// Valid checks if this ID is valid.
func (id ID) Valid() bool {
	return id != 0
}

// Draw draws a random valid ID with magnitude at most keyRange from r.
// When keyRange is not positive, [KeyRange] is used.
func Draw(r *rand.Rand, keyRange int64) ID {
	if keyRange <= 0 {
		keyRange = KeyRange
	}
	value := r.Int64N(keyRange) + 1
	if r.IntN(2) == 0 {
		value = -value
	}
	return ID(value)
}

// String formats this id as a string.
// It is only intended for debugging, and should not be used for production code.
func (id ID) String() string {
	return fmt.Sprintf("ID(%d)", int64(id))
}

// signBit is flipped when encoding, so that encoded negative ids sort before positive ones.
const signBit = 1 << 63

// Encode encodes id using a big endian encoding into dest.
// dest must be of at least size [IDLen].
//
// Comparing two encoded ids using [bytes.Compare] produces the same result as [cmp.Compare] on the ids.
func (id ID) Encode(dest []byte) {
	_ = dest[IDLen-1] // boundary hint to compiler
	binary.BigEndian.PutUint64(dest, uint64(id)^signBit)
}

// Decode sets this id to be the values that has been decoded from src.
// src must be of at least size IDLen, or a runtime panic occurs.
func (id *ID) Decode(src []byte) {
	_ = src[IDLen-1] // boundary hint to compiler
	*id = ID(binary.BigEndian.Uint64(src) ^ signBit)
}

var errUnmarshal = errors.New("UnmarshalID: invalid length")

// MarshalID encodes value into a new slice of bytes.
func MarshalID(value ID) ([]byte, error) {
	dest := make([]byte, IDLen)
	value.Encode(dest)
	return dest, nil
}

// UnmarshalID behaves like [dest.Decode], but produces an error
// when there are insufficient number of bytes in src.
func UnmarshalID(dest *ID, src []byte) error {
	if len(src) < IDLen {
		return errUnmarshal
	}
	dest.Decode(src)
	return nil
}

