package impl

import (
	"bytes"
	"cmp"
	"fmt"
	"math/rand/v2"
	"testing"
)

func ExampleID() {
	// the zero id isn't valid
	var zero ID
	fmt.Println(zero)
	fmt.Println(zero.Valid())

	// any other id is, including negative ones
	fmt.Println(ID(-42))
	fmt.Println(ID(-42).Valid())

	// Output: ID(0)
	// false
	// ID(-42)
	// true
}

const (
	testDrawSeed  = 1000
	testDrawN     = 100_000
	testDrawRange = 7
)

func TestDraw(t *testing.T) {
	r := rand.New(rand.NewPCG(testDrawSeed, testDrawSeed))

	seen := make(map[ID]struct{})
	for range testDrawN {
		id := Draw(r, testDrawRange)
		if !id.Valid() {
			t.Fatal("Draw() returned the invalid id")
		}
		if id > ID(testDrawRange) || id < -ID(testDrawRange) {
			t.Fatalf("Draw() = %s out of range", id)
		}
		seen[id] = struct{}{}
	}

	// with this many draws every key should have come up
	if len(seen) != 2*testDrawRange {
		t.Errorf("Draw() produced %d distinct ids, want %d", len(seen), 2*testDrawRange)
	}
}

func TestDraw_DefaultRange(t *testing.T) {
	r := rand.New(rand.NewPCG(testDrawSeed, testDrawSeed))
	for range testDrawN {
		id := Draw(r, 0)
		if !id.Valid() || id > ID(KeyRange) || id < -ID(KeyRange) {
			t.Fatalf("Draw() = %s out of range", id)
		}
	}
}

// Test that encoded ids sort like the ids themselves.
func TestID_Encode(t *testing.T) {
	values := []ID{-ID(KeyRange), -1_000, -2, -1, 1, 2, 1_000, ID(KeyRange)}

	bytesI := make([]byte, IDLen)
	bytesJ := make([]byte, IDLen)

	for _, i := range values {
		i.Encode(bytesI)

		var decoded ID
		decoded.Decode(bytesI)
		if decoded != i {
			t.Errorf("Decode(Encode(%s)) = %s", i, decoded)
		}

		for _, j := range values {
			j.Encode(bytesJ)

			got := bytes.Compare(bytesI, bytesJ)
			want := cmp.Compare(i, j)
			if got != want {
				t.Errorf("bytes.Compare(%s, %s) = %d, want %d", i, j, got, want)
			}
		}
	}
}

func TestUnmarshalID(t *testing.T) {
	var id ID
	if err := UnmarshalID(&id, []byte{1, 2}); err == nil {
		t.Error("UnmarshalID() on short input did not fail")
	}

	src, _ := MarshalID(-17)
	if err := UnmarshalID(&id, src); err != nil {
		t.Fatalf("UnmarshalID() returned error %s", err)
	}
	if id != -17 {
		t.Errorf("UnmarshalID() = %s, want ID(-17)", id)
	}
}

func BenchmarkID_Draw(b *testing.B) {
	r := rand.New(rand.NewPCG(testDrawSeed, testDrawSeed))
	for range b.N {
		Draw(r, 0)
	}
}
