//spellchecker:words imap
package imap_test

//spellchecker:words testing github iomemory internal triplestore imap impl cayleygraph
import (
	"testing"

	"github.com/FAU-CDI/iomemory/internal/triplestore/imap"
	"github.com/FAU-CDI/iomemory/internal/triplestore/impl"
	"github.com/cayleygraph/quad"
)

func TestDiskMap(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mapTest(t, imap.DiskMap{
		Path: dir,
	}, 1000)
}

func TestMarshalTerm(t *testing.T) {
	t.Parallel()

	terms := []impl.Term{
		quad.IRI("http://example.com/a"),
		quad.BNode("b0"),
		quad.String("plain"),
		quad.LangString{Value: "hallo", Lang: "de"},
		quad.TypedString{Value: "42", Type: "http://www.w3.org/2001/XMLSchema#integer"},
		quad.Int(-7),
		quad.Float(1.5),
		quad.Bool(true),
	}

	for _, term := range terms {
		src, err := imap.MarshalTerm(term)
		if err != nil {
			t.Fatalf("MarshalTerm(%v) returned error %s", term, err)
		}

		var got impl.Term
		if err := imap.UnmarshalTerm(&got, src); err != nil {
			t.Fatalf("UnmarshalTerm() returned error %s", err)
		}
		if got != term {
			t.Errorf("UnmarshalTerm(MarshalTerm(%v)) = %v", term, got)
		}
	}

	if _, err := imap.MarshalTerm(impl.Any); err == nil {
		t.Error("MarshalTerm(Any) did not fail")
	}
}
