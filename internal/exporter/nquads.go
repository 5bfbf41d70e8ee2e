package exporter

//spellchecker:words github iomemory cayleygraph nquads
import (
	"io"

	"github.com/FAU-CDI/iomemory"
	"github.com/cayleygraph/quad/nquads"
)

// cspell:words nquads

// NQuads writes triples as N-Quads.
//
// Triples in the default context are written without a label,
// so that reading the output into a store places them into its default context.
type NQuads struct {
	Writer  io.Writer     // Writer to write to
	Default iomemory.Term // context to write without a label, may be nil

	writer *nquads.Writer
}

func (nq *NQuads) Begin(context iomemory.Term) error {
	if nq.writer == nil {
		nq.writer = nquads.NewWriter(nq.Writer)
	}
	return nil
}

func (nq *NQuads) Add(triple iomemory.Triple) error {
	if triple.Context == nq.Default {
		triple.Context = nil
	}
	return nq.writer.WriteQuad(triple.Quad())
}

func (nq *NQuads) End(context iomemory.Term) error {
	return nil
}

// Close flushes any pending output.
// It does not close the underlying writer.
func (nq *NQuads) Close() error {
	if nq.writer == nil {
		return nil
	}
	return nq.writer.Close()
}
