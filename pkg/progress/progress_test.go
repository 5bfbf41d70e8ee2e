//spellchecker:words progress
package progress_test

//spellchecker:words strings github iomemory progress
import (
	"fmt"
	"io"
	"strings"

	"github.com/FAU-CDI/iomemory/pkg/progress"
)

func ExampleReader() {
	source := strings.NewReader("hello world")
	var builder strings.Builder

	reader := &progress.Reader{
		Reader: source,

		Progress: &progress.Rewritable{
			FlushInterval: 0,
			Writer:        &builder,
		},
	}

	_, _ = reader.Read(make([]byte, 5))
	_, _ = reader.Read(make([]byte, 6))

	// replace all the '\r's with '\n's for testing
	fmt.Println(strings.ReplaceAll(builder.String(), "\r", "\n"))

	// Output: Read 5 B
	// Read 11 B
}

func ExampleWriter() {
	var builder strings.Builder

	writer := &progress.Writer{
		Writer: io.Discard,

		Progress: &progress.Rewritable{
			FlushInterval: 0,
			Writer:        &builder,
		},
	}

	_, _ = writer.Write([]byte("hello"))
	_, _ = writer.Write([]byte(" world"))

	// replace all the '\r's with '\n's for testing
	fmt.Println(strings.ReplaceAll(builder.String(), "\r", "\n"))

	// Output: Wrote 5 B
	// Wrote 11 B
}

func ExampleCounter() {
	var builder strings.Builder

	counter := &progress.Counter{
		Noun: "triples",

		Progress: &progress.Rewritable{
			FlushInterval: 0,
			Writer:        &builder,
		},
	}

	counter.Add(999)
	counter.Add(1)
	counter.Add(1_000_000)

	// replace all the '\r's with '\n's for testing
	fmt.Println(strings.ReplaceAll(builder.String(), "\r", "\n"))

	// Output: 999 triples
	// 1,000 triples
	// 1,001,000 triples
}

func ExampleRewritable() {
	var builder strings.Builder
	rewritable := &progress.Rewritable{Writer: &builder}

	rewritable.Write("a long line")
	rewritable.Write("short")
	rewritable.Close()

	fmt.Printf("%q\n", builder.String())

	// a nil rewritable discards everything
	var discard *progress.Rewritable
	discard.Write("ignored")
	discard.Close()

	// Output: "\ra long line\rshort      \r           \r"
}
