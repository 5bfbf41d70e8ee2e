// Package progress provides Reader, Writer and Counter
package progress

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Reader consistently writes the number of bytes read to Progress.
type Reader struct {
	io.Reader       // Reader to read from
	Bytes     int64 // total number of bytes read (so far)

	Progress *Rewritable // may be nil
}

func (cr *Reader) Read(bytes []byte) (int, error) {
	count, err := cr.Reader.Read(bytes)
	cr.Bytes += int64(count)
	cr.Progress.Write(fmt.Sprintf("Read %s", humanize.Bytes(uint64(cr.Bytes))))
	return count, err
}

// Writer consistently writes the number of bytes written to Progress.
type Writer struct {
	io.Writer       // Writer to write to
	Bytes     int64 // Total number of bytes written

	Progress *Rewritable // may be nil
}

func (cw *Writer) Write(bytes []byte) (int, error) {
	cw.Bytes += int64(len(bytes))
	cw.Progress.Write(fmt.Sprintf("Wrote %s", humanize.Bytes(uint64(cw.Bytes))))
	return cw.Writer.Write(bytes)
}

// DefaultFlushInterval is a reasonable default flush interval
const DefaultFlushInterval = time.Second / 30

// Rewritable represents a single line of output that is rewritten in place.
// A nil Rewritable discards all output.
type Rewritable struct {
	Writer io.Writer

	FlushInterval  time.Duration // minimum time between flushes of the progress
	lastFlush      time.Time     // last time we flushed
	longestContent int           // longest content ever flushed
	content        string        // current content
}

// Write replaces the content of the line with value.
// The line is only flushed when FlushInterval has passed since the last flush.
func (rw *Rewritable) Write(value string) {
	if rw == nil {
		return
	}
	rw.content = value
	rw.Flush(false)
}

// Flush writes the current content of the line to the underlying writer.
func (rw *Rewritable) Flush(force bool) {
	if rw == nil || !(force || time.Since(rw.lastFlush) > rw.FlushInterval) {
		return
	}

	// determine the longest string we ever flushed to the output
	if len(rw.content) >= rw.longestContent {
		rw.longestContent = len(rw.content)
	}

	// add a blanking space behind the content
	blank := strings.Repeat(" ", rw.longestContent-len(rw.content))
	fmt.Fprintf(rw.Writer, "\r%s%s", rw.content, blank)

	rw.lastFlush = time.Now()
}

// Close blanks the line, and moves back to its start.
func (rw *Rewritable) Close() {
	if rw == nil {
		return
	}
	rw.content = ""
	rw.Flush(true)
	_, _ = rw.Writer.Write([]byte("\r"))
}

// Counter counts items, and writes the count to Progress.
type Counter struct {
	Noun  string // plural noun describing the items being counted
	Count int64  // number of items counted so far

	Progress *Rewritable // may be nil
}

// Add adds delta to the number of items.
func (counter *Counter) Add(delta int64) {
	counter.Count += delta
	counter.Progress.Write(counter.String())
}

func (counter *Counter) String() string {
	return fmt.Sprintf("%s %s", humanize.Comma(counter.Count), counter.Noun)
}
