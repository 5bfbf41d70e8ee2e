// Package status reports the stages a command goes through.
package status

// spellchecker:words rewritable

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/FAU-CDI/iomemory/pkg/progress"
	"github.com/tkw1536/pkglib/perf"
)

// Status tracks the stage a command is in, and logs to an underlying writer.
//
// Status may be read concurrently, but only one stage may run at a time.
// A nil Status is valid and discards everything.
type Status struct {
	closed atomic.Bool

	logger     *slog.Logger
	rewritable *progress.Rewritable

	m       sync.RWMutex  // protects the fields below
	running StageStats    // stage currently running, if any
	first   perf.Snapshot // start of the first stage
	last    perf.Snapshot // end of the most recent stage
}

// New creates a new status writing to w.
// When debug is true, debug messages are logged as well.
// A nil w creates a status that does not log.
func New(w io.Writer, debug bool) *Status {
	if w == nil {
		return &Status{}
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return &Status{
		logger:     slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
		rewritable: &progress.Rewritable{Writer: w, FlushInterval: progress.DefaultFlushInterval},
	}
}

// Rewritable returns the line that progress of the running stage is written to.
// It is reset whenever a stage ends.
func (st *Status) Rewritable() *progress.Rewritable {
	if st == nil {
		return nil
	}
	return st.rewritable
}

// Progress is a snapshot of the running stage.
type Progress struct {
	Done bool // all stages have completed

	Stage          Stage
	Current, Total int
}

// Progress returns a snapshot of the running stage.
func (st *Status) Progress() Progress {
	if st.Done() {
		return Progress{Done: true}
	}

	st.m.RLock()
	progress := Progress{
		Stage:   st.running.Stage,
		Current: st.running.Current,
		Total:   st.running.Total,
	}
	st.m.RUnlock()

	// closed while we held the lock
	if st.Done() {
		return Progress{Done: true}
	}
	return progress
}

// Close marks all stages as completed.
// Further calls to DoStage or SetCT only run or discard their arguments.
func (st *Status) Close() {
	if st == nil {
		return
	}
	st.closed.Store(true)
}

// Done reports if Close has been called.
func (st *Status) Done() bool {
	return st == nil || st.closed.Load()
}

// Log logs an informational message with key, value pairs.
func (st *Status) Log(message string, fields ...any) {
	if st == nil || st.logger == nil {
		return
	}
	st.logger.Info(message, fields...)
}

// LogDebug logs a debug message with key, value pairs.
// It is only written when the status was created in debug mode.
func (st *Status) LogDebug(message string, fields ...any) {
	if st == nil || st.logger == nil {
		return
	}
	st.logger.Debug(message, fields...)
}

// LogError logs err along with a message and key, value pairs.
func (st *Status) LogError(message string, err error, fields ...any) {
	if st == nil || st.logger == nil {
		return
	}
	st.logger.Error("FAILED "+message, append([]any{"err", err}, fields...)...)
}

// LogFatal is like LogError, but exits the program with code 1 afterwards.
func (st *Status) LogFatal(message string, err error) {
	st.LogError(message, err)
	os.Exit(1)
}

// Diff returns the resources used from the start of the first to the end of the last stage.
// A nil status, or one without any completed stage, returns the zero diff.
func (st *Status) Diff() perf.Diff {
	if st == nil {
		return perf.Diff{}
	}

	st.m.RLock()
	defer st.m.RUnlock()

	if st.first.Time.IsZero() || st.last.Time.IsZero() {
		return perf.Diff{}
	}
	return st.last.Sub(st.first)
}

// DoStage runs f as the given stage, logging its start and end.
// An error returned by f is logged and returned.
//
// If st is nil or done, f is called directly.
func (st *Status) DoStage(stage Stage, f func() error) error {
	if st.Done() {
		return f()
	}

	st.begin(stage)
	err := f()
	st.finish()

	if err != nil {
		st.LogError("failed stage", err, "stage", stage)
	}
	return err
}

// begin marks stage as running.
func (st *Status) begin(stage Stage) {
	st.m.Lock()
	defer st.m.Unlock()

	st.running = StageStats{Stage: stage, Start: perf.Now()}
	if st.first.Time.IsZero() {
		st.first = st.running.Start
	}

	if st.logger != nil {
		st.logger.Info("start", "stage", stage)
	}
}

// finish ends the running stage, and logs what it did.
func (st *Status) finish() {
	st.m.Lock()
	defer st.m.Unlock()

	stats := st.running
	stats.End = perf.Now()
	st.last = stats.End
	st.running = StageStats{}

	if st.rewritable != nil {
		st.rewritable.Flush(true)
		st.rewritable.Close()
	}

	if st.logger == nil {
		return
	}
	if stats.Current == 0 && stats.Total == 0 {
		st.logger.Info("end", "stage", stats.Stage, "took", stats.Diff())
		return
	}
	st.logger.Info("end", "stage", stats.Stage, "took", stats.Diff(), "current", stats.Current, "total", stats.Total)
}

// SetCT records that current out of total items of the running stage are done.
// A total of 0 means the total is not known.
func (st *Status) SetCT(current, total int) {
	if st.Done() {
		return
	}

	st.m.Lock()
	st.running.Current = current
	st.running.Total = total
	line := st.running.Progress()
	st.m.Unlock()

	if st.rewritable != nil && line != "" {
		st.rewritable.Write(line)
	}
}

// StageStats describes a single stage.
type StageStats struct {
	Stage      Stage
	Start, End perf.Snapshot

	Current, Total int
}

// Progress formats the progress of the stage for humans.
// A stage with an unknown total only reports the current count.
func (ss StageStats) Progress() string {
	switch {
	case ss.Total == 0 && ss.Current == 0:
		return ""
	case ss.Current < ss.Total:
		return fmt.Sprintf("%s: %d/%d", string(ss.Stage), ss.Current, ss.Total)
	default:
		return fmt.Sprintf("%s: %d", string(ss.Stage), ss.Current)
	}
}

// Diff returns the resources used by the stage.
func (ss StageStats) Diff() perf.Diff {
	return ss.End.Sub(ss.Start)
}

// Stage names a stage of a command.
type Stage string

const (
	StageInitial      Stage = ""
	StageLoad         Stage = "load"
	StageQuery        Stage = "query"
	StageExportNQuads Stage = "export/nquads"
	StageExportTurtle Stage = "export/turtle"
	StageExportSQL    Stage = "export/sql"
	StageServe        Stage = "serve"
)
