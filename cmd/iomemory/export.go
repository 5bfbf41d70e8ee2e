package main

//spellchecker:words bufio database errors github iomemory internal exporter loader status progress glebarez sqlite mysql
import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/FAU-CDI/iomemory"
	"github.com/FAU-CDI/iomemory/internal/exporter"
	"github.com/FAU-CDI/iomemory/internal/loader"
	"github.com/FAU-CDI/iomemory/internal/status"
	"github.com/FAU-CDI/iomemory/pkg/progress"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/go-sql-driver/mysql"
)

// cspell:words nquads

const sqliteMaxQueryVar = 32766 // see https://www.sqlite.org/limits.html

// exportFunc exports a loaded store.
type exportFunc func(store *iomemory.Store, st *status.Status) error

// selectExport returns the export selected by flags.
// When no export was selected, returns nil.
func selectExport() (exportFunc, error) {
	var selected []exportFunc
	if query {
		selected = append(selected, doQuery)
	}
	if nquadsPath != "" {
		selected = append(selected, doNQuads)
	}
	if turtlePath != "" {
		selected = append(selected, doTurtle)
	}
	if sqlite != "" {
		selected = append(selected, func(store *iomemory.Store, st *status.Status) error {
			return doSQL(store, "sqlite", sqlite, sqliteMaxQueryVar, st)
		})
	}
	if mysql != "" {
		selected = append(selected, func(store *iomemory.Store, st *status.Status) error {
			return doSQL(store, "mysql", mysql, exporter.DefaultMaxQueryVar, st)
		})
	}

	switch len(selected) {
	case 0:
		return nil, nil
	case 1:
		return selected[0], nil
	default:
		return nil, errMultipleExports
	}
}

// pattern returns the pattern selected by flags.
func pattern() iomemory.Pattern {
	return iomemory.Pattern{
		Subject:   loader.ParseTerm(subject),
		Predicate: loader.ParseTerm(predicate),
		Object:    loader.ParseTerm(object),
		Context:   loader.ParseTerm(graph),
	}
}

// exportFile runs an exporter writing to a buffered file at path.
func exportFile(path string, stage status.Stage, store *iomemory.Store, st *status.Status, create func(w *bufio.Writer) exporter.Exporter) (e error) {
	file, err := os.Create(path) // #nosec G304 -- explicit parameter
	if err != nil {
		return fmt.Errorf("failed to create export: %w", err)
	}
	defer func() {
		if e2 := file.Close(); e2 != nil {
			e = errors.Join(e, fmt.Errorf("failed to close export: %w", e2))
		}
	}()

	buffer := bufio.NewWriter(&progress.Writer{Writer: file, Progress: st.Rewritable()})
	export := create(buffer)

	err = exporter.Export(store, pattern(), export, stage, st)
	if e2 := export.Close(); e2 != nil {
		err = errors.Join(err, e2)
	}
	if err != nil {
		return err
	}

	if err := buffer.Flush(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return nil
}

// doQuery writes matching triples to standard output, labeling every context.
func doQuery(store *iomemory.Store, st *status.Status) error {
	buffer := bufio.NewWriter(os.Stdout)

	export := &exporter.NQuads{Writer: buffer}
	err := exporter.Export(store, pattern(), export, status.StageQuery, st)
	if e2 := export.Close(); e2 != nil {
		err = errors.Join(err, e2)
	}
	if e2 := buffer.Flush(); e2 != nil {
		err = errors.Join(err, e2)
	}
	return err
}

func doNQuads(store *iomemory.Store, st *status.Status) error {
	return exportFile(nquadsPath, status.StageExportNQuads, store, st, func(w *bufio.Writer) exporter.Exporter {
		return &exporter.NQuads{Writer: w, Default: store.DefaultContext()}
	})
}

func doTurtle(store *iomemory.Store, st *status.Status) error {
	if graph == "" {
		// turtle holds a single context only
		graph = store.DefaultContext().String()
	}
	return exportFile(turtlePath, status.StageExportTurtle, store, st, func(w *bufio.Writer) exporter.Exporter {
		return &exporter.Turtle{Writer: w, Store: store}
	})
}

func doSQL(store *iomemory.Store, driver, dsn string, maxQueryVar int, st *status.Status) (e error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", driver, err)
	}

	export := &exporter.SQL{
		DB:          db,
		Table:       sqlTable,
		BatchSize:   sqlBatchSize,
		MaxQueryVar: maxQueryVar,
		Progress:    st.Rewritable(),
	}
	defer func() {
		if e2 := export.Close(); e2 != nil {
			e = errors.Join(e, fmt.Errorf("failed to close %s: %w", driver, e2))
		}
	}()

	return exporter.Export(store, pattern(), export, status.StageExportSQL, st)
}
