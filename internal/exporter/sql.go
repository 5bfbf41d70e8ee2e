package exporter

//spellchecker:words database errors github iomemory progress cayleygraph huandu sqlbuilder
import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/FAU-CDI/iomemory"
	"github.com/FAU-CDI/iomemory/pkg/progress"
	"github.com/cayleygraph/quad"
	"github.com/huandu/go-sqlbuilder"
)

// SQL implements an exporter for storing triples inside an sql database.
//
// All triples are written into a single table, with one row per triple.
// Term columns hold the N-Quads form of each term; the value column holds the plain value of the object.
type SQL struct {
	DB          *sql.DB
	Table       string // name of the table to create, defaults to DefaultTable
	BatchSize   int    // number of rows to insert at once
	MaxQueryVar int    // Maximum number of query variables (overrides BatchSize), defaults to DefaultMaxQueryVar

	Progress *progress.Rewritable // receives the number of rows written, may be nil

	created bool
	batch   [][]any
	counter progress.Counter
}

const (
	// DefaultTable is the default name of the table created by SQL.
	DefaultTable = "triples"

	// DefaultMaxQueryVar is the default maximum number of query variables, see https://www.sqlite.org/limits.html.
	DefaultMaxQueryVar = 999
)

const (
	subjectColumn   = "subject"
	predicateColumn = "predicate"
	objectColumn    = "object"
	valueColumn     = "value"
	languageColumn  = "language"
	datatypeColumn  = "datatype"
	contextColumn   = "context"
)

var columns = []string{subjectColumn, predicateColumn, objectColumn, valueColumn, languageColumn, datatypeColumn, contextColumn}

var (
	nullString               sql.NullString
	errInsufficientQueryVars = errors.New("insufficient query variables")
)

// table returns the name of the table to write to.
func (sql *SQL) table() string {
	if sql.Table == "" {
		return DefaultTable
	}
	return sql.Table
}

// exec executes an sql query
func (sql *SQL) exec(query string, args []any) (err error) {
	_, err = sql.DB.Exec(query, args...)
	return
}

// execInsert executes an insert into the given table, the given columns, and the given values.
// When this would exceed limits on maximum number of query variables, multiple inserts are executed.
func (sql *SQL) execInsert(table string, columns []string, values [][]any) error {
	// nothing to insert!
	if len(values) == 0 {
		return nil
	}

	// determine the chunk size based on total number of query variables
	maxQueryVar := sql.MaxQueryVar
	if maxQueryVar <= 0 {
		maxQueryVar = DefaultMaxQueryVar
	}
	chunkSize := maxQueryVar / len(columns)
	if chunkSize == 0 {
		return errInsufficientQueryVars
	}

	// maybe the user requested an even smaller batch size!
	if sql.BatchSize > 0 && sql.BatchSize < chunkSize {
		chunkSize = sql.BatchSize
	}

	for i := 0; i < len(values); i += chunkSize {
		insert := sqlbuilder.InsertInto(table)
		insert.Cols(columns...)

		chunkEnd := min(i+chunkSize, len(values))
		for _, v := range values[i:chunkEnd] {
			insert.Values(v...)
		}

		if err := sql.exec(insert.Build()); err != nil {
			return err
		}
	}

	return nil
}

// Begin creates the table when it is called for the first time.
// An existing table of the same name is dropped.
func (sql *SQL) Begin(context iomemory.Term) error {
	if sql.created {
		return nil
	}

	sql.counter = progress.Counter{Noun: "rows", Progress: sql.Progress}

	if err := sql.exec("DROP TABLE IF EXISTS "+sql.table()+";", nil); err != nil {
		return fmt.Errorf("failed to drop table: %w", err)
	}

	table := sqlbuilder.CreateTable(sql.table()).IfNotExists()
	table.Define(subjectColumn, "TEXT", "NOT NULL")
	table.Define(predicateColumn, "TEXT", "NOT NULL")
	table.Define(objectColumn, "TEXT", "NOT NULL")
	table.Define(valueColumn, "TEXT", "NOT NULL")
	table.Define(languageColumn, "TEXT")
	table.Define(datatypeColumn, "TEXT")
	table.Define(contextColumn, "TEXT", "NOT NULL")
	if err := sql.exec(table.Build()); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	sql.created = true
	return nil
}

func (sql *SQL) Add(triple iomemory.Triple) error {
	value, language, datatype := literalParts(triple.Object)
	sql.batch = append(sql.batch, []any{
		triple.Subject.String(),
		triple.Predicate.String(),
		triple.Object.String(),
		value,
		language,
		datatype,
		triple.Context.String(),
	})

	if sql.BatchSize > 0 && len(sql.batch) < sql.BatchSize {
		return nil
	}
	return sql.flush()
}

func (sql *SQL) End(context iomemory.Term) error {
	return sql.flush()
}

// flush inserts all pending rows.
func (sql *SQL) flush() error {
	if err := sql.execInsert(sql.table(), columns, sql.batch); err != nil {
		return err
	}

	sql.counter.Add(int64(len(sql.batch)))
	sql.batch = sql.batch[:0]
	return nil
}

func (sql *SQL) Close() error {
	return sql.DB.Close() // close the database
}

// literalParts returns the plain value, the language and the datatype of term.
// Language and datatype are null unless term is a literal carrying them.
func literalParts(term iomemory.Term) (value string, language, datatype any) {
	language, datatype = nullString, nullString

	switch term := term.(type) {
	case quad.IRI:
		return string(term), language, datatype
	case quad.BNode:
		return string(term), language, datatype
	case quad.String:
		return string(term), language, datatype
	case quad.LangString:
		return string(term.Value), term.Lang, datatype
	case quad.TypedString:
		return string(term.Value), language, string(term.Type)
	default:
		return fmt.Sprint(term.Native()), language, datatype
	}
}
