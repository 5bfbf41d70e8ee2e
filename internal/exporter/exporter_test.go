//spellchecker:words exporter
package exporter_test

//spellchecker:words database strings testing github iomemory internal exporter loader status cayleygraph glebarez sqlite stretchr testify assert require
import (
	"database/sql"
	"strings"
	"testing"

	"github.com/FAU-CDI/iomemory"
	"github.com/FAU-CDI/iomemory/internal/exporter"
	"github.com/FAU-CDI/iomemory/internal/loader"
	"github.com/FAU-CDI/iomemory/internal/status"
	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/glebarez/go-sqlite"
)

// cspell:words nquads

var (
	graphA = quad.IRI("http://example.com/graph/a")
	graphB = quad.IRI("http://example.com/graph/b")
	graphC = quad.IRI("http://example.com/graph/c")
)

var testTriples = []iomemory.Triple{
	{Subject: quad.IRI("http://example.com/s"), Predicate: quad.IRI("http://example.com/p"), Object: quad.IRI("http://example.com/o")},
	{Subject: quad.IRI("http://example.com/s"), Predicate: quad.IRI("http://example.com/name"), Object: quad.LangString{Value: "hello", Lang: "en"}},
	{Subject: quad.BNode("b0"), Predicate: quad.IRI("http://example.com/age"), Object: quad.TypedString{Value: "42", Type: "http://www.w3.org/2001/XMLSchema#integer"}, Context: graphB},
	{Subject: quad.IRI("http://example.com/s"), Predicate: quad.IRI("http://example.com/p"), Object: quad.String("plain"), Context: graphB},
}

// newStore creates a store with graphA as the default context holding testTriples.
func newStore(t *testing.T) *iomemory.Store {
	t.Helper()

	store, err := iomemory.New(nil, graphA)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	for _, triple := range testTriples {
		require.NoError(t, store.Add(triple))
	}
	store.Bind("ex", "http://example.com/")
	return store
}

// all returns all triples of store.
func all(t *testing.T, store *iomemory.Store) []iomemory.Triple {
	t.Helper()

	triples, err := iomemory.Collect(store.Triples(iomemory.Pattern{}))
	require.NoError(t, err)
	return triples
}

func TestNQuads(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	var builder strings.Builder
	nq := &exporter.NQuads{Writer: &builder, Default: store.DefaultContext()}
	require.NoError(t, exporter.Export(store, iomemory.Pattern{}, nq, status.StageExportNQuads, nil))
	require.NoError(t, nq.Close())

	output := builder.String()
	assert.Equal(t, len(testTriples), strings.Count(output, "\n"))
	assert.NotContains(t, output, string(graphA), "default context is written without a label")

	// read everything back into a store with the same default context
	other, err := iomemory.New(nil, graphA)
	require.NoError(t, err)
	defer other.Close()

	_, err = loader.Load(other, &loader.QuadSource{Reader: strings.NewReader(output)}, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, all(t, store), all(t, other))
}

func TestNQuads_Pattern(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	var builder strings.Builder
	nq := &exporter.NQuads{Writer: &builder}
	require.NoError(t, exporter.Export(store, iomemory.Pattern{Subject: quad.IRI("http://example.com/s"), Context: graphB}, nq, status.StageExportNQuads, nil))
	require.NoError(t, nq.Close())

	assert.Equal(t, `<http://example.com/s> <http://example.com/p> "plain" <http://example.com/graph/b> .`+"\n", builder.String())
}

func TestTurtle(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	var builder strings.Builder
	turtle := &exporter.Turtle{Writer: &builder, Store: store}
	require.NoError(t, exporter.Export(store, iomemory.Pattern{Context: graphA}, turtle, status.StageExportTurtle, nil))
	require.NoError(t, turtle.Close())

	output := builder.String()
	assert.Contains(t, output, "hello")
	assert.NotContains(t, output, "plain", "other contexts are not exported")
}

func TestTurtle_MultipleContexts(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	var builder strings.Builder
	turtle := &exporter.Turtle{Writer: &builder}
	err := exporter.Export(store, iomemory.Pattern{}, turtle, status.StageExportTurtle, nil)
	assert.ErrorIs(t, err, exporter.ErrNoContext)
}

// openSQLite opens a new in-memory sqlite database.
func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)

	// every connection has its own in-memory database
	db.SetMaxOpenConns(1)
	return db
}

func TestSQL(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	require.NoError(t, store.RegisterContext(graphC))

	db := openSQLite(t)
	export := &exporter.SQL{DB: db, BatchSize: 3}
	defer export.Close()

	require.NoError(t, exporter.Export(store, iomemory.Pattern{}, export, status.StageExportSQL, nil))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM triples").Scan(&count))
	assert.Equal(t, len(testTriples), count)

	var (
		object, value, context string
		language, datatype     sql.NullString
	)
	require.NoError(t, db.QueryRow(
		"SELECT object, value, language, datatype, context FROM triples WHERE predicate = ?",
		"<http://example.com/name>",
	).Scan(&object, &value, &language, &datatype, &context))

	assert.Equal(t, `"hello"@en`, object)
	assert.Equal(t, "hello", value)
	assert.Equal(t, sql.NullString{String: "en", Valid: true}, language)
	assert.False(t, datatype.Valid)
	assert.Equal(t, "<http://example.com/graph/a>", context)

	require.NoError(t, db.QueryRow(
		"SELECT value, datatype FROM triples WHERE subject = ?",
		"_:b0",
	).Scan(&value, &datatype))
	assert.Equal(t, "42", value)
	assert.Equal(t, sql.NullString{String: "http://www.w3.org/2001/XMLSchema#integer", Valid: true}, datatype)
}

func TestSQL_QueryVars(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	// only a single row fits into a query
	db := openSQLite(t)
	export := &exporter.SQL{DB: db, Table: "small", MaxQueryVar: 7}
	defer export.Close()

	require.NoError(t, exporter.Export(store, iomemory.Pattern{}, export, status.StageExportSQL, nil))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM small").Scan(&count))
	assert.Equal(t, len(testTriples), count)
}
