//spellchecker:words loader
package loader_test

//spellchecker:words path filepath slices strings testing github iomemory internal loader cayleygraph stretchr testify assert require
import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/FAU-CDI/iomemory"
	"github.com/FAU-CDI/iomemory/internal/loader"
	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cspell:words nquads

const testNQuads = `# a comment
<http://example.com/s> <http://example.com/p> <http://example.com/o> .
<http://example.com/s> <http://example.com/p> "hello"@en <http://example.com/g> .
_:b0 <http://example.com/p> "42"^^<http://www.w3.org/2001/XMLSchema#integer> <http://example.com/g> .
<http://example.com/s> <http://example.com/p> <http://example.com/o> .
`

var (
	graphG  = quad.IRI("http://example.com/g")
	graphD  = quad.IRI("http://example.com/default")
	subject = quad.IRI("http://example.com/s")
	pred    = quad.IRI("http://example.com/p")
)

func newStore(t *testing.T) *iomemory.Store {
	t.Helper()

	store, err := iomemory.New(nil, graphD)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func TestLoad(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	count, err := loader.Load(store, &loader.QuadSource{Reader: strings.NewReader(testNQuads)}, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, count)
	assert.Equal(t, uint64(3), store.Size())

	// unlabeled quads end up in the default context
	triples, err := iomemory.Collect(store.Triples(iomemory.Pattern{Context: graphD}))
	require.NoError(t, err)
	assert.Equal(t, []iomemory.Triple{
		{Subject: subject, Predicate: pred, Object: quad.IRI("http://example.com/o"), Context: graphD},
	}, triples)

	// literals keep their language and datatype
	triples, err = iomemory.Collect(store.Triples(iomemory.Pattern{Predicate: pred, Context: graphG}))
	require.NoError(t, err)
	assert.ElementsMatch(t, []iomemory.Triple{
		{Subject: subject, Predicate: pred, Object: quad.LangString{Value: "hello", Lang: "en"}, Context: graphG},
		{Subject: quad.BNode("b0"), Predicate: pred, Object: quad.TypedString{Value: "42", Type: "http://www.w3.org/2001/XMLSchema#integer"}, Context: graphG},
	}, triples)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	_, err := loader.Load(store, &loader.QuadSource{Reader: strings.NewReader("<http://example.com/s> this is not a quad\n")}, nil)
	assert.Error(t, err)
}

func TestQuadSource_Reopen(t *testing.T) {
	t.Parallel()

	source := &loader.QuadSource{Reader: strings.NewReader(testNQuads)}

	count := func() (n int) {
		require.NoError(t, source.Open())
		for {
			_, err := source.Next()
			if err != nil {
				return n
			}
			n++
		}
	}

	assert.Equal(t, 4, count())
	assert.Equal(t, 4, count())
	assert.NoError(t, source.Close())
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "data.nq")
	require.NoError(t, os.WriteFile(path, []byte(testNQuads), 0o600))

	store := newStore(t)
	count, err := loader.LoadFile(store, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Equal(t, uint64(3), store.Size())

	_, err = loader.LoadFile(store, filepath.Join(dir, "missing.nq"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.nq", "b.nquads", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	empty := t.TempDir()

	_, err := loader.FindSources()
	assert.ErrorIs(t, err, loader.ErrNoInput)

	files, err := loader.FindSources(dir)
	require.NoError(t, err)
	slices.Sort(files)
	assert.Equal(t, []string{filepath.Join(dir, "a.nq"), filepath.Join(dir, "b.nquads")}, files)

	files, err = loader.FindSources(filepath.Join(dir, "c.txt"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "c.txt")}, files)

	_, err = loader.FindSources(empty)
	assert.Error(t, err)

	_, err = loader.FindSources(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfig(t *testing.T) {
	t.Parallel()

	config, err := loader.ReadConfig(strings.NewReader(`
default_context: http://example.com/default
cache: /tmp/cache
namespaces:
  ex: http://example.com/
  foaf: http://xmlns.com/foaf/0.1/
`))
	require.NoError(t, err)
	assert.Equal(t, loader.Config{
		DefaultContext: "http://example.com/default",
		Cache:          "/tmp/cache",
		Namespaces: map[string]string{
			"ex":   "http://example.com/",
			"foaf": "http://xmlns.com/foaf/0.1/",
		},
	}, config)

	config, err = loader.ReadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, loader.Config{}, config)

	_, err = loader.ReadConfig(strings.NewReader("unknown: field\n"))
	assert.Error(t, err)
}

func TestConfig_Open(t *testing.T) {
	t.Parallel()

	config := loader.Config{
		DefaultContext: "_:default",
		Namespaces:     map[string]string{"ex": "http://example.com/"},
	}

	store, err := config.Open()
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, iomemory.Term(quad.BNode("default")), store.DefaultContext())

	ns, ok := store.Namespace("ex")
	assert.True(t, ok)
	assert.Equal(t, quad.IRI("http://example.com/"), ns)

	config.Cache = t.TempDir()
	disk, err := config.Open()
	require.NoError(t, err)
	require.NoError(t, disk.Add(iomemory.Triple{Subject: subject, Predicate: pred, Object: quad.String("x")}))
	assert.Equal(t, uint64(1), disk.Size())
	assert.NoError(t, disk.Close())
}

func TestNativeTerm(t *testing.T) {
	t.Parallel()

	for _, term := range []iomemory.Term{
		quad.Int(42),
		quad.Int(-7),
		quad.Bool(true),
		quad.Bool(false),
		quad.Float(1.5),
	} {
		native, ok := loader.NativeTerm(loader.ParseTerm(term.String()))
		assert.True(t, ok, "NativeTerm(%s)", term)
		assert.Equal(t, term, native, "NativeTerm(%s)", term)
	}

	for _, term := range []iomemory.Term{
		quad.IRI("http://example.com/x"),
		quad.String("42"),
		quad.LangString{Value: "42", Lang: "en"},
		quad.TypedString{Value: "42", Type: "http://example.com/unknown"},
		quad.TypedString{Value: "not a number", Type: "http://www.w3.org/2001/XMLSchema#integer"},
	} {
		_, ok := loader.NativeTerm(term)
		assert.False(t, ok, "NativeTerm(%s)", term)
	}
}

func TestParseTerm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  iomemory.Term
	}{
		{"", iomemory.Any},
		{"_:b0", quad.BNode("b0")},
		{"<http://example.com/>", quad.IRI("http://example.com/")},
		{"http://example.com/", quad.IRI("http://example.com/")},
		{`"hello world"`, quad.String("hello world")},
		{`"say \"hi\""`, quad.String(`say "hi"`)},
		{`"hallo"@de`, quad.LangString{Value: "hallo", Lang: "de"}},
		{`"42"^^<http://www.w3.org/2001/XMLSchema#integer>`, quad.TypedString{Value: "42", Type: "http://www.w3.org/2001/XMLSchema#integer"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, loader.ParseTerm(tt.value), "ParseTerm(%q)", tt.value)
	}

	// every term parses back from its string form
	for _, term := range []iomemory.Term{
		quad.IRI("http://example.com/x"),
		quad.BNode("x"),
		quad.String("line\nbreak"),
		quad.LangString{Value: "chat", Lang: "fr"},
		quad.TypedString{Value: "1.5", Type: "http://www.w3.org/2001/XMLSchema#decimal"},
	} {
		assert.Equal(t, term, loader.ParseTerm(term.String()), "ParseTerm(%s)", term)
	}
}
