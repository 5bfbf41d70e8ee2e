package loader

//spellchecker:words errors path filepath github iomemory internal status triplestore impl progress cayleygraph nquads
import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/FAU-CDI/iomemory"
	"github.com/FAU-CDI/iomemory/internal/status"
	"github.com/FAU-CDI/iomemory/internal/triplestore/impl"
	"github.com/FAU-CDI/iomemory/pkg/progress"
	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
)

// cspell:words nquads

// Source represents a source of quads
type Source interface {
	// Open opens this data source.
	//
	// It is valid to call open more than once after Next() returns io.EOF.
	// In this case the second call to open should reset the data source.
	Open() error

	// Close closes this source.
	Close() error

	// Next reads the next quad.
	// Once the source is exhausted, it returns io.EOF.
	Next() (quad.Quad, error)
}

var errNotSeekable = errors.New("QuadSource: reader is not seekable")

// QuadSource reads quads from a reader holding N-Quads.
type QuadSource struct {
	Reader io.Reader // when opened more than once, must also be an io.Seeker
	reader *nquads.Reader
}

func (qs *QuadSource) Open() error {
	// if we previously had a reader
	// then we need to reset the state
	if qs.reader != nil {
		if err := qs.reader.Close(); err != nil {
			return err
		}

		seeker, ok := qs.Reader.(io.Seeker)
		if !ok {
			return errNotSeekable
		}
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return err
		}
	}

	qs.reader = nquads.NewReader(qs.Reader, true)
	return nil
}

// Next reads the next quad from the QuadSource
func (qs *QuadSource) Next() (quad.Quad, error) {
	return qs.reader.ReadQuad()
}

func (qs *QuadSource) Close() error {
	if qs.reader != nil {
		return qs.reader.Close()
	}
	return nil
}

// progressInterval is the number of quads between progress updates of Load.
const progressInterval = 10_000

// Load reads all quads from source and adds them to store.
// Quads without a label are added to the default context of the store.
//
// It returns the number of quads read; duplicates are included in this count.
func Load(store *iomemory.Store, source Source, st *status.Status) (count int, e error) {
	e = st.DoStage(status.StageLoad, func() (err error) {
		if err := source.Open(); err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer func() {
			if e2 := source.Close(); e2 != nil {
				err = errors.Join(err, fmt.Errorf("failed to close source: %w", e2))
			}
		}()

		for {
			q, err := source.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to read quad %d: %w", count+1, err)
			}

			if err := store.Add(impl.FromQuad(q)); err != nil {
				return fmt.Errorf("failed to add quad %d: %w", count+1, err)
			}
			count++
			if count%progressInterval == 0 {
				st.SetCT(count, 0)
			}
		}

		st.SetCT(count, count)
		return nil
	})

	st.LogDebug("index stats", "stats", store.Stats())
	return count, e
}

// LoadFile is like Load, but reads N-Quads from the file at path.
func LoadFile(store *iomemory.Store, path string, st *status.Status) (count int, e error) {
	file, err := os.Open(path) // #nosec G304 -- explicit parameter
	if err != nil {
		return 0, fmt.Errorf("failed to open path: %w", err)
	}
	defer func() {
		if e2 := file.Close(); e2 != nil {
			e = errors.Join(e, fmt.Errorf("failed to close file: %w", e2))
		}
	}()

	st.Log("loading", "path", path)
	return Load(store, &QuadSource{Reader: &progress.Reader{Reader: file, Progress: st.Rewritable()}}, st)
}

// ErrNoInput indicates that no input files were given.
var ErrNoInput = errors.New("no input files given")

// FindSources finds the N-Quads files named by argv.
//
// Each argument is either a regular file, or a directory.
// A directory is replaced by the files within it ending in ".nq" or ".nquads", which must not be empty.
// FindSources does not guarantee that contents are loadable.
func FindSources(argv ...string) (files []string, err error) {
	if len(argv) == 0 {
		return nil, ErrNoInput
	}

	for _, arg := range argv {
		isDir, err := isDirectory(arg)
		if err != nil {
			return nil, err
		}

		if !isDir {
			ok, err := isFile(arg)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("%q is not a regular file", arg)
			}
			files = append(files, arg)
			continue
		}

		var found []string
		for _, pattern := range [...]string{"*.nq", "*.nquads"} {
			matches, err := filepath.Glob(filepath.Join(arg, pattern))
			if err != nil {
				return nil, err
			}
			found = append(found, matches...)
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("need at least one '*.nq' or '*.nquads' file in %q", arg)
		}
		files = append(files, found...)
	}

	return files, nil
}

func isDirectory(path string) (ok bool, err error) {
	stats, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return stats.Mode().IsDir(), nil
}

// isFile checks if path is a regular file.
func isFile(path string) (ok bool, err error) {
	stats, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return stats.Mode().IsRegular(), nil
}
