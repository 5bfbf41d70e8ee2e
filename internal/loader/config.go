// Package loader fills a store from configuration and N-Quads files.
package loader

//spellchecker:words errors maps slices github iomemory cayleygraph gopkg yaml
import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/FAU-CDI/iomemory"
	"github.com/cayleygraph/quad"
	"gopkg.in/yaml.v3"
)

// Config configures a store.
type Config struct {
	// DefaultContext names the default context of the store.
	// It is either an iri, or a blank node of the form "_:name".
	// When empty, a fresh blank node is used.
	DefaultContext string `yaml:"default_context"`

	// Cache is a directory to spill the interning table into.
	// When empty, the interning table is kept in memory.
	Cache string `yaml:"cache"`

	// Namespaces maps prefixes to namespaces bound in the store.
	Namespaces map[string]string `yaml:"namespaces"`
}

// ReadConfig reads a configuration file in yaml format.
// Unknown fields are an error, an empty file is the empty configuration.
func ReadConfig(r io.Reader) (config Config, err error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("failed to decode config: %w", err)
	}
	return config, nil
}

// LoadConfig is like ReadConfig, but reads from the given path.
func LoadConfig(path string) (config Config, e error) {
	file, err := os.Open(path) // #nosec G304 -- explicit parameter
	if err != nil {
		return config, fmt.Errorf("failed to open config: %w", err)
	}
	defer func() {
		if e2 := file.Close(); e2 != nil {
			e = errors.Join(e, fmt.Errorf("failed to close config: %w", e2))
		}
	}()

	return ReadConfig(file)
}

// Engine returns the engine described by this configuration.
func (config Config) Engine() iomemory.Engine {
	if config.Cache == "" {
		return iomemory.MemoryEngine()
	}
	return iomemory.DiskEngine(config.Cache)
}

// Context returns the default context described by this configuration.
// When no default context is configured, returns nil.
func (config Config) Context() iomemory.Term {
	return ParseTerm(config.DefaultContext)
}

// Open opens a new store with this configuration, and binds all configured namespaces.
func (config Config) Open() (*iomemory.Store, error) {
	store, err := iomemory.New(config.Engine(), config.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	for _, prefix := range slices.Sorted(maps.Keys(config.Namespaces)) {
		store.Bind(prefix, quad.IRI(config.Namespaces[prefix]))
	}
	return store, nil
}
