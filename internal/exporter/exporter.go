// Package exporter writes the triples of a store into other formats.
package exporter

//spellchecker:words github iomemory internal status
import (
	"fmt"
	"io"

	"github.com/FAU-CDI/iomemory"
	"github.com/FAU-CDI/iomemory/internal/status"
)

// Exporter receives triples grouped by context.
type Exporter interface {
	io.Closer

	// Begin signals that triples of the given context will be transmitted
	Begin(context iomemory.Term) error

	// Add adds a triple of the current context
	Add(triple iomemory.Triple) error

	// End signals that no more triples will be submitted for the given context
	End(context iomemory.Term) error
}

// Export sends all triples of store matching pattern to exporter, one context after another.
// It does not close the exporter.
//
// A pattern with a wildcard context exports every known context, including registered contexts without triples.
func Export(store *iomemory.Store, pattern iomemory.Pattern, exporter Exporter, stage status.Stage, st *status.Status) error {
	return st.DoStage(stage, func() error {
		var contexts []iomemory.Term
		if pattern.Context != nil {
			contexts = []iomemory.Term{pattern.Context}
		} else {
			var err error
			contexts, err = iomemory.Collect(store.Contexts())
			if err != nil {
				return fmt.Errorf("failed to list contexts: %w", err)
			}
		}

		total := int(store.Size())
		count := 0
		for _, context := range contexts {
			if err := exporter.Begin(context); err != nil {
				return fmt.Errorf("failed to begin context %s: %w", context, err)
			}

			pattern.Context = context
			for triple, err := range store.Triples(pattern) {
				if err != nil {
					return fmt.Errorf("failed to query context %s: %w", context, err)
				}
				if err := exporter.Add(triple); err != nil {
					return fmt.Errorf("failed to export %s: %w", triple, err)
				}
				count++
				st.SetCT(count, total)
			}

			if err := exporter.End(context); err != nil {
				return fmt.Errorf("failed to end context %s: %w", context, err)
			}
		}

		st.Log("exported triples", "count", count, "contexts", len(contexts))
		return nil
	})
}
