package source

import (
	"context"
	"iter"
	"strings"
)

// Collection fans several sources out into one stream. It holds no merge or
// dedup logic; members keep their own identifiers.
type Collection struct {
	sources []Source
}

// NewCollection assembles the members once. Order is preserved.
func NewCollection(sources ...Source) *Collection {
	return &Collection{sources: sources}
}

func (c *Collection) Name() string {
	names := make([]string, 0, len(c.sources))
	for _, s := range c.sources {
		names = append(names, s.Name())
	}
	return strings.Join(names, ", ")
}

// IsReady reports whether the collection has at least one member. Members'
// own readiness is not checked; callers filter beforehand.
func (c *Collection) IsReady(_ context.Context) bool {
	return len(c.sources) > 0
}

// Properties concatenates the member sequences in order.
func (c *Collection) Properties(ctx context.Context) iter.Seq2[*Entry, error] {
	return func(yield func(*Entry, error) bool) {
		for _, s := range c.sources {
			for entry, err := range s.Properties(ctx) {
				if !yield(entry, err) || err != nil {
					return
				}
			}
		}
	}
}
