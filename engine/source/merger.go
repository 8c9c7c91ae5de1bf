package source

import (
	"iter"

	"github.com/compozy/uafixtures/engine/record"
)

// Merger accumulates partial records keyed by the raw user-agent string for
// suites that spread one user agent over several files. Keys keep the order
// in which they were first seen.
type Merger struct {
	keys     []string
	builders map[string]*record.Builder
}

func NewMerger() *Merger {
	return &Merger{builders: make(map[string]*record.Builder)}
}

// Get returns the builder for ua, creating an all-null one on first sight.
func (m *Merger) Get(ua string) *record.Builder {
	if b, ok := m.builders[ua]; ok {
		return b
	}
	b := record.NewBuilder(ua)
	m.builders[ua] = b
	m.keys = append(m.keys, ua)
	return b
}

func (m *Merger) Len() int {
	return len(m.keys)
}

// Entries yields one entry per user agent, each under a single fresh
// identifier. Call it only after every contributing file was merged.
func (m *Merger) Entries() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, ua := range m.keys {
			if !yield(NewEntry(m.builders[ua].Build())) {
				return
			}
		}
	}
}
