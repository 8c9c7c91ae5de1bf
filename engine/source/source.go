// Package source defines the contract shared by every fixture adapter and
// the plumbing they have in common: lazy file discovery, merge-by-key
// accumulation, progress reporting and the collection facade.
//
// A Source streams (identifier, record) pairs through Properties. The
// sequence is finite, re-reads the backing resource on every call and may be
// abandoned at any point; file handles are released inside the iteration
// frame. A non-nil error in the sequence is fatal and always the last
// element.
package source

import (
	"context"
	"iter"

	"github.com/compozy/uafixtures/engine/core"
	"github.com/compozy/uafixtures/engine/header"
	"github.com/compozy/uafixtures/engine/record"
)

// Source is implemented by every fixture adapter.
type Source interface {
	// Name returns a human readable label for progress output.
	Name() string
	// IsReady performs a cheap existence check of the backing resource. It
	// reports failures to the sink on ctx and never panics.
	IsReady(ctx context.Context) bool
	// Properties streams the normalized records.
	Properties(ctx context.Context) iter.Seq2[*Entry, error]
}

// Entry pairs a record with the identifier it is streamed under.
type Entry struct {
	ID     core.ID
	Record *record.Record
}

// NewEntry assigns a fresh identifier to rec.
func NewEntry(rec *record.Record) *Entry {
	return &Entry{ID: core.MustNewID(), Record: rec}
}

// Headers projects the header set of every record streamed by s.
func Headers(ctx context.Context, s Source) iter.Seq2[header.Headers, error] {
	return func(yield func(header.Headers, error) bool) {
		for entry, err := range s.Properties(ctx) {
			if err != nil {
				yield(header.Headers{}, err)
				return
			}
			if !yield(entry.Record.Headers, nil) {
				return
			}
		}
	}
}

// UserAgents projects the user-agent header of every record streamed by s.
func UserAgents(ctx context.Context, s Source) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for h, err := range Headers(ctx, s) {
			if err != nil {
				yield("", err)
				return
			}
			if !yield(h.UserAgent(), nil) {
				return
			}
		}
	}
}
