package source

import (
	"context"
	"iter"

	"github.com/compozy/uafixtures/engine/record"
)

// FileFunc maps one fixture file onto records, handing each to emit. emit
// reports false once ctx is done; fn should then stop. It must release any
// handle it opened before returning. A returned error discards every record
// of the file.
type FileFunc func(path string, emit func(*record.Record) bool) error

// StreamFiles runs fn over every file d discovers and streams the records
// under fresh identifiers. A file is streamed only after fn read it
// completely; per file errors are reported and the file is skipped.
func StreamFiles(ctx context.Context, name string, d *Discoverer, fn FileFunc) iter.Seq2[*Entry, error] {
	return func(yield func(*Entry, error) bool) {
		sink := SinkFromContext(ctx)
		for path, err := range d.Files(ctx) {
			if err != nil {
				yield(nil, err)
				return
			}
			sink.Writeln(VerbosityVerbose, "reading fixture file", "source", name, "file", path)
			var pending []*record.Record
			err := fn(path, func(rec *record.Record) bool {
				pending = append(pending, rec)
				return ctx.Err() == nil
			})
			if ctxErr := ctx.Err(); ctxErr != nil {
				yield(nil, ctxErr)
				return
			}
			if err != nil {
				recordSkipped(ctx, name, skipReasonParse)
				sink.Writeln(VerbosityError, "skipping fixture file", "source", name, "file", path, "error", err)
				continue
			}
			for _, rec := range pending {
				RecordEmitted(ctx, name)
				if !yield(NewEntry(rec), nil) {
					return
				}
			}
			sink.Writeln(VerbosityVeryVerbose, "fixture file done", "source", name, "file", path, "records", len(pending))
		}
	}
}

// MergeFiles runs fn over every file d discovers, accumulating into one
// Merger, and streams the merged records once all files were read.
func MergeFiles(
	ctx context.Context,
	name string,
	d *Discoverer,
	fn func(path string, m *Merger) error,
) iter.Seq2[*Entry, error] {
	return func(yield func(*Entry, error) bool) {
		sink := SinkFromContext(ctx)
		m := NewMerger()
		for path, err := range d.Files(ctx) {
			if err != nil {
				yield(nil, err)
				return
			}
			sink.Writeln(VerbosityVerbose, "merging fixture file", "source", name, "file", path)
			if err := fn(path, m); err != nil {
				recordSkipped(ctx, name, skipReasonParse)
				sink.Writeln(VerbosityError, "skipping fixture file", "source", name, "file", path, "error", err)
			}
		}
		sink.Writeln(VerbosityVerbose, "emitting merged records", "source", name, "count", m.Len())
		for entry := range m.Entries() {
			RecordEmitted(ctx, name)
			if !yield(entry, nil) {
				return
			}
		}
	}
}
