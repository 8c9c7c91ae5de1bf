// Package jsonfile reads record dumps that are already in canonical shape,
// either as a JSON array or as an object keyed by identifier.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
	"github.com/tidwall/gjson"
)

const Name = "json-files"

type Source struct {
	root string
	opts source.Options
}

func New(root string, opts ...source.Option) *Source {
	return &Source{root: root, opts: source.NewOptions(opts...)}
}

func (s *Source) Name() string {
	return Name
}

func (s *Source) IsReady(ctx context.Context) bool {
	return source.DirReady(ctx, s.opts.Fs, Name, s.root)
}

func (s *Source) Properties(ctx context.Context) iter.Seq2[*source.Entry, error] {
	d := source.NewDiscoverer(Name, s.opts.Fs, s.root, "**/*.json")
	return source.StreamFiles(ctx, Name, d, func(path string, emit func(*record.Record) bool) error {
		return s.readFile(ctx, path, emit)
	})
}

func (s *Source) readFile(ctx context.Context, path string, emit func(*record.Record) bool) error {
	doc, err := source.ReadJSONDocument(s.opts.Fs, path)
	if err != nil {
		return err
	}
	if !doc.IsArray() && !doc.IsObject() {
		return fmt.Errorf("expected a JSON array or object of records")
	}
	source.JSONElements(doc, func(_ string, value gjson.Result) bool {
		var rec record.Record
		if !value.IsObject() || json.Unmarshal([]byte(value.Raw), &rec) != nil || rec.UserAgent() == "" {
			source.RowSkipped(ctx, Name)
			return true
		}
		rec.File = path
		return emit(&rec)
	})
	return nil
}
