// Package donatj reads the PhpUserAgent fixture: a JSON object keyed by user
// agent with platform, browser and version per entry.
package donatj

import (
	"context"
	"fmt"
	"iter"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
	"github.com/tidwall/gjson"
)

const Name = "donatj"

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
	if !doc.IsObject() {
		return fmt.Errorf("expected a JSON object keyed by user agent")
	}
	doc.ForEach(func(key, value gjson.Result) bool {
		ua := key.String()
		if ua == "" || !value.IsObject() {
			source.RowSkipped(ctx, Name)
			return true
		}
		rec := record.New(ua)
		rec.Platform.Name = record.String(value.Get("platform").String())
		rec.Client.Name = record.String(value.Get("browser").String())
		rec.Client.Version = record.Version(value.Get("version").String())
		rec.Raw = value.Value()
		rec.File = path
		return emit(rec)
	})
	return nil
}
