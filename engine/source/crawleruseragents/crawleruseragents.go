// Package crawleruseragents reads crawler-user-agents.json: a list of
// crawler patterns, each with sample user agents.
package crawleruseragents

import (
	"context"
	"fmt"
	"iter"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
	"github.com/tidwall/gjson"
)

const Name = "crawler-user-agents"

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
		doc, err := source.ReadJSONDocument(s.opts.Fs, path)
		if err != nil {
			return err
		}
		if !doc.IsArray() {
			return fmt.Errorf("expected a JSON array of crawler patterns")
		}
		doc.ForEach(func(_, crawler gjson.Result) bool {
			pattern := source.JSONString(crawler.Get("pattern"))
			raw := crawler.Value()
			for _, instance := range crawler.Get("instances").Array() {
				ua := instance.String()
				if instance.Type != gjson.String || ua == "" {
					source.RowSkipped(ctx, Name)
					continue
				}
				rec := record.New(ua)
				rec.Client.Name = pattern
				rec.Client.Type = record.String("bot")
				rec.Client.IsBot = record.Bool(true)
				rec.Raw = raw
				rec.File = path
				if !emit(rec) {
					return false
				}
			}
			return true
		})
		return nil
	})
}
