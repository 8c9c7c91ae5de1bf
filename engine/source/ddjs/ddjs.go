// Package ddjs reads the JSON fixtures of device-detector-js, a port of
// matomo device-detector that keeps its fixture shape.
package ddjs

import (
	"context"
	"iter"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
	"github.com/compozy/uafixtures/engine/source/matomo"
)

const Name = "device-detector-js"

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
		fixtures, raws, err := source.ReadJSONList[matomo.Fixture](s.opts.Fs, path)
		if err != nil {
			return err
		}
		return matomo.Emit(ctx, Name, path, fixtures, raws, emit)
	})
}
