// Package zsxsoft reads the php-useragent test list. Every case is a
// positional tuple: the user agent followed by the browser, OS and device
// triples, each starting with an icon name.
package zsxsoft

import (
	"context"
	"fmt"
	"iter"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
)

const Name = "zsxsoft"

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
		data, err := s.opts.Values.Decode(s.opts.Fs, path)
		if err != nil {
			return err
		}
		if _, ok := data.([]any); !ok {
			return fmt.Errorf("expected a list of test cases, got %T", data)
		}
		source.Items(data, func(_ string, value any) bool {
			rec, ok := mapCase(value)
			if !ok {
				source.RowSkipped(ctx, Name)
				return true
			}
			rec.Raw = value
			rec.File = path
			return emit(rec)
		})
		return nil
	})
}

// triple returns the two values after the icon of tuple i.
func triple(tuple []any, i int) (*string, *string) {
	if i >= len(tuple) {
		return nil, nil
	}
	parts, ok := tuple[i].([]any)
	if !ok || len(parts) < 2 {
		return nil, nil
	}
	first := source.ValueString(parts[1], "Unknown")
	if len(parts) < 3 {
		return first, nil
	}
	return first, source.ValueString(parts[2], "Unknown")
}

func mapCase(value any) (*record.Record, bool) {
	tuple, ok := value.([]any)
	if !ok || len(tuple) == 0 {
		return nil, false
	}
	ua, ok := tuple[0].(string)
	if !ok || ua == "" {
		return nil, false
	}
	rec := record.New(ua)
	name, version := triple(tuple, 1)
	rec.Client.Name = name
	if version != nil {
		rec.Client.Version = record.Version(*version)
	}
	name, version = triple(tuple, 2)
	rec.Platform.Name = name
	if version != nil {
		rec.Platform.Version = record.Version(*version)
	}
	brand, model := triple(tuple, 3)
	rec.Device.Brand = brand
	rec.Device.Manufacturer = brand
	rec.Device.DeviceName = model
	return rec, true
}
