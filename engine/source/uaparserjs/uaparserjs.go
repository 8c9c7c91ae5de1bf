// Package uaparserjs reads the ua-parser-js test suites, one JSON file per
// axis (browser-test.json, os-test.json and so on), merged by user agent.
package uaparserjs

import (
	"context"
	"fmt"
	"iter"
	"path"
	"strings"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
	"github.com/tidwall/gjson"
)

const Name = "ua-parser-js"

const undefined = "undefined"

const suffix = "-test.json"

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
	d := source.NewDiscoverer(Name, s.opts.Fs, s.root, "**/*"+suffix)
	return source.MergeFiles(ctx, Name, d, func(file string, m *source.Merger) error {
		doc, err := source.ReadJSONDocument(s.opts.Fs, file)
		if err != nil {
			return err
		}
		if !doc.IsArray() {
			return fmt.Errorf("expected a JSON array of test cases")
		}
		stem := strings.TrimSuffix(path.Base(file), suffix)
		doc.ForEach(func(_, tc gjson.Result) bool {
			ua := tc.Get("ua").String()
			if tc.Get("ua").Type != gjson.String || ua == "" {
				source.RowSkipped(ctx, Name)
				return true
			}
			b := m.Get(ua)
			mergeExpect(b, stem, file, tc.Get("expect"))
			b.AddRaw(file, tc.Value())
			return true
		})
		return nil
	})
}

func value(expect gjson.Result, key string) *string {
	return source.JSONString(expect.Get(key), undefined)
}

func mergeExpect(b *record.Builder, stem, file string, expect gjson.Result) {
	switch stem {
	case "browser":
		b.MergeClient(record.Client{
			Name:    value(expect, "name"),
			Version: version(expect),
			Type:    value(expect, "type"),
		})
		b.AddFile(record.AxisClient, file)
	case "os":
		b.MergePlatform(record.Platform{
			Name:    value(expect, "name"),
			Version: version(expect),
		})
		b.AddFile(record.AxisPlatform, file)
	case "device":
		vendor := value(expect, "vendor")
		b.MergeDevice(record.Device{
			DeviceName:   value(expect, "model"),
			Manufacturer: vendor,
			Brand:        vendor,
			Type:         value(expect, "type"),
		})
		b.AddFile(record.AxisDevice, file)
	case "engine":
		b.MergeEngine(record.Engine{
			Name:    value(expect, "name"),
			Version: version(expect),
		})
		b.AddFile(record.AxisEngine, file)
	}
}

func version(expect gjson.Result) *string {
	v := value(expect, "version")
	if v == nil {
		return nil
	}
	return record.Version(*v)
}
