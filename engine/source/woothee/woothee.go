// Package woothee reads the woothee testsets: YAML lists of user agents
// with a flat classification per entry.
package woothee

import (
	"context"
	"iter"
	"strings"

	"github.com/compozy/uafixtures/engine/classify"
	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
)

const Name = "woothee"

const unknown = "UNKNOWN"

// Device types implied by a woothee category.
var categoryDeviceTypes = map[string]string{
	"pc":          "desktop",
	"smartphone":  "smartphone",
	"mobilephone": "feature phone",
}

type testCase struct {
	Target    source.Scalar `yaml:"target"`
	Name      source.Scalar `yaml:"name"`
	Category  source.Scalar `yaml:"category"`
	OS        source.Scalar `yaml:"os"`
	Version   source.Scalar `yaml:"version"`
	Vendor    source.Scalar `yaml:"vendor"`
	OSVersion source.Scalar `yaml:"os_version"`
}

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
	d := source.NewDiscoverer(Name, s.opts.Fs, s.root, "**/*.yaml", "**/*.yml")
	return source.StreamFiles(ctx, Name, d, func(path string, emit func(*record.Record) bool) error {
		cases, raws, err := source.ReadYAMLList[testCase](s.opts.Fs, path)
		if err != nil {
			return err
		}
		for i, tc := range cases {
			rec, ok := tc.record()
			if !ok {
				source.RowSkipped(ctx, Name)
				continue
			}
			rec.Raw = raws[i]
			rec.File = path
			if !emit(rec) {
				return nil
			}
		}
		return nil
	})
}

func (tc testCase) record() (*record.Record, bool) {
	ua := tc.Target.String()
	if ua == "" {
		return nil, false
	}
	category := strings.ToLower(tc.Category.String())
	isBot := classify.IsBotCategory(category)
	rec := record.New(ua)

	rec.Client.Name = record.Known(tc.Name.String(), unknown)
	rec.Client.Version = known(tc.Version.String())
	rec.Client.Manufacturer = record.Known(tc.Vendor.String(), unknown)
	rec.Client.IsBot = record.Bool(isBot)
	if isBot {
		rec.Client.Type = record.String("bot")
	}

	rec.Platform.Name = record.Known(tc.OS.String(), unknown)
	rec.Platform.Version = known(tc.OSVersion.String())

	if t, ok := categoryDeviceTypes[category]; ok {
		rec.Device.Type = record.String(t)
	}
	rec.Device.IsMobile = record.Bool(category == "smartphone" || category == "mobilephone")
	return rec, true
}

func known(version string) *string {
	v := record.Version(version)
	if v == nil || strings.EqualFold(*v, unknown) {
		return nil
	}
	return v
}
