// Package whichbrowser reads the WhichBrowser parser test data. Headers are
// given either as a raw "Name: value" block or as a mapping, and versions
// either as a scalar or as a mapping with details.
package whichbrowser

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/compozy/uafixtures/engine/header"
	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
	"gopkg.in/yaml.v3"
)

const Name = "whichbrowser"

// Mobile verdict per WhichBrowser device type. Types not listed stay unknown.
var mobileDeviceTypes = map[string]bool{
	"mobile":     true,
	"tablet":     true,
	"ereader":    true,
	"watch":      true,
	"camera":     true,
	"desktop":    false,
	"television": false,
	"gaming":     false,
	"car":        false,
	"signage":    false,
	"printer":    false,
}

type fixtureHeaders struct {
	header.Headers
}

func (h *fixtureHeaders) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return node.Decode(&h.Headers)
	}
	var parsed header.Headers
	for line := range strings.Lines(node.Value) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			return fmt.Errorf("malformed header line %q", strings.TrimSpace(line))
		}
		parsed.Set(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	h.Headers = parsed
	return nil
}

type version struct {
	Value source.Scalar
}

func (v *version) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var detail struct {
			Value source.Scalar `yaml:"value"`
		}
		if err := node.Decode(&detail); err != nil {
			return err
		}
		v.Value = detail.Value
		return nil
	}
	return node.Decode(&v.Value)
}

type result struct {
	Browser struct {
		Name    source.Scalar `yaml:"name"`
		Version version       `yaml:"version"`
		Type    source.Scalar `yaml:"type"`
	} `yaml:"browser"`
	Engine struct {
		Name    source.Scalar `yaml:"name"`
		Version version       `yaml:"version"`
	} `yaml:"engine"`
	OS struct {
		Name    source.Scalar `yaml:"name"`
		Alias   source.Scalar `yaml:"alias"`
		Version version       `yaml:"version"`
	} `yaml:"os"`
	Device struct {
		Type         source.Scalar `yaml:"type"`
		Manufacturer source.Scalar `yaml:"manufacturer"`
		Model        source.Scalar `yaml:"model"`
		Series       source.Scalar `yaml:"series"`
	} `yaml:"device"`
}

type testCase struct {
	Headers fixtureHeaders `yaml:"headers"`
	Result  result         `yaml:"result"`
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
	d := source.NewDiscoverer(Name, s.opts.Fs, s.root, "**/*.yaml")
	return source.StreamFiles(ctx, Name, d, func(path string, emit func(*record.Record) bool) error {
		cases, raws, err := source.ReadYAMLList[testCase](s.opts.Fs, path)
		if err != nil {
			return err
		}
		for i, tc := range cases {
			if tc.Headers.UserAgent() == "" {
				source.RowSkipped(ctx, Name)
				continue
			}
			rec := tc.record()
			rec.Raw = raws[i]
			rec.File = path
			if !emit(rec) {
				return nil
			}
		}
		return nil
	})
}

func (tc testCase) record() *record.Record {
	r := tc.Result
	rec := &record.Record{Headers: tc.Headers.Headers}

	rec.Client = record.Client{
		Name:    record.String(r.Browser.Name.String()),
		Version: record.Version(r.Browser.Version.Value.String()),
		Type:    record.String(r.Browser.Type.String()),
	}
	rec.Engine = record.Engine{
		Name:    record.String(r.Engine.Name.String()),
		Version: record.Version(r.Engine.Version.Value.String()),
	}
	rec.Platform = record.Platform{
		Name:          record.String(r.OS.Name.String()),
		MarketingName: record.String(r.OS.Alias.String()),
		Version:       record.Version(r.OS.Version.Value.String()),
	}

	deviceType := strings.ToLower(r.Device.Type.String())
	rec.Device = record.Device{
		DeviceName:    record.String(r.Device.Model.String()),
		MarketingName: record.String(r.Device.Series.String()),
		Manufacturer:  record.String(r.Device.Manufacturer.String()),
		Type:          record.String(deviceType),
	}
	if mobile, ok := mobileDeviceTypes[deviceType]; ok {
		rec.Device.IsMobile = record.Bool(mobile)
	}
	if deviceType == "bot" || strings.EqualFold(r.Browser.Type.String(), "bot") {
		rec.Client.IsBot = record.Bool(true)
	}
	return rec
}
