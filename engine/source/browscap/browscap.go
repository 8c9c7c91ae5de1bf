// Package browscap reads the browscap test suites. Each file maps a test
// name to a user agent and the full property set expected for it.
package browscap

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
)

const Name = "browscap"

// Browscap writes "unknown" for absent values and "0.0" for absent versions.
var placeholders = []string{"unknown"}

type test struct {
	UA         string         `mapstructure:"ua"`
	Properties map[string]any `mapstructure:"properties"`
	Full       *bool          `mapstructure:"full"`
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
	d := source.NewDiscoverer(Name, s.opts.Fs, s.root, "**/*.json")
	return source.StreamFiles(ctx, Name, d, func(path string, emit func(*record.Record) bool) error {
		data, err := s.opts.Values.Decode(s.opts.Fs, path)
		if err != nil {
			return err
		}
		switch data.(type) {
		case map[string]any, []any:
		default:
			return fmt.Errorf("expected a collection of tests, got %T", data)
		}
		source.Items(data, func(_ string, value any) bool {
			tc, err := source.DecodeValue[test](value)
			if err != nil || strings.TrimSpace(tc.UA) == "" {
				source.RowSkipped(ctx, Name)
				return true
			}
			rec := tc.record()
			rec.Raw = value
			rec.File = path
			return emit(rec)
		})
		return nil
	})
}

func (tc test) prop(key string) *string {
	return source.ValueString(tc.Properties[key], placeholders...)
}

func (tc test) version(key string) *string {
	v := tc.prop(key)
	if v == nil || *v == "0.0" {
		return nil
	}
	return record.Version(*v)
}

func (tc test) record() *record.Record {
	rec := record.New(strings.TrimSpace(tc.UA))
	p := tc.Properties

	rec.Client = record.Client{
		Name:         tc.prop("Browser"),
		Modus:        tc.prop("Browser_Modus"),
		Version:      tc.version("Version"),
		Manufacturer: tc.prop("Browser_Maker"),
		Bits:         source.ValueInt(p["Browser_Bits"]),
		Type:         tc.prop("Browser_Type"),
		IsBot:        source.ValueBool(p["Crawler"]),
	}
	rec.Platform = record.Platform{
		Name:          tc.prop("Platform"),
		MarketingName: tc.prop("Platform_Description"),
		Version:       tc.version("Platform_Version"),
		Manufacturer:  tc.prop("Platform_Maker"),
		Bits:          source.ValueInt(p["Platform_Bits"]),
	}
	if rec.Platform.Bits != nil && *rec.Platform.Bits == 0 {
		rec.Platform.Bits = nil
	}
	if rec.Client.Bits != nil && *rec.Client.Bits == 0 {
		rec.Client.Bits = nil
	}
	rec.Engine = record.Engine{
		Name:         tc.prop("RenderingEngine_Name"),
		Version:      tc.version("RenderingEngine_Version"),
		Manufacturer: tc.prop("RenderingEngine_Maker"),
	}

	rec.Device = record.Device{
		DeviceName:    tc.prop("Device_Code_Name"),
		MarketingName: tc.prop("Device_Name"),
		Manufacturer:  tc.prop("Device_Maker"),
		Brand:         tc.prop("Device_Brand_Name"),
		Type:          tc.prop("Device_Type"),
		IsMobile:      source.ValueBool(p["isMobileDevice"]),
	}
	if pointing := tc.prop("Device_Pointing_Method"); pointing != nil {
		rec.Device.Display.Touch = record.Bool(strings.EqualFold(*pointing, "touchscreen"))
	}
	return rec
}
