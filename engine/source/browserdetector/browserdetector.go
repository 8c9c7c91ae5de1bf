// Package browserdetector reads the JSON test data of browser-detector:
// arrays of {headers, result} objects where result covers every axis.
package browserdetector

import (
	"context"
	"fmt"
	"iter"

	"github.com/compozy/uafixtures/engine/header"
	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
	"github.com/tidwall/gjson"
)

const Name = "browser-detector"

var placeholders = []string{"unknown"}

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
		return fmt.Errorf("expected a JSON array of test cases")
	}
	source.JSONElements(doc, func(_ string, value gjson.Result) bool {
		rec, ok := mapTest(value)
		if !ok {
			source.RowSkipped(ctx, Name)
			return true
		}
		rec.File = path
		return emit(rec)
	})
	return nil
}

func mapTest(test gjson.Result) (*record.Record, bool) {
	headers, err := header.FromJSON([]byte(test.Get("headers").Raw))
	if err != nil || headers.UserAgent() == "" {
		return nil, false
	}
	result := test.Get("result")
	rec := &record.Record{Headers: headers}

	device := result.Get("device")
	rec.Device = record.Device{
		DeviceName:    source.JSONString(device.Get("deviceName"), placeholders...),
		MarketingName: source.JSONString(device.Get("marketingName"), placeholders...),
		Manufacturer:  source.JSONString(device.Get("manufacturer"), placeholders...),
		Brand:         source.JSONString(device.Get("brand"), placeholders...),
		Display: record.Display{
			Width:  source.JSONInt(device.Get("display.width")),
			Height: source.JSONInt(device.Get("display.height")),
			Touch:  source.JSONBool(device.Get("display.touch")),
			Type:   source.JSONString(device.Get("display.type"), placeholders...),
			Size:   source.JSONFloat(device.Get("display.size")),
		},
		DualOrientation: source.JSONBool(device.Get("dualOrientation")),
		Type:            source.JSONString(device.Get("type"), placeholders...),
		SimCount:        source.JSONInt(device.Get("simCount")),
		IsMobile:        source.JSONBool(device.Get("ismobile")),
	}

	client := result.Get("browser")
	rec.Client = record.Client{
		Name:         source.JSONString(client.Get("name"), placeholders...),
		Modus:        source.JSONString(client.Get("modus"), placeholders...),
		Version:      source.JSONVersion(client.Get("version")),
		Manufacturer: source.JSONString(client.Get("manufacturer"), placeholders...),
		Bits:         source.JSONInt(client.Get("bits")),
		Type:         source.JSONString(client.Get("type"), placeholders...),
		IsBot:        source.JSONBool(client.Get("isbot")),
	}

	platform := result.Get("os")
	rec.Platform = record.Platform{
		Name:          source.JSONString(platform.Get("name"), placeholders...),
		MarketingName: source.JSONString(platform.Get("marketingName"), placeholders...),
		Version:       source.JSONVersion(platform.Get("version")),
		Manufacturer:  source.JSONString(platform.Get("manufacturer"), placeholders...),
		Bits:          source.JSONInt(platform.Get("bits")),
	}

	engine := result.Get("engine")
	rec.Engine = record.Engine{
		Name:         source.JSONString(engine.Get("name"), placeholders...),
		Version:      source.JSONVersion(engine.Get("version")),
		Manufacturer: source.JSONString(engine.Get("manufacturer"), placeholders...),
	}
	rec.Raw = test.Value()
	return rec, true
}
