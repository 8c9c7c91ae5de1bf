// Package mobiledetect reads the Mobile-Detect vendor providers: per vendor,
// a map of user agents to the expected isMobile and isTablet flags.
package mobiledetect

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
)

const Name = "mobile-detect"

type expectation struct {
	IsMobile *bool  `mapstructure:"isMobile"`
	IsTablet *bool  `mapstructure:"isTablet"`
	Model    string `mapstructure:"model"`
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
		vendors, ok := data.(map[string]any)
		if !ok {
			return fmt.Errorf("expected a map of vendors, got %T", data)
		}
		source.Items(vendors, func(vendor string, uas any) bool {
			cont := true
			source.Items(uas, func(ua string, value any) bool {
				ua = strings.TrimSpace(ua)
				exp, err := source.DecodeValue[expectation](value)
				if err != nil || ua == "" {
					source.RowSkipped(ctx, Name)
					return true
				}
				rec := exp.record(ua, vendor)
				rec.Raw = value
				rec.File = path
				cont = emit(rec)
				return cont
			})
			return cont
		})
		return nil
	})
}

func (e expectation) record(ua, vendor string) *record.Record {
	rec := record.New(ua)
	rec.Device.Manufacturer = record.Known(vendor, "Unknown")
	rec.Device.DeviceName = record.String(strings.TrimSpace(e.Model))
	rec.Device.IsMobile = e.IsMobile
	switch {
	case record.Deref(e.IsTablet):
		rec.Device.Type = record.String("tablet")
	case record.Deref(e.IsMobile):
		rec.Device.Type = record.String("mobile phone")
	case e.IsMobile != nil:
		rec.Device.Type = record.String("desktop")
	}
	return rec
}
