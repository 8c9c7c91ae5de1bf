// Package sinergi reads the XML user-agent lists of php-browser-detector.
//
// Each <string> element holds <field> children in fixed order: browser,
// browser version, platform, platform version, device, user agent.
package sinergi

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
)

const Name = "sinergi"

const (
	fieldBrowser = iota
	fieldBrowserVersion
	fieldPlatform
	fieldPlatformVersion
	fieldDevice
	fieldUserAgent
	fieldCount
)

var placeholders = []string{"unknown", "other"}

type entryXML struct {
	Fields []string `xml:"field"`
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
	d := source.NewDiscoverer(Name, s.opts.Fs, s.root, "**/*.xml")
	return source.StreamFiles(ctx, Name, d, func(path string, emit func(*record.Record) bool) error {
		return s.readFile(ctx, path, emit)
	})
}

func (s *Source) readFile(ctx context.Context, path string, emit func(*record.Record) bool) error {
	entries, err := s.decodeFile(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		rec, ok := mapEntry(entry)
		if !ok {
			source.RowSkipped(ctx, Name)
			continue
		}
		rec.File = path
		if !emit(rec) {
			return nil
		}
	}
	return nil
}

// decodeFile reads every <string> element of the document. A malformed
// document yields no entries.
func (s *Source) decodeFile(path string) ([]entryXML, error) {
	f, err := s.opts.Fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	dec := xml.NewDecoder(f)
	var entries []entryXML
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode XML: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "string" {
			continue
		}
		var entry entryXML
		if err := dec.DecodeElement(&entry, &start); err != nil {
			return nil, fmt.Errorf("failed to decode XML element: %w", err)
		}
		entries = append(entries, entry)
	}
}

func mapEntry(entry entryXML) (*record.Record, bool) {
	if len(entry.Fields) < fieldCount {
		return nil, false
	}
	fields := make([]string, len(entry.Fields))
	for i, f := range entry.Fields {
		fields[i] = strings.TrimSpace(f)
	}
	ua := fields[fieldUserAgent]
	if ua == "" {
		return nil, false
	}
	rec := record.New(ua)
	rec.Client.Name = record.Known(fields[fieldBrowser], placeholders...)
	rec.Client.Version = record.Version(record.Deref(record.Known(fields[fieldBrowserVersion], placeholders...)))
	rec.Platform.Name = record.Known(fields[fieldPlatform], placeholders...)
	rec.Platform.Version = record.Version(record.Deref(record.Known(fields[fieldPlatformVersion], placeholders...)))
	rec.Device.DeviceName = record.Known(fields[fieldDevice], placeholders...)
	rec.Raw = fields
	return rec, true
}
