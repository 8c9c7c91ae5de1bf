// Package cbschuld reads the tab separated test lists of browser.php.
//
// Columns: user agent, browser type, browser, browser version, platform,
// platform version. A header line and lines starting with # are skipped.
package cbschuld

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
)

const Name = "cbschuld"

const (
	colUserAgent = iota
	colType
	colBrowser
	colVersion
	colPlatform
	colPlatformVersion
)

// placeholders the lists use for "unknown".
var placeholders = []string{"unknown", "-"}

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
	d := source.NewDiscoverer(Name, s.opts.Fs, s.root, "**/*.txt", "**/*.tsv")
	return source.StreamFiles(ctx, Name, d, func(path string, emit func(*record.Record) bool) error {
		return s.readFile(ctx, path, emit)
	})
}

func (s *Source) readFile(ctx context.Context, path string, emit func(*record.Record) bool) error {
	f, err := s.opts.Fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.Comment = '#'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.ReuseRecord = true
	for line := 0; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read row: %w", err)
		}
		if line == 0 && isHeader(row) {
			continue
		}
		rec, ok := mapRow(row)
		if !ok {
			source.RowSkipped(ctx, Name)
			continue
		}
		rec.File = path
		if !emit(rec) {
			return nil
		}
	}
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.HasPrefix(strings.ToLower(strings.TrimSpace(row[0])), "user agent")
}

func column(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func mapRow(row []string) (*record.Record, bool) {
	ua := column(row, colUserAgent)
	if ua == "" {
		return nil, false
	}
	rec := record.New(ua)
	browserType := column(row, colType)
	rec.Client.Type = record.Known(strings.ToLower(browserType), placeholders...)
	rec.Client.IsBot = record.Bool(strings.EqualFold(browserType, "robot"))
	rec.Client.Name = record.Known(column(row, colBrowser), placeholders...)
	rec.Client.Version = record.Version(column(row, colVersion))
	rec.Platform.Name = record.Known(column(row, colPlatform), placeholders...)
	rec.Platform.Version = record.Version(column(row, colPlatformVersion))
	raw := make([]string, len(row))
	copy(raw, row)
	rec.Raw = raw
	return rec, true
}
