// Package crawlerdetect reads the crawler-detect test lists: crawlers.txt
// holds bot user agents, devices.txt holds user agents of real browsers.
package crawlerdetect

import (
	"context"
	"fmt"
	"iter"
	"path/filepath"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
	"github.com/compozy/uafixtures/engine/source/textfile"
)

const Name = "crawler-detect"

const (
	crawlersFile = "crawlers.txt"
	devicesFile  = "devices.txt"
)

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
	d := source.NewDiscoverer(Name, s.opts.Fs, s.root, "**/"+crawlersFile, "**/"+devicesFile)
	return source.StreamFiles(ctx, Name, d, s.readFile)
}

func (s *Source) readFile(path string, emit func(*record.Record) bool) error {
	isBot := filepath.Base(path) == crawlersFile
	f, err := s.opts.Fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return textfile.ScanLines(f, func(line string) bool {
		rec := record.New(line)
		rec.Client.IsBot = record.Bool(isBot)
		if isBot {
			rec.Client.Type = record.String("bot")
		}
		rec.Raw = line
		rec.File = path
		return emit(rec)
	})
}
