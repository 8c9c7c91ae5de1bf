// Package textfile reads plain user-agent lists, one user agent per line.
package textfile

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
)

const Name = "text-files"

// maxLineSize bounds a single fixture line.
const maxLineSize = 1 << 20

type Source struct {
	root     string
	includes []string
	opts     source.Options
}

// New reads every *.txt file below root. Pass patterns to read other files.
func New(root string, patterns []string, opts ...source.Option) *Source {
	if len(patterns) == 0 {
		patterns = []string{"**/*.txt"}
	}
	return &Source{root: root, includes: patterns, opts: source.NewOptions(opts...)}
}

func (s *Source) Name() string {
	return Name
}

func (s *Source) IsReady(ctx context.Context) bool {
	return source.DirReady(ctx, s.opts.Fs, Name, s.root)
}

func (s *Source) Properties(ctx context.Context) iter.Seq2[*source.Entry, error] {
	d := source.NewDiscoverer(Name, s.opts.Fs, s.root, s.includes...)
	return source.StreamFiles(ctx, Name, d, s.readFile)
}

func (s *Source) readFile(path string, emit func(*record.Record) bool) error {
	f, err := s.opts.Fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return ScanLines(f, func(line string) bool {
		rec := record.New(line)
		rec.File = path
		return emit(rec)
	})
}

// ScanLines calls fn with every non-empty trimmed line of r until fn
// returns false.
func ScanLines(r io.Reader, fn func(line string) bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !fn(line) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read lines: %w", err)
	}
	return nil
}
