package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// DefaultExcludes contains patterns for common temporary/backup files that should be ignored
var DefaultExcludes = []string{
	"**/.#*",   // Emacs lock files
	"**/*~",    // Backup files
	"**/*.bak", // Backup files
	"**/*.swp", // Vim swap files
	"**/*.tmp", // Temporary files
	"**/._*",   // macOS resource forks
}

var errStopWalk = errors.New("walk stopped by consumer")

// Discoverer lazily enumerates the fixture files below a root directory.
// Include and exclude patterns use doublestar syntax relative to the root.
type Discoverer struct {
	name     string
	fs       afero.Fs
	root     string
	includes []string
	excludes []string
}

// NewDiscoverer creates a discoverer for the files of source name below
// root matching any of includes.
func NewDiscoverer(name string, fsys afero.Fs, root string, includes ...string) *Discoverer {
	return &Discoverer{
		name:     name,
		fs:       fsys,
		root:     filepath.Clean(root),
		includes: includes,
	}
}

// Exclude adds exclude patterns on top of DefaultExcludes.
func (d *Discoverer) Exclude(patterns ...string) *Discoverer {
	d.excludes = append(d.excludes, patterns...)
	return d
}

// Rel returns path relative to the root in slash form, or path unchanged
// when it lies outside the root.
func (d *Discoverer) Rel(path string) string {
	rel, err := filepath.Rel(d.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Files walks the tree in lexical order and yields the path of every
// matching file. An unusable root or pattern is yielded as a traversal
// *Error; unreadable nested entries are reported to the sink and skipped.
func (d *Discoverer) Files(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if err := d.validatePatterns(); err != nil {
			yield("", TraversalError(d.name, d.root, err))
			return
		}
		info, err := d.fs.Stat(d.root)
		if err != nil {
			yield("", TraversalError(d.name, d.root, err))
			return
		}
		if !info.IsDir() {
			yield("", TraversalError(d.name, d.root, fmt.Errorf("not a directory")))
			return
		}
		sink := SinkFromContext(ctx)
		excludes := d.combineExcludePatterns()
		walkErr := afero.Walk(d.fs, d.root, func(path string, info fs.FileInfo, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				if path == d.root {
					return err
				}
				sink.Writeln(VerbosityError, "skipping unreadable entry", "source", d.name, "file", path, "error", err)
				if info != nil && info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if info.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(d.root, path)
			if err != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)
			if !d.included(rel) || excluded(rel, filepath.Base(path), excludes) {
				sink.Writeln(VerbosityVeryVerbose, "ignoring file", "source", d.name, "file", path)
				return nil
			}
			if !yield(path, nil) {
				return errStopWalk
			}
			return nil
		})
		switch {
		case walkErr == nil, errors.Is(walkErr, errStopWalk):
			return
		case ctx.Err() != nil && errors.Is(walkErr, ctx.Err()):
			yield("", walkErr)
		default:
			yield("", TraversalError(d.name, d.root, walkErr))
		}
	}
}

// validatePatterns rejects absolute patterns, parent references and syntax
// errors before any file is read.
func (d *Discoverer) validatePatterns() error {
	if len(d.includes) == 0 {
		return fmt.Errorf("no include patterns")
	}
	for _, pattern := range slices.Concat(d.includes, d.excludes) {
		cleanPattern := filepath.Clean(pattern)
		if filepath.IsAbs(cleanPattern) {
			return fmt.Errorf("INVALID_PATTERN: absolute paths not allowed: %s", pattern)
		}
		if slices.Contains(strings.Split(filepath.ToSlash(cleanPattern), "/"), "..") {
			return fmt.Errorf("INVALID_PATTERN: parent directory references not allowed: %s", pattern)
		}
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return fmt.Errorf("INVALID_PATTERN: %s: %w", pattern, doublestar.ErrBadPattern)
		}
	}
	return nil
}

func (d *Discoverer) included(rel string) bool {
	for _, pattern := range d.includes {
		if matched, err := doublestar.Match(filepath.ToSlash(pattern), rel); err == nil && matched {
			return true
		}
	}
	return false
}

// combineExcludePatterns merges and normalizes user and default exclude patterns.
func (d *Discoverer) combineExcludePatterns() []string {
	combined := make([]string, 0, len(DefaultExcludes)+len(d.excludes))
	combined = append(combined, DefaultExcludes...)
	combined = append(combined, d.excludes...)
	for i, pattern := range combined {
		combined[i] = filepath.ToSlash(pattern)
	}
	return combined
}

// excluded checks the patterns against relative and base filenames.
func excluded(rel, base string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

// DirReady reports whether root exists and is a directory. Failures are
// written to the sink on ctx.
func DirReady(ctx context.Context, fsys afero.Fs, name, root string) bool {
	sink := SinkFromContext(ctx)
	info, err := fsys.Stat(root)
	if err != nil {
		sink.Writeln(VerbosityError, "source directory not available", "source", name, "root", root, "error", err)
		return false
	}
	if !info.IsDir() {
		sink.Writeln(VerbosityError, "source root is not a directory", "source", name, "root", root)
		return false
	}
	return true
}
