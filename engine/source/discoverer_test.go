package source_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	}
	return fsys
}

func collectFiles(t *testing.T, ctx context.Context, d *source.Discoverer) ([]string, error) {
	t.Helper()
	var out []string
	for path, err := range d.Files(ctx) {
		if err != nil {
			return out, err
		}
		out = append(out, path)
	}
	return out, nil
}

func TestDiscoverer_Files(t *testing.T) {
	t.Run("Should yield matching files in lexical order", func(t *testing.T) {
		fsys := fixtureFs(t, map[string]string{
			"/fx/b.txt":       "",
			"/fx/a.txt":       "",
			"/fx/sub/c.txt":   "",
			"/fx/sub/d.json":  "",
			"/fx/sub/e.txt~":  "",
			"/fx/sub/.#f.txt": "",
		})
		d := source.NewDiscoverer("txt", fsys, "/fx", "**/*.txt")
		files, err := collectFiles(t, t.Context(), d)
		require.NoError(t, err)
		assert.Equal(t, []string{"/fx/a.txt", "/fx/b.txt", "/fx/sub/c.txt"}, files)
	})
	t.Run("Should apply extra excludes", func(t *testing.T) {
		fsys := fixtureFs(t, map[string]string{
			"/fx/a.txt":      "",
			"/fx/skip/b.txt": "",
			"/fx/keep/c.txt": "",
		})
		d := source.NewDiscoverer("txt", fsys, "/fx", "**/*.txt").Exclude("skip/**")
		files, err := collectFiles(t, t.Context(), d)
		require.NoError(t, err)
		assert.Equal(t, []string{"/fx/a.txt", "/fx/keep/c.txt"}, files)
	})
	t.Run("Should fail with a traversal error for a missing root", func(t *testing.T) {
		d := source.NewDiscoverer("txt", afero.NewMemMapFs(), "/nowhere", "**/*.txt")
		_, err := collectFiles(t, t.Context(), d)
		var srcErr *source.Error
		require.True(t, errors.As(err, &srcErr))
		assert.Equal(t, source.ErrorKindTraversal, srcErr.Kind)
		assert.Equal(t, "/nowhere", srcErr.Path)
	})
	t.Run("Should fail with a traversal error when root is a file", func(t *testing.T) {
		fsys := fixtureFs(t, map[string]string{"/fx.txt": "UA"})
		d := source.NewDiscoverer("txt", fsys, "/fx.txt", "**/*.txt")
		_, err := collectFiles(t, t.Context(), d)
		var srcErr *source.Error
		require.True(t, errors.As(err, &srcErr))
		assert.Contains(t, err.Error(), "not a directory")
	})
	t.Run("Should reject patterns escaping the root", func(t *testing.T) {
		fsys := fixtureFs(t, map[string]string{"/fx/a.txt": ""})
		for _, pattern := range []string{"../*.txt", "/etc/*.txt", "[.txt"} {
			d := source.NewDiscoverer("txt", fsys, "/fx", pattern)
			_, err := collectFiles(t, t.Context(), d)
			var srcErr *source.Error
			require.True(t, errors.As(err, &srcErr), pattern)
			assert.Contains(t, err.Error(), "INVALID_PATTERN")
		}
	})
	t.Run("Should stop walking when the consumer stops", func(t *testing.T) {
		fsys := fixtureFs(t, map[string]string{"/fx/a.txt": "", "/fx/b.txt": ""})
		d := source.NewDiscoverer("txt", fsys, "/fx", "*.txt")
		var got []string
		for path, err := range d.Files(t.Context()) {
			require.NoError(t, err)
			got = append(got, path)
			break
		}
		assert.Equal(t, []string{"/fx/a.txt"}, got)
	})
	t.Run("Should yield the context error when canceled", func(t *testing.T) {
		fsys := fixtureFs(t, map[string]string{"/fx/a.txt": ""})
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err := collectFiles(t, ctx, source.NewDiscoverer("txt", fsys, "/fx", "*.txt"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStreamFiles(t *testing.T) {
	lines := func(path string, emit func(*record.Record) bool) error {
		if strings.HasSuffix(path, "bad.txt") {
			return errors.New("corrupt")
		}
		for _, ua := range []string{"UA-" + path} {
			if !emit(record.New(ua)) {
				return nil
			}
		}
		return nil
	}
	t.Run("Should skip failing files and continue", func(t *testing.T) {
		fsys := fixtureFs(t, map[string]string{
			"/fx/a.txt":   "",
			"/fx/bad.txt": "",
			"/fx/c.txt":   "",
		})
		sink := &recordingSink{}
		ctx := source.ContextWithSink(t.Context(), sink)
		d := source.NewDiscoverer("txt", fsys, "/fx", "*.txt")
		var uas []string
		for entry, err := range source.StreamFiles(ctx, "txt", d, lines) {
			require.NoError(t, err)
			uas = append(uas, entry.Record.UserAgent())
		}
		assert.Equal(t, []string{"UA-/fx/a.txt", "UA-/fx/c.txt"}, uas)
		assert.True(t, sink.contains("skipping fixture file"))
		assert.True(t, sink.contains("corrupt"))
	})
	t.Run("Should drop records of a file that fails midway", func(t *testing.T) {
		fsys := fixtureFs(t, map[string]string{
			"/fx/a.txt":     "",
			"/fx/trunc.txt": "",
		})
		partial := func(path string, emit func(*record.Record) bool) error {
			emit(record.New("UA-" + path))
			if strings.HasSuffix(path, "trunc.txt") {
				return errors.New("unexpected end of file")
			}
			return nil
		}
		sink := &recordingSink{}
		ctx := source.ContextWithSink(t.Context(), sink)
		d := source.NewDiscoverer("txt", fsys, "/fx", "*.txt")
		var uas []string
		for entry, err := range source.StreamFiles(ctx, "txt", d, partial) {
			require.NoError(t, err)
			uas = append(uas, entry.Record.UserAgent())
		}
		assert.Equal(t, []string{"UA-/fx/a.txt"}, uas)
		assert.True(t, sink.contains("skipping fixture file"))
	})
	t.Run("Should stop with the context error once cancelled", func(t *testing.T) {
		fsys := fixtureFs(t, map[string]string{"/fx/a.txt": ""})
		ctx, cancel := context.WithCancel(t.Context())
		fn := func(_ string, emit func(*record.Record) bool) error {
			cancel()
			assert.False(t, emit(record.New("UA-late")))
			return nil
		}
		d := source.NewDiscoverer("txt", fsys, "/fx", "*.txt")
		var errs []error
		for entry, err := range source.StreamFiles(ctx, "txt", d, fn) {
			assert.Nil(t, entry)
			errs = append(errs, err)
		}
		require.Len(t, errs, 1)
		assert.ErrorIs(t, errs[0], context.Canceled)
	})
	t.Run("Should yield the traversal error", func(t *testing.T) {
		d := source.NewDiscoverer("txt", afero.NewMemMapFs(), "/none", "*.txt")
		var errs []error
		for _, err := range source.StreamFiles(t.Context(), "txt", d, lines) {
			errs = append(errs, err)
		}
		require.Len(t, errs, 1)
		var srcErr *source.Error
		assert.True(t, errors.As(errs[0], &srcErr))
	})
}

func TestMergeFiles(t *testing.T) {
	t.Run("Should merge disjoint axes under one identifier", func(t *testing.T) {
		fsys := fixtureFs(t, map[string]string{
			"/fx/1-client.txt":   "",
			"/fx/2-platform.txt": "",
		})
		d := source.NewDiscoverer("merge", fsys, "/fx", "*.txt")
		fn := func(path string, m *source.Merger) error {
			for _, ua := range []string{"UA-1", "UA-2"} {
				b := m.Get(ua)
				if strings.Contains(path, "client") {
					b.MergeClient(record.Client{Name: record.String("Chrome")})
					b.AddFile(record.AxisClient, path)
				} else {
					b.MergePlatform(record.Platform{Name: record.String("Linux")})
					b.AddFile(record.AxisPlatform, path)
				}
				b.AddRaw(path, ua)
			}
			return nil
		}
		var entries []*source.Entry
		for entry, err := range source.MergeFiles(t.Context(), "merge", d, fn) {
			require.NoError(t, err)
			entries = append(entries, entry)
		}
		require.Len(t, entries, 2)
		assert.NotEqual(t, entries[0].ID, entries[1].ID)
		for i, ua := range []string{"UA-1", "UA-2"} {
			rec := entries[i].Record
			assert.Equal(t, ua, rec.UserAgent())
			assert.Equal(t, "Chrome", *rec.Client.Name)
			assert.Equal(t, "Linux", *rec.Platform.Name)
			assert.Equal(t, map[string]string{
				"client":   "/fx/1-client.txt",
				"platform": "/fx/2-platform.txt",
			}, rec.File)
		}
	})
	t.Run("Should skip failing files", func(t *testing.T) {
		fsys := fixtureFs(t, map[string]string{"/fx/a.txt": "", "/fx/b.txt": ""})
		d := source.NewDiscoverer("merge", fsys, "/fx", "*.txt")
		fn := func(path string, m *source.Merger) error {
			if strings.HasSuffix(path, "a.txt") {
				return errors.New("broken")
			}
			m.Get("UA")
			return nil
		}
		count := 0
		for _, err := range source.MergeFiles(t.Context(), "merge", d, fn) {
			require.NoError(t, err)
			count++
		}
		assert.Equal(t, 1, count)
	})
}
