package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/compozy/uafixtures/engine/infra/postgres"
	"github.com/compozy/uafixtures/engine/source/textfile"
	"github.com/compozy/uafixtures/pkg/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureFs(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/fx/text-files/list.txt", []byte("UA-1\nUA-2\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/fx/json-files/a.json",
		[]byte(`[{"headers":{"user-agent":"UA-json","accept":"*/*"}}]`), 0o644))
	return fsys
}

func run(t *testing.T, fsys afero.Fs, args ...string) (string, error) {
	t.Helper()
	return runApp(t, &app{registry: NewRegistry(fsys), metrics: newRunMetrics()}, args...)
}

func runApp(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	cmd := buildRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	base := []string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "--log-level", "disabled", "--root", "/fx"}
	cmd.SetArgs(append(args, base...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	t.Run("Should print one user agent per line", func(t *testing.T) {
		out, err := run(t, fixtureFs(t), "list", "--source", textfile.Name)
		require.NoError(t, err)
		assert.Equal(t, "UA-1\nUA-2\n", out)
	})

	t.Run("Should skip sources that are not ready", func(t *testing.T) {
		out, err := run(t, fixtureFs(t), "list", "--source", "text-files,woothee")
		require.NoError(t, err)
		assert.Equal(t, "UA-1\nUA-2\n", out)
	})

	t.Run("Should reject unknown source names", func(t *testing.T) {
		_, err := run(t, fixtureFs(t), "list", "--source", "no-such-source")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no-such-source")
	})
}

func TestHeadersCommand(t *testing.T) {
	t.Run("Should print encoded header sets", func(t *testing.T) {
		out, err := run(t, fixtureFs(t), "headers", "--source", "json-files")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "UA-json")
	})
}

func TestDumpCommand(t *testing.T) {
	t.Run("Should write one JSON document per record", func(t *testing.T) {
		out, err := run(t, fixtureFs(t), "dump", "--source", textfile.Name)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		var doc struct {
			ID     string `json:"id"`
			Record struct {
				Headers map[string]string `json:"headers"`
				File    string            `json:"file"`
			} `json:"record"`
		}
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &doc))
		assert.NotEmpty(t, doc.ID)
		assert.Equal(t, "UA-1", doc.Record.Headers["user-agent"])
		assert.Equal(t, "/fx/text-files/list.txt", doc.Record.File)
	})

	t.Run("Should indent output with --pretty", func(t *testing.T) {
		out, err := run(t, fixtureFs(t), "dump", "--pretty", "--source", textfile.Name)
		require.NoError(t, err)
		assert.Contains(t, out, "\n  \"record\"")
	})
}

func TestReadyCommand(t *testing.T) {
	t.Run("Should report readiness per source", func(t *testing.T) {
		out, err := run(t, fixtureFs(t), "ready", "--source", "text-files,woothee")
		require.NoError(t, err)
		assert.Regexp(t, `text-files\s+true`, out)
		assert.Regexp(t, `woothee\s+false`, out)
	})
}

func TestSourcesCommand(t *testing.T) {
	t.Run("Should list every known source", func(t *testing.T) {
		out, err := run(t, afero.NewMemMapFs(), "sources")
		require.NoError(t, err)
		names := strings.Fields(out)
		assert.Equal(t, SourceNames(), names)
		assert.Contains(t, names, "pdo")
	})
}

func TestRegistry_Sources(t *testing.T) {
	t.Run("Should honor per source path overrides", func(t *testing.T) {
		cfg := config.Default()
		cfg.Sources.Root = "/fx"
		cfg.Sources.Enabled = []string{textfile.Name}
		cfg.Sources.Paths = map[string]string{textfile.Name: "/elsewhere"}
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/elsewhere/a.txt", []byte("UA-x\n"), 0o644))
		sources, err := NewRegistry(fsys).Sources(context.Background(), cfg)
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.True(t, sources[0].IsReady(context.Background()))
	})

	t.Run("Should build every file source when none is selected", func(t *testing.T) {
		cfg := config.Default()
		sources, err := NewRegistry(afero.NewMemMapFs()).Sources(context.Background(), cfg)
		require.NoError(t, err)
		assert.Len(t, sources, len(fileSources))
	})

	t.Run("Should fail when the database source is requested without a database", func(t *testing.T) {
		cfg := config.Default()
		cfg.Sources.Enabled = []string{"pdo"}
		_, err := NewRegistry(afero.NewMemMapFs()).Sources(context.Background(), cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "needs a database")
	})
}

type fakeStore struct {
	closed bool
}

func (f *fakeStore) DB() postgres.DB { return nil }

func (f *fakeStore) Close(context.Context) { f.closed = true }

func TestRegistry_Close(t *testing.T) {
	t.Run("Should close the database store when the command fails", func(t *testing.T) {
		store := &fakeStore{}
		a := &app{registry: NewRegistry(fixtureFs(t)), metrics: newRunMetrics()}
		a.registry.store = store
		_, err := runApp(t, a, "list", "--source", "no-such-source")
		require.Error(t, err)
		assert.True(t, store.closed)
		assert.Nil(t, a.registry.store)
	})

	t.Run("Should close the database store after a successful run", func(t *testing.T) {
		store := &fakeStore{}
		a := &app{registry: NewRegistry(fixtureFs(t)), metrics: newRunMetrics()}
		a.registry.store = store
		_, err := runApp(t, a, "ready", "--source", textfile.Name)
		require.NoError(t, err)
		assert.True(t, store.closed)
	})
}

func TestRunMetrics_Summary(t *testing.T) {
	t.Run("Should count streamed and skipped records per source", func(t *testing.T) {
		fsys := fixtureFs(t)
		require.NoError(t, afero.WriteFile(fsys, "/fx/sinergi/broken.xml", []byte("<strings><string><field>x</strings>"), 0o644))
		a := &app{registry: NewRegistry(fsys), metrics: newRunMetrics()}
		_, err := runApp(t, a, "dump", "--source", "text-files,sinergi")
		require.NoError(t, err)

		summary, err := a.metrics.Summary(context.Background())
		require.NoError(t, err)
		require.Contains(t, summary, textfile.Name)
		assert.Equal(t, int64(2), summary[textfile.Name].Records)
		assert.Equal(t, int64(0), summary[textfile.Name].Skipped)
		require.Contains(t, summary, "sinergi")
		assert.Equal(t, int64(0), summary["sinergi"].Records)
		assert.Equal(t, int64(1), summary["sinergi"].Skipped)
	})
}
