package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/compozy/uafixtures/engine/core"
	"github.com/compozy/uafixtures/engine/infra/postgres"
	"github.com/compozy/uafixtures/engine/source"
	"github.com/compozy/uafixtures/engine/source/browscap"
	"github.com/compozy/uafixtures/engine/source/browserdetector"
	"github.com/compozy/uafixtures/engine/source/cbschuld"
	"github.com/compozy/uafixtures/engine/source/crawlerdetect"
	"github.com/compozy/uafixtures/engine/source/crawleruseragents"
	"github.com/compozy/uafixtures/engine/source/ddjs"
	"github.com/compozy/uafixtures/engine/source/donatj"
	"github.com/compozy/uafixtures/engine/source/endorphin"
	"github.com/compozy/uafixtures/engine/source/jsonfile"
	"github.com/compozy/uafixtures/engine/source/matomo"
	"github.com/compozy/uafixtures/engine/source/mobiledetect"
	"github.com/compozy/uafixtures/engine/source/pdo"
	"github.com/compozy/uafixtures/engine/source/sinergi"
	"github.com/compozy/uafixtures/engine/source/textfile"
	"github.com/compozy/uafixtures/engine/source/uaparserjs"
	"github.com/compozy/uafixtures/engine/source/uapcore"
	"github.com/compozy/uafixtures/engine/source/whichbrowser"
	"github.com/compozy/uafixtures/engine/source/woothee"
	"github.com/compozy/uafixtures/engine/source/zsxsoft"
	"github.com/compozy/uafixtures/pkg/config"
	"github.com/compozy/uafixtures/pkg/logger"
	"github.com/spf13/afero"
)

// Factory builds a file backed source rooted at dir.
type Factory func(dir string, opts ...source.Option) source.Source

func adapt[S source.Source](fn func(string, ...source.Option) S) Factory {
	return func(dir string, opts ...source.Option) source.Source {
		return fn(dir, opts...)
	}
}

type registration struct {
	name    string
	factory Factory
}

// fileSources lists the file backed sources in emission order.
var fileSources = []registration{
	{textfile.Name, func(dir string, opts ...source.Option) source.Source {
		return textfile.New(dir, nil, opts...)
	}},
	{jsonfile.Name, adapt(jsonfile.New)},
	{browscap.Name, adapt(browscap.New)},
	{browserdetector.Name, adapt(browserdetector.New)},
	{cbschuld.Name, adapt(cbschuld.New)},
	{crawlerdetect.Name, adapt(crawlerdetect.New)},
	{crawleruseragents.Name, adapt(crawleruseragents.New)},
	{donatj.Name, adapt(donatj.New)},
	{endorphin.Name, adapt(endorphin.New)},
	{matomo.Name, adapt(matomo.New)},
	{ddjs.Name, adapt(ddjs.New)},
	{mobiledetect.Name, adapt(mobiledetect.New)},
	{sinergi.Name, adapt(sinergi.New)},
	{uapcore.Name, adapt(uapcore.New)},
	{uaparserjs.Name, adapt(uaparserjs.New)},
	{whichbrowser.Name, adapt(whichbrowser.New)},
	{woothee.Name, adapt(woothee.New)},
	{zsxsoft.Name, adapt(zsxsoft.New)},
}

// SourceNames returns every known source name, the database source last.
func SourceNames() []string {
	names := make([]string, 0, len(fileSources)+1)
	for _, reg := range fileSources {
		names = append(names, reg.name)
	}
	return append(names, pdo.Name)
}

// dbStore is the part of postgres.Store the registry needs.
type dbStore interface {
	DB() postgres.DB
	Close(ctx context.Context)
}

// Registry assembles the sources selected by the configuration.
type Registry struct {
	fs    afero.Fs
	store dbStore
}

func NewRegistry(fsys afero.Fs) *Registry {
	return &Registry{fs: fsys}
}

func (r *Registry) selected(cfg *config.Config) (func(string) bool, error) {
	known := SourceNames()
	for _, name := range cfg.Sources.Enabled {
		if !slices.Contains(known, name) {
			return nil, core.NewError(
				fmt.Errorf("unknown source %q", name),
				"UNKNOWN_SOURCE",
				map[string]any{"available": known},
			)
		}
	}
	return func(name string) bool {
		return len(cfg.Sources.Enabled) == 0 || slices.Contains(cfg.Sources.Enabled, name)
	}, nil
}

func (r *Registry) dir(cfg *config.Config, name string) string {
	if dir, ok := cfg.Sources.Paths[name]; ok && dir != "" {
		return dir
	}
	return filepath.Join(cfg.Sources.Root, name)
}

// Sources builds the configured sources in registry order. The database
// source joins when it is configured, or fails the call when it was asked
// for explicitly without a database.
func (r *Registry) Sources(ctx context.Context, cfg *config.Config) ([]source.Source, error) {
	want, err := r.selected(cfg)
	if err != nil {
		return nil, err
	}
	opts := []source.Option{source.WithFs(r.fs)}
	var out []source.Source
	for _, reg := range fileSources {
		if want(reg.name) {
			out = append(out, reg.factory(r.dir(cfg, reg.name), opts...))
		}
	}
	explicit := slices.Contains(cfg.Sources.Enabled, pdo.Name)
	if !cfg.Database.Enabled() {
		if explicit {
			return nil, core.NewError(fmt.Errorf("source %s needs a database", pdo.Name), "DATABASE_NOT_CONFIGURED", nil)
		}
		return out, nil
	}
	if !want(pdo.Name) {
		return out, nil
	}
	store, err := r.connect(ctx, cfg)
	if err != nil {
		return nil, core.NewError(err, "DATABASE_UNAVAILABLE", nil)
	}
	return append(out, pdo.New(postgres.NewRequestRepo(store.DB()))), nil
}

func (r *Registry) connect(ctx context.Context, cfg *config.Config) (dbStore, error) {
	if r.store != nil {
		return r.store, nil
	}
	db := cfg.Database
	store, err := postgres.NewStore(ctx, &postgres.Config{
		ConnString:     db.ConnString.Value(),
		Host:           db.Host,
		Port:           db.Port,
		User:           db.User,
		Password:       db.Password.Value(),
		DBName:         db.DBName,
		SSLMode:        db.SSLMode,
		MaxOpenConns:   db.MaxOpenConns,
		ConnectTimeout: db.ConnectTimeout,
	})
	if err != nil {
		return nil, err
	}
	r.store = store
	return store, nil
}

// Close releases the database pool, if one was opened.
func (r *Registry) Close(ctx context.Context) {
	if r.store != nil {
		r.store.Close(ctx)
		r.store = nil
	}
}

// Ready keeps the sources that report ready. The others have already
// written their reason to the sink and are skipped with a warning.
func Ready(ctx context.Context, sources []source.Source) *source.Collection {
	log := logger.FromContext(ctx)
	var ready []source.Source
	for _, s := range sources {
		if !s.IsReady(ctx) {
			log.Warn("Skipping source", "source", s.Name())
			continue
		}
		ready = append(ready, s)
	}
	return source.NewCollection(ready...)
}
