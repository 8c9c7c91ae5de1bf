// Package cli wires the fixture sources into a cobra command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/compozy/uafixtures/engine/core"
	"github.com/compozy/uafixtures/engine/source"
	"github.com/compozy/uafixtures/pkg/config"
	"github.com/compozy/uafixtures/pkg/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "uafixtures.yaml"

// RootCmd returns the command tree reading fixtures from the OS filesystem.
func RootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

// app holds what the commands of one root share.
type app struct {
	registry *Registry
	metrics  *runMetrics
}

func newRootCmd(fsys afero.Fs) *cobra.Command {
	return buildRootCmd(&app{registry: NewRegistry(fsys), metrics: newRunMetrics()})
}

func buildRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "uafixtures",
		Short:        "Normalize user-agent test fixtures into one record stream",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := setupCommand(cmd); err != nil {
				return err
			}
			cmd.SetContext(a.metrics.context(cmd.Context()))
			return nil
		},
	}
	flags := root.PersistentFlags()
	flags.String("config", defaultConfigFile, "Path to the configuration file")
	flags.String("log-level", "info", "Log level (debug, info, warn, error, disabled)")
	flags.Bool("log-json", false, "Write log lines as JSON")
	flags.String("root", "", "Directory holding one fixture tree per source")
	flags.StringSlice("source", nil, "Restrict the run to the named sources")
	flags.CountP("verbose", "v", "Increase progress output (repeatable)")
	flags.String("db-dsn", "", "PostgreSQL connection string for the request source")

	root.AddCommand(
		readyCmd(a),
		listCmd(a),
		headersCmd(a),
		dumpCmd(a),
		sourcesCmd(),
	)
	return root
}

// setupCommand loads the configuration and stores it on the command context
// together with the logger and the progress sink.
func setupCommand(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cliFlags := make(map[string]any)
	extractCLIFlags(cmd, cliFlags)
	svc := config.NewService()
	cfg, err := svc.Load(ctx, config.NewYAMLProvider(path), config.NewCLIProvider(cliFlags))
	if err != nil {
		return core.NewError(err, "CONFIG_LOAD_FAILED", map[string]any{"file": path})
	}
	level := cfg.Log.Level
	if cfg.Output.Verbosity > 0 && logger.ParseLevel(level) == logger.InfoLevel {
		level = string(logger.DebugLevel)
	}
	logger.SetupLogger(level, cfg.Log.JSON, cfg.Log.Source)
	log := logger.GetDefault()
	log.Debug("Configuration loaded", "file", path, "root", cfg.Sources.Root)

	ctx = logger.ContextWithLogger(ctx, log)
	ctx = config.ContextWithConfig(ctx, cfg)
	ctx = source.ContextWithSink(ctx, source.NewLogSink(log, source.Verbosity(cfg.Output.Verbosity)))
	cmd.SetContext(ctx)
	return nil
}

// extractCLIFlags copies the flags changed by the user into flags.
func extractCLIFlags(cmd *cobra.Command, flags map[string]any) {
	addFlag := func(flagName string, getter func(string) (any, error)) {
		if cmd.Flags().Changed(flagName) {
			if value, err := getter(flagName); err == nil {
				flags[flagName] = value
			}
		}
	}
	getString := func(name string) (any, error) { return cmd.Flags().GetString(name) }
	getBool := func(name string) (any, error) { return cmd.Flags().GetBool(name) }
	getCount := func(name string) (any, error) { return cmd.Flags().GetCount(name) }
	getSlice := func(name string) (any, error) { return cmd.Flags().GetStringSlice(name) }

	flagDefs := []struct {
		name   string
		getter func(string) (any, error)
	}{
		{"log-level", getString},
		{"log-json", getBool},
		{"root", getString},
		{"source", getSlice},
		{"verbose", getCount},
		{"db-dsn", getString},
		{"pretty", getBool},
	}
	for _, def := range flagDefs {
		if cmd.Flags().Lookup(def.name) == nil {
			continue
		}
		addFlag(def.name, def.getter)
	}
}

// streamRun wraps a command body that reads the ready sources. The registry
// is closed on every path and the per-source summary is logged on success.
func streamRun(a *app, fn func(cmd *cobra.Command, c *source.Collection) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		defer a.registry.Close(ctx)
		sources, err := a.registry.Sources(ctx, config.FromContext(ctx))
		if err != nil {
			return err
		}
		if err := fn(cmd, Ready(ctx, sources)); err != nil {
			return err
		}
		a.metrics.logSummary(ctx)
		return nil
	}
}
