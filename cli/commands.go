package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/compozy/uafixtures/engine/core"
	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
	"github.com/compozy/uafixtures/pkg/config"
	"github.com/compozy/uafixtures/pkg/logger"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

func sourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the known source names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range SourceNames() {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

func readyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "Report which configured sources can be read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			defer a.registry.Close(ctx)
			sources, err := a.registry.Sources(ctx, config.FromContext(ctx))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SOURCE\tREADY")
			for _, s := range sources {
				fmt.Fprintf(w, "%s\t%t\n", s.Name(), s.IsReady(ctx))
			}
			return w.Flush()
		},
	}
}

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the user-agent of every fixture, one per line",
		Args:  cobra.NoArgs,
		RunE: streamRun(a, func(cmd *cobra.Command, c *source.Collection) error {
			out := cmd.OutOrStdout()
			for ua, err := range source.UserAgents(cmd.Context(), c) {
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ua)
			}
			return nil
		}),
	}
}

func headersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "headers",
		Short: "Print the encoded header set of every fixture, one per line",
		Args:  cobra.NoArgs,
		RunE: streamRun(a, func(cmd *cobra.Command, c *source.Collection) error {
			out := cmd.OutOrStdout()
			for h, err := range source.Headers(cmd.Context(), c) {
				if err != nil {
					return err
				}
				fmt.Fprintln(out, h.Encode())
			}
			return nil
		}),
	}
}

type dumpLine struct {
	ID     core.ID        `json:"id"`
	Record *record.Record `json:"record"`
}

func dumpCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write every normalized record as a JSON line",
		Args:  cobra.NoArgs,
		RunE: streamRun(a, func(cmd *cobra.Command, c *source.Collection) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			prettyOut := config.FromContext(ctx).Output.Pretty
			color := prettyOut && isTerminal(out)
			var count int
			for entry, err := range c.Properties(ctx) {
				if err != nil {
					return err
				}
				data, err := json.Marshal(dumpLine{ID: entry.ID, Record: entry.Record})
				if err != nil {
					return fmt.Errorf("failed to encode record %s: %w", entry.ID, err)
				}
				if prettyOut {
					data = pretty.Pretty(data)
					if color {
						data = pretty.Color(data, nil)
					}
				} else {
					data = append(data, '\n')
				}
				if _, err := out.Write(data); err != nil {
					return err
				}
				count++
			}
			logger.FromContext(ctx).Info("Dump finished", "sources", c.Name(), "records", count)
			return nil
		}),
	}
	cmd.Flags().Bool("pretty", false, "Indent the JSON output")
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
