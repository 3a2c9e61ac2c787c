package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/linefmt/pkg/linefmt"
	"github.com/randalmurphal/linefmt/pkg/linefmt/config"
	"github.com/randalmurphal/linefmt/pkg/linefmt/history"
)

// newRootCmd builds the command tree. Logs go to stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linefmt",
		Short: "Generate formatting fixtures from template lines",
		Long: `linefmt formats every line of a template file against a fixed table of
variables (aa_string, bb_int, cc_float, ...) and writes "<line> <formatted>"
records to the output file.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := resolveSettings(cmd.Flags())
			if err != nil {
				return err
			}
			return generate(cmd, settings, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	configureFlags(cmd.PersistentFlags())

	cmd.AddCommand(newHistoryCmd())
	return cmd
}

// generate runs the generator once with settings.
func generate(cmd *cobra.Command, settings config.Settings, stderr io.Writer) error {
	logger := newLogger(stderr, settings)

	opts := []linefmt.Option{
		linefmt.WithLogger(logger),
		linefmt.WithMaxLineBytes(settings.MaxLineBytes),
	}
	if settings.History != "" {
		store, err := history.NewSQLiteStore(settings.History)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, linefmt.WithHistory(store))
	}

	_, err := linefmt.New(opts...).Run(cmd.Context(), settings.Input, settings.Output)
	return err
}

func newLogger(w io.Writer, settings config.Settings) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: settings.Level()}))
}
