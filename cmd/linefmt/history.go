package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/linefmt/pkg/linefmt/history"
)

// errNoHistory is returned when no history database is configured.
var errNoHistory = errors.New("no history database configured (use --history or the history config key)")

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := resolveSettings(cmd.Flags())
			if err != nil {
				return err
			}
			if settings.History == "" {
				return errNoHistory
			}
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return err
			}

			store, err := history.NewSQLiteStore(settings.History)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(limit)
			if err != nil {
				return err
			}
			return printRecords(cmd, records)
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 lists all)")
	return cmd
}

func printRecords(cmd *cobra.Command, records []history.Record) error {
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, "no runs recorded")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tSTARTED\tSTATUS\tLINES\tINPUT\tDIGEST\tERROR")
	for _, rec := range records {
		digest := rec.Digest
		if len(digest) > 12 {
			digest = digest[:12]
		}
		detail := rec.Error
		if rec.ErrorKind != "" {
			detail = rec.ErrorKind + ": " + detail
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			rec.RunID,
			rec.StartedAt.Local().Format(time.DateTime),
			rec.Status,
			rec.Lines,
			rec.Input,
			digest,
			detail,
		)
	}
	return tw.Flush()
}
