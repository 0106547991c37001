package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"moviemeta/internal/logging"
)

func newReleaseDatesCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "release-dates <dataset>",
		Short: "Fill missing theatrical release dates from TMDB",
		Long: "Fill missing theatrical release dates from TMDB.\n\n" +
			"For every record without an in-theaters date the title is searched on TMDB and the\n" +
			"first candidate released no later than enrichment.max_release_year, and before the\n" +
			"record's streaming date when it has one, is written back. CSV (.csv) and SQLite\n" +
			"(.db, .sqlite, .sqlite3) datasets are supported.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx := ctx.runContext(cmd, "release_dates")
			env, err := ctx.newEnrichment(runCtx)
			if err != nil {
				return err
			}

			data, err := openDataset(runCtx, env.cfg, args[0], outputPath)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := data.close(); cerr != nil {
					env.logger.Warn("dataset close failed", logging.Error(cerr))
				}
			}()

			summary, runErr := env.updater.UpdateReleaseDates(runCtx, data.table)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Records missing a release date: %d\n", summary.Missing)
			fmt.Fprintf(out, "Titles searched: %d\n", summary.Titles)
			fmt.Fprintf(out, "Resolved: %d  Not found: %d  Failed: %d\n", summary.Resolved, summary.NotFound, summary.Failed)
			fmt.Fprintf(out, "Records updated: %d\n", summary.RecordsUpdated)

			switch {
			case dryRun:
				fmt.Fprintln(out, "Dry run: no changes written")
			case summary.RecordsUpdated == 0 && outputPath == "":
				fmt.Fprintln(out, "Nothing to write")
			default:
				if err := data.save(runCtx); err != nil {
					return errors.Join(runErr, err)
				}
				target := data.store.Path()
				if outputPath != "" {
					target = outputPath
				}
				fmt.Fprintf(out, "Wrote %s\n", target)
			}
			return runErr
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the updated CSV to this path instead of in place")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve dates but do not write the dataset")
	return cmd
}
