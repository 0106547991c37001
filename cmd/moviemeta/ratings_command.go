package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"moviemeta/internal/enrich"
	"moviemeta/internal/logging"
)

type ratingRow struct {
	Title  string `json:"title"`
	TMDBID int64  `json:"tmdb_id,omitempty"`
	Region string `json:"region"`
	Rating string `json:"rating,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func newRatingRow(outcome enrich.RatingOutcome) ratingRow {
	row := ratingRow{Title: outcome.Title, TMDBID: outcome.MovieID, Region: outcome.Region}
	label, ok := outcome.Label()
	if ok {
		row.Rating = label
	}
	switch {
	case outcome.Identifier.Status == enrich.StatusTransportError:
		row.Status = "search_failed"
		row.Error = outcome.Identifier.Err.Error()
	case outcome.Identifier.Status != enrich.StatusFound:
		row.Status = "no_match"
	case outcome.Rating.Status == enrich.StatusFound:
		row.Status = "rated"
	case outcome.Rating.Status == enrich.StatusNotFound:
		row.Status = "not_rated"
	default:
		row.Status = "rating_failed"
		if outcome.Rating.Err != nil {
			row.Error = outcome.Rating.Err.Error()
		}
	}
	return row
}

func newRatingsCommand(ctx *commandContext) *cobra.Command {
	var fromDataset string
	var outputPath string
	var region string
	var asJSON bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "ratings [titles...]",
		Short: "Look up content ratings (certifications) on TMDB",
		Long: "Look up content ratings on TMDB.\n\n" +
			"Titles are resolved to the first TMDB search match, then the first non-empty\n" +
			"certification for the region is reported. With --from-dataset every title whose\n" +
			"content rating column is empty is looked up and the results are written back.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromDataset == "" && len(args) == 0 {
				return errors.New("provide titles or --from-dataset")
			}
			if fromDataset != "" && len(args) > 0 {
				return errors.New("titles and --from-dataset are mutually exclusive")
			}
			if fromDataset == "" && outputPath != "" {
				return errors.New("--output requires --from-dataset")
			}

			runCtx := ctx.runContext(cmd, "ratings")
			env, err := ctx.newEnrichment(runCtx)
			if err != nil {
				return err
			}
			region = strings.ToUpper(strings.TrimSpace(region))

			if fromDataset == "" {
				outcomes, runErr := env.updater.FetchRatings(runCtx, args, region)
				if err := printRatings(cmd, outcomes, asJSON); err != nil {
					return err
				}
				return runErr
			}
			return ratingsFromDataset(runCtx, cmd, env, fromDataset, outputPath, region, asJSON, dryRun)
		},
	}

	cmd.Flags().StringVar(&fromDataset, "from-dataset", "", "Fill the content rating column of this dataset")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the updated CSV to this path instead of in place")
	cmd.Flags().StringVar(&region, "region", "", "ISO 3166-1 region for certifications (default tmdb.region_default)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Look up ratings but do not write the dataset")
	return cmd
}

func ratingsFromDataset(ctx context.Context, cmd *cobra.Command, env *enrichment, path, output, region string, asJSON, dryRun bool) error {
	data, err := openDataset(ctx, env.cfg, path, output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := data.close(); cerr != nil {
			env.logger.Warn("dataset close failed", logging.Error(cerr))
		}
	}()

	titles := data.table.MissingRatings()
	outcomes, runErr := env.updater.FetchRatings(ctx, titles, region)
	changed := env.updater.ApplyRatings(data.table, outcomes)

	if err := printRatings(cmd, outcomes, asJSON); err != nil {
		return err
	}
	if !dryRun && changed > 0 {
		if err := data.save(ctx); err != nil {
			return errors.Join(runErr, err)
		}
	}
	if !asJSON {
		out := cmd.ErrOrStderr()
		switch {
		case dryRun:
			fmt.Fprintf(out, "Dry run: %d records would be updated\n", changed)
		default:
			fmt.Fprintf(out, "Records updated: %d\n", changed)
		}
	}
	return runErr
}

func printRatings(cmd *cobra.Command, outcomes []enrich.RatingOutcome, asJSON bool) error {
	rows := make([]ratingRow, 0, len(outcomes))
	for _, outcome := range outcomes {
		rows = append(rows, newRatingRow(outcome))
	}
	if asJSON {
		return writeJSON(cmd, rows)
	}

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		id := ""
		if row.TMDBID > 0 {
			id = strconv.FormatInt(row.TMDBID, 10)
		}
		table = append(table, []string{row.Title, id, row.Region, row.Rating, row.Status})
	}
	writeRows(cmd, []string{"Title", "TMDB ID", "Region", "Rating", "Status"}, table,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft})
	return nil
}
