package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"moviemeta/internal/dataset"
	"moviemeta/internal/enrich"
	"moviemeta/internal/textutil"
)

type candidateRow struct {
	Rank        int     `json:"rank"`
	TMDBID      int64   `json:"tmdb_id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date,omitempty"`
	Similarity  float64 `json:"similarity"`
	Verdict     string  `json:"verdict"`
	Selected    bool    `json:"selected"`
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var beforeFlag string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <title>",
		Short: "Show TMDB candidates for a title and how the release date policy treats them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			var before *time.Time
			if strings.TrimSpace(beforeFlag) != "" {
				parsed, err := dataset.ParseDate(beforeFlag, time.DateOnly)
				if err != nil {
					return fmt.Errorf("--before: %w", err)
				}
				before = parsed
			}

			runCtx := ctx.runContext(cmd, "search")
			env, err := ctx.newEnrichment(runCtx)
			if err != nil {
				return err
			}

			search := env.resolver.Search(runCtx, title)
			if search.Status == enrich.StatusTransportError {
				return fmt.Errorf("tmdb search %q: %w", title, search.Err)
			}

			verdicts := enrich.EvaluateCandidates(search.Value, before, env.resolver.MaxReleaseYear())
			rows := make([]candidateRow, 0, len(verdicts))
			selected := false
			for i, verdict := range verdicts {
				row := candidateRow{
					Rank:        i + 1,
					TMDBID:      verdict.Candidate.ID,
					Title:       verdict.Candidate.Title,
					ReleaseDate: verdict.Candidate.ReleaseDate,
					Similarity:  textutil.Similarity(title, verdict.Candidate.Title),
					Verdict:     verdict.Reason,
				}
				if verdict.Accepted && !selected {
					row.Selected = true
					selected = true
				}
				rows = append(rows, row)
			}

			if asJSON {
				return writeJSON(cmd, rows)
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "No TMDB results for %q\n", title)
				return nil
			}

			table := make([][]string, 0, len(rows))
			for _, row := range rows {
				verdict := row.Verdict
				if row.Selected {
					verdict = "selected"
				}
				table = append(table, []string{
					strconv.Itoa(row.Rank),
					strconv.FormatInt(row.TMDBID, 10),
					row.Title,
					row.ReleaseDate,
					fmt.Sprintf("%.2f", row.Similarity),
					verdict,
				})
			}
			writeRows(cmd, []string{"#", "TMDB ID", "Title", "Released", "Match", "Verdict"}, table,
				[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignLeft})
			if !selected {
				fmt.Fprintln(out, "No candidate qualifies; the release date would stay empty")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&beforeFlag, "before", "", "Streaming date (YYYY-MM-DD) the release must precede")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
