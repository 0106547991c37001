package enrich

import (
	"context"
	"log/slog"
	"time"

	"moviemeta/internal/dataset"
	"moviemeta/internal/logging"
	"moviemeta/internal/textutil"
)

// ReleaseSummary counts what UpdateReleaseDates did.
type ReleaseSummary struct {
	// Missing is the number of records that lacked a release date.
	Missing int
	// Titles is the number of distinct title and streaming date pairs looked up.
	Titles   int
	Resolved int
	NotFound int
	Failed   int
	// RecordsUpdated is the number of records that received a date.
	RecordsUpdated int
	Elapsed        time.Duration
}

// RatingSummary counts the outcomes of FetchRatings.
type RatingSummary struct {
	Titles     int
	Rated      int
	NotRated   int
	Unresolved int
	Failed     int
}

// Summarize tallies outcomes.
func Summarize(outcomes []RatingOutcome) RatingSummary {
	summary := RatingSummary{Titles: len(outcomes)}
	for _, outcome := range outcomes {
		switch {
		case outcome.Identifier.Status == StatusTransportError:
			summary.Failed++
		case outcome.Identifier.Status != StatusFound:
			summary.Unresolved++
		case outcome.Rating.Status == StatusFound:
			summary.Rated++
		case outcome.Rating.Status == StatusNotFound:
			summary.NotRated++
		default:
			summary.Failed++
		}
	}
	return summary
}

// Updater runs the batch flows sequentially on top of a Resolver.
type Updater struct {
	resolver *Resolver
	logger   *slog.Logger
}

// NewUpdater creates an updater.
func NewUpdater(resolver *Resolver, logger *slog.Logger) *Updater {
	return &Updater{
		resolver: resolver,
		logger:   logging.NewComponentLogger(logger, "updater"),
	}
}

// UpdateReleaseDates fills InTheaters for records that lack it. Each distinct
// pair of title and streaming date is looked up once, in first-appearance
// order, and the result is written only to missing records sharing both, so a
// date never lands on a row whose own streaming date it does not precede. Lookup failures leave the
// records untouched. When ctx is cancelled the partial summary is returned
// together with ctx.Err(); dates resolved so far stay applied.
func (u *Updater) UpdateReleaseDates(ctx context.Context, table *dataset.Table) (ReleaseSummary, error) {
	start := time.Now()
	var summary ReleaseSummary
	if table == nil {
		return summary, nil
	}
	missing := table.MissingReleaseDates()
	summary.Missing = len(missing)

	seen := make(map[string]struct{}, len(missing))
	for _, idx := range missing {
		rec := table.Records[idx]
		title := textutil.NormalizeTitle(rec.Title)
		if title == "" {
			continue
		}
		key := title + "\x00" + dataset.FormatDate(rec.OnStreaming, time.DateOnly)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		if err := ctx.Err(); err != nil {
			summary.Elapsed = time.Since(start)
			return summary, err
		}
		result := u.resolver.ResolveReleaseDate(ctx, rec.Title, rec.OnStreaming)
		if result.Status == StatusTransportError && ctx.Err() != nil {
			summary.Elapsed = time.Since(start)
			return summary, ctx.Err()
		}
		summary.Titles++
		switch result.Status {
		case StatusFound:
			summary.Resolved++
			summary.RecordsUpdated += table.SetReleaseDate(rec.Title, rec.OnStreaming, result.Ptr())
		case StatusNotFound:
			summary.NotFound++
		default:
			summary.Failed++
		}
	}
	summary.Elapsed = time.Since(start)
	u.logger.Info("release date update complete",
		logging.Int("missing", summary.Missing),
		logging.Int("titles", summary.Titles),
		logging.Int("resolved", summary.Resolved),
		logging.Int("not_found", summary.NotFound),
		logging.Int("failed", summary.Failed),
		logging.Int("records_updated", summary.RecordsUpdated),
		logging.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

// FetchRatings resolves a certification for each title in input order. When
// ctx is cancelled the outcomes gathered so far are returned with ctx.Err().
func (u *Updater) FetchRatings(ctx context.Context, titles []string, region string) ([]RatingOutcome, error) {
	outcomes := make([]RatingOutcome, 0, len(titles))
	for _, title := range titles {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		u.logger.Debug("fetching rating", logging.String(logging.FieldTitle, title))
		outcome := u.resolver.ResolveRating(ctx, title, region)
		if err := ctx.Err(); err != nil && !outcome.Resolved() {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}
	summary := Summarize(outcomes)
	u.logger.Info("rating fetch complete",
		logging.Int("titles", summary.Titles),
		logging.Int("rated", summary.Rated),
		logging.Int("not_rated", summary.NotRated),
		logging.Int("unresolved", summary.Unresolved),
		logging.Int("failed", summary.Failed),
	)
	return outcomes, nil
}

// RatingsByTitle maps each title to its label. A title whose movie id was not
// found has no entry: a missing key means absent, never NotRated.
func RatingsByTitle(outcomes []RatingOutcome) map[string]string {
	labels := make(map[string]string, len(outcomes))
	for _, outcome := range outcomes {
		if label, ok := outcome.Label(); ok {
			labels[outcome.Title] = label
		}
	}
	return labels
}

// ApplyRatings writes certifications and NotRated into records whose content
// rating is empty. Failed requests are not written so a later run retries
// them. It returns the number of records changed.
func (u *Updater) ApplyRatings(table *dataset.Table, outcomes []RatingOutcome) int {
	if table == nil {
		return 0
	}
	changed := 0
	for _, outcome := range outcomes {
		if !outcome.Resolved() {
			continue
		}
		label, _ := outcome.Label()
		changed += table.SetContentRating(outcome.Title, label)
	}
	return changed
}
