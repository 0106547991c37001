package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"moviemeta/internal/logging"
	"moviemeta/internal/tmdb"
)

// NotRated labels a movie whose region carries no certification.
const NotRated = "Not Rated"

// CertificationFor returns the first non-empty certification listed for
// region, scanning region entries and their release histories in order.
func CertificationFor(resp *tmdb.ReleaseDatesResponse, region string) (string, bool) {
	if resp == nil {
		return "", false
	}
	for _, entry := range resp.Results {
		if entry.ISO3166_1 != region {
			continue
		}
		for _, release := range entry.ReleaseDates {
			if cert := strings.TrimSpace(release.Certification); cert != "" {
				return cert, true
			}
		}
	}
	return "", false
}

// FetchRating fetches the certification for a TMDB movie id in region. An
// empty region falls back to the resolver default.
func (r *Resolver) FetchRating(ctx context.Context, movieID int64, region string) Lookup[string] {
	region = strings.TrimSpace(region)
	if region == "" {
		region = r.defaultRegion
	}
	if r.client == nil {
		return Failed[string](errors.New("tmdb client unavailable"))
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return Failed[string](err)
	}
	resp, err := r.client.MovieReleaseDates(ctx, movieID)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, r.logger), "tmdb release dates request failed", "tmdb_release_dates_failed",
			logging.Int64("tmdb_id", movieID),
			logging.String("region", region),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check TMDB credentials and network connectivity"),
			logging.String(logging.FieldImpact, "content rating left unresolved"),
		)
		return Failed[string](err)
	}
	cert, ok := CertificationFor(resp, region)
	if !ok {
		return NotFound[string]()
	}
	return Found(cert)
}

// RatingOutcome records both steps of a title to certification lookup.
// Rating is only meaningful when Identifier was found.
type RatingOutcome struct {
	Title      string
	Region     string
	MovieID    int64
	Identifier Lookup[int64]
	Rating     Lookup[string]
}

// Label projects the outcome onto the legacy string contract: an unresolved
// title yields ("", false); otherwise the certification, NotRated, or
// "Error: <status>" for a failed certification request.
func (o RatingOutcome) Label() (string, bool) {
	if o.Identifier.Status != StatusFound {
		return "", false
	}
	switch o.Rating.Status {
	case StatusFound:
		return o.Rating.Value, true
	case StatusNotFound:
		return NotRated, true
	default:
		return "Error: " + errorDetail(o.Rating.Err), true
	}
}

// Resolved reports whether the outcome carries an authoritative rating
// (a certification or NotRated) rather than a failure.
func (o RatingOutcome) Resolved() bool {
	return o.Identifier.Status == StatusFound && o.Rating.Status != StatusTransportError
}

// ResolveRating resolves title to a TMDB id and fetches its certification.
// When the id cannot be resolved the certification request is not issued.
func (r *Resolver) ResolveRating(ctx context.Context, title, region string) RatingOutcome {
	region = strings.TrimSpace(region)
	if region == "" {
		region = r.defaultRegion
	}
	outcome := RatingOutcome{Title: title, Region: region}
	outcome.Identifier = r.ResolveIdentifier(ctx, title)
	if outcome.Identifier.Status != StatusFound {
		return outcome
	}
	outcome.MovieID = outcome.Identifier.Value
	outcome.Rating = r.FetchRating(ctx, outcome.MovieID, region)
	return outcome
}

func errorDetail(err error) string {
	if err == nil {
		return "unknown"
	}
	var statusErr *tmdb.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("%d", statusErr.StatusCode)
	}
	return err.Error()
}
