package enrich

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"moviemeta/internal/config"
	"moviemeta/internal/logging"
	"moviemeta/internal/textutil"
	"moviemeta/internal/throttle"
	"moviemeta/internal/tmdb"
)

// DefaultRegion is used for certification lookups when no region is given.
const DefaultRegion = "US"

// Resolver turns titles into release dates, TMDB ids, and certifications.
// Every TMDB call waits on the limiter first.
type Resolver struct {
	client        tmdb.Searcher
	limiter       throttle.Limiter
	logger        *slog.Logger
	maxYear       int
	defaultRegion string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLimiter paces TMDB calls. The default never blocks.
func WithLimiter(limiter throttle.Limiter) Option {
	return func(r *Resolver) {
		if limiter != nil {
			r.limiter = limiter
		}
	}
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logging.NewComponentLogger(logger, "enrich")
	}
}

// WithMaxReleaseYear overrides the release year ceiling.
func WithMaxReleaseYear(year int) Option {
	return func(r *Resolver) {
		if year > 0 {
			r.maxYear = year
		}
	}
}

// WithDefaultRegion overrides the certification region used when callers pass
// an empty one.
func WithDefaultRegion(region string) Option {
	return func(r *Resolver) {
		if region = strings.TrimSpace(region); region != "" {
			r.defaultRegion = region
		}
	}
}

// NewResolver builds a resolver around client.
func NewResolver(client tmdb.Searcher, opts ...Option) *Resolver {
	r := &Resolver{
		client:        client,
		limiter:       throttle.Nop{},
		logger:        logging.NewComponentLogger(nil, "enrich"),
		maxYear:       DefaultMaxReleaseYear,
		defaultRegion: DefaultRegion,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewResolverFromConfig applies the enrichment and TMDB sections of cfg.
func NewResolverFromConfig(cfg *config.Config, client tmdb.Searcher, logger *slog.Logger) *Resolver {
	return NewResolver(client,
		WithLogger(logger),
		WithLimiter(throttle.NewTokenBucket(cfg.Enrichment.RequestsPerSecond, cfg.Enrichment.Burst)),
		WithMaxReleaseYear(cfg.Enrichment.MaxReleaseYear),
		WithDefaultRegion(cfg.TMDB.RegionDefault),
	)
}

// MaxReleaseYear returns the configured release year ceiling.
func (r *Resolver) MaxReleaseYear() int { return r.maxYear }

// DefaultRegion returns the region used when callers pass none.
func (r *Resolver) DefaultRegion() string { return r.defaultRegion }

// Search returns the first page of TMDB candidates for title in service order.
func (r *Resolver) Search(ctx context.Context, title string) Lookup[[]tmdb.Result] {
	query := textutil.NormalizeTitle(title)
	if query == "" {
		return NotFound[[]tmdb.Result]()
	}
	if r.client == nil {
		return Failed[[]tmdb.Result](errors.New("tmdb client unavailable"))
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return Failed[[]tmdb.Result](err)
	}
	resp, err := r.client.SearchMovie(ctx, query)
	if err != nil {
		logging.WarnWithContext(r.log(ctx, title), "tmdb search failed", "tmdb_search_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check TMDB credentials and network connectivity"),
			logging.String(logging.FieldImpact, "title left unresolved"),
		)
		return Failed[[]tmdb.Result](err)
	}
	if resp == nil || len(resp.Results) == 0 {
		return NotFound[[]tmdb.Result]()
	}
	return Found(resp.Results)
}

// ResolveReleaseDate searches TMDB for title and returns the release date of
// the first candidate whose year is within the ceiling and, when before is
// set, which precedes before.
func (r *Resolver) ResolveReleaseDate(ctx context.Context, title string, before *time.Time) Lookup[time.Time] {
	search := r.Search(ctx, title)
	switch search.Status {
	case StatusTransportError:
		return Failed[time.Time](search.Err)
	case StatusNotFound:
		r.log(ctx, title).Debug("tmdb search returned no candidates")
		return NotFound[time.Time]()
	}

	logger := r.log(ctx, title)
	for _, verdict := range EvaluateCandidates(search.Value, before, r.maxYear) {
		if verdict.Reason == ReasonUnparsableDate {
			logger.Debug("skipping candidate with unparsable release date",
				logging.Int64("tmdb_id", verdict.Candidate.ID),
				logging.String("release_date", verdict.Candidate.ReleaseDate),
			)
			continue
		}
		if verdict.Accepted {
			logger.Debug("release date resolved",
				logging.Args(append(logging.DecisionAttrs("release_date", "accepted", verdict.Reason),
					logging.Int64("tmdb_id", verdict.Candidate.ID),
					logging.String("release_date", verdict.Candidate.ReleaseDate),
				)...)...,
			)
			return Found(*verdict.Date)
		}
	}
	logger.Debug("no candidate satisfied release date policy",
		logging.Int("candidates", len(search.Value)),
		logging.Int("max_year", r.maxYear),
	)
	return NotFound[time.Time]()
}

// ResolveIdentifier returns the TMDB id of the first search result.
func (r *Resolver) ResolveIdentifier(ctx context.Context, title string) Lookup[int64] {
	search := r.Search(ctx, title)
	switch search.Status {
	case StatusTransportError:
		return Failed[int64](search.Err)
	case StatusNotFound:
		return NotFound[int64]()
	}
	return Found(search.Value[0].ID)
}

func (r *Resolver) log(ctx context.Context, title string) *slog.Logger {
	logger := logging.WithContext(ctx, r.logger)
	if title != "" {
		logger = logger.With(logging.String(logging.FieldTitle, title))
	}
	return logger
}
