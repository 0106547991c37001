// Package tmdb provides the minimal TMDB API client used by the enrichment
// pipelines.
//
// It exposes the first page of /search/movie and the per-movie
// /movie/{id}/release_dates certification history. Requests carry the API key
// as a query parameter and, when configured, a bearer token header. Non-2xx
// responses surface as *StatusError so callers can report the status code.
// Options allow tests to supply custom HTTP clients without modifying
// production code.
package tmdb
