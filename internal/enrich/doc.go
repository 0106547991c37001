// Package enrich resolves theatrical release dates and content ratings for
// movie titles against TMDB and applies them to a dataset.Table.
//
// Every lookup returns a Lookup value that distinguishes a found value, an
// authoritative "nothing matched" answer, and a transport failure. Callers
// decide how to project those onto their own contract: the batch release
// date updater treats both failure kinds as "leave the cell empty", while
// RatingOutcome.Label renders the legacy string form ("Not Rated",
// "Error: 503").
//
// Resolver owns the TMDB client and the request limiter; Updater walks a
// table or title list sequentially on top of it.
package enrich
