// Package preflight provides readiness checks for the TMDB API and the
// directories moviemeta writes to.
//
// The CLI "moviemeta check" command runs RunAll and prints one line per
// check. Batch commands do not call it; a bad key surfaces there as per-title
// transport errors instead.
package preflight
