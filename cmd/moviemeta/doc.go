// Package main hosts the moviemeta CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, builds the TMDB client,
// limiter, and logger from it, and hands datasets or titles to the enrich
// package. Commands own presentation only: tables on a terminal, tab
// separated rows or JSON otherwise.
package main
