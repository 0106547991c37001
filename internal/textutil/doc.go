// Package textutil normalizes movie titles and scores how closely two titles
// match.
//
// Titles read from spreadsheets frequently carry decomposed Unicode, stray
// non-breaking spaces, or doubled whitespace. NormalizeTitle produces the form
// used both as the TMDB query and as the key when writing results back onto
// dataset rows. Similarity uses case-folded token vectors and is informational
// only; candidate selection never re-ranks by it.
package textutil
