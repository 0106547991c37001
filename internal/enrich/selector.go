package enrich

import (
	"strings"
	"time"

	"moviemeta/internal/tmdb"
)

// DefaultMaxReleaseYear is the release year ceiling applied when none is
// configured.
const DefaultMaxReleaseYear = 2024

// Reasons reported by EvaluateCandidate.
const (
	ReasonAccepted        = "accepted"
	ReasonNoReleaseDate   = "no release date"
	ReasonUnparsableDate  = "unparsable release date"
	ReasonAfterYearLimit  = "after year ceiling"
	ReasonNotBeforeStream = "not before streaming date"
)

// Verdict explains how the selector treated one candidate.
type Verdict struct {
	Candidate tmdb.Result
	Date      *time.Time
	Accepted  bool
	Reason    string
}

// EvaluateCandidate applies the release date policy to a single candidate.
// A candidate qualifies when its release year is at most maxYear and, when
// before is set, its release date is strictly earlier than before.
func EvaluateCandidate(candidate tmdb.Result, before *time.Time, maxYear int) Verdict {
	verdict := Verdict{Candidate: candidate}
	raw := strings.TrimSpace(candidate.ReleaseDate)
	if raw == "" {
		verdict.Reason = ReasonNoReleaseDate
		return verdict
	}
	date, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		verdict.Reason = ReasonUnparsableDate
		return verdict
	}
	verdict.Date = &date
	if maxYear <= 0 {
		maxYear = DefaultMaxReleaseYear
	}
	switch {
	case date.Year() > maxYear:
		verdict.Reason = ReasonAfterYearLimit
	case before != nil && !date.Before(*before):
		verdict.Reason = ReasonNotBeforeStream
	default:
		verdict.Accepted = true
		verdict.Reason = ReasonAccepted
	}
	return verdict
}

// EvaluateCandidates returns one verdict per candidate in service order.
func EvaluateCandidates(candidates []tmdb.Result, before *time.Time, maxYear int) []Verdict {
	verdicts := make([]Verdict, 0, len(candidates))
	for _, candidate := range candidates {
		verdicts = append(verdicts, EvaluateCandidate(candidate, before, maxYear))
	}
	return verdicts
}

// SelectReleaseDate returns the release date of the first qualifying
// candidate in service order. Later candidates are never preferred over an
// earlier qualifying one.
func SelectReleaseDate(candidates []tmdb.Result, before *time.Time, maxYear int) (time.Time, bool) {
	for _, candidate := range candidates {
		if verdict := EvaluateCandidate(candidate, before, maxYear); verdict.Accepted {
			return *verdict.Date, true
		}
	}
	return time.Time{}, false
}
