package enrich_test

import (
	"testing"
	"time"

	"moviemeta/internal/enrich"
	"moviemeta/internal/tmdb"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func dayPtr(t *testing.T, value string) *time.Time {
	d := day(t, value)
	return &d
}

func TestSelectReleaseDateRejectsYearsAfterCeiling(t *testing.T) {
	candidates := []tmdb.Result{{ID: 1, ReleaseDate: "2025-01-01"}, {ID: 2, ReleaseDate: "2031-06-30"}}
	for _, before := range []*time.Time{nil, dayPtr(t, "2040-01-01")} {
		if got, ok := enrich.SelectReleaseDate(candidates, before, 2024); ok {
			t.Fatalf("expected no selection with before=%v, got %v", before, got)
		}
	}
}

func TestSelectReleaseDateHonorsStreamingDateAndOrder(t *testing.T) {
	before := dayPtr(t, "2023-06-01")

	candidates := []tmdb.Result{{ReleaseDate: "2025-01-01"}, {ReleaseDate: "2023-05-01"}}
	got, ok := enrich.SelectReleaseDate(candidates, before, 2024)
	if !ok || !got.Equal(day(t, "2023-05-01")) {
		t.Fatalf("expected 2023-05-01, got %v (ok=%v)", got, ok)
	}

	candidates = []tmdb.Result{{ReleaseDate: "2023-07-01"}, {ReleaseDate: "2023-05-01"}, {ReleaseDate: "2020-01-01"}}
	got, ok = enrich.SelectReleaseDate(candidates, before, 2024)
	if !ok || !got.Equal(day(t, "2023-05-01")) {
		t.Fatalf("expected first qualifying candidate 2023-05-01, got %v", got)
	}

	candidates = []tmdb.Result{{ReleaseDate: "2023-06-01"}}
	if _, ok := enrich.SelectReleaseDate(candidates, before, 2024); ok {
		t.Fatal("release on the streaming date must be rejected")
	}
}

func TestSelectReleaseDateSkipsMissingAndUnparsableDates(t *testing.T) {
	candidates := []tmdb.Result{{ReleaseDate: ""}, {ReleaseDate: "soon"}, {ReleaseDate: "2022-01-01"}}
	got, ok := enrich.SelectReleaseDate(candidates, nil, 2024)
	if !ok || !got.Equal(day(t, "2022-01-01")) {
		t.Fatalf("expected 2022-01-01, got %v (ok=%v)", got, ok)
	}
	if _, ok := enrich.SelectReleaseDate(nil, nil, 2024); ok {
		t.Fatal("expected no selection for empty candidates")
	}
}

func TestEvaluateCandidatesReasons(t *testing.T) {
	candidates := []tmdb.Result{
		{ReleaseDate: ""},
		{ReleaseDate: "01/02/2020"},
		{ReleaseDate: "2026-01-01"},
		{ReleaseDate: "2021-03-01"},
		{ReleaseDate: "2019-03-01"},
	}
	verdicts := enrich.EvaluateCandidates(candidates, dayPtr(t, "2020-01-01"), 0)
	want := []string{
		enrich.ReasonNoReleaseDate,
		enrich.ReasonUnparsableDate,
		enrich.ReasonAfterYearLimit,
		enrich.ReasonNotBeforeStream,
		enrich.ReasonAccepted,
	}
	for i, verdict := range verdicts {
		if verdict.Reason != want[i] {
			t.Fatalf("candidate %d: got reason %q want %q", i, verdict.Reason, want[i])
		}
		if verdict.Accepted != (want[i] == enrich.ReasonAccepted) {
			t.Fatalf("candidate %d: unexpected accepted=%v", i, verdict.Accepted)
		}
	}
}
