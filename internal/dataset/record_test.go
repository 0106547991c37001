package dataset_test

import (
	"testing"
	"time"

	"moviemeta/internal/dataset"
)

func date(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return &parsed
}

func TestParseDate(t *testing.T) {
	for _, missing := range []string{"", "  ", "NaN", "NaT", "None", "null"} {
		got, err := dataset.ParseDate(missing, time.DateOnly)
		if err != nil || got != nil {
			t.Fatalf("ParseDate(%q) = %v, %v; want nil, nil", missing, got, err)
		}
	}

	got, err := dataset.ParseDate("2019-07-26 00:00:00", time.DateOnly)
	if err != nil {
		t.Fatalf("ParseDate with time component: %v", err)
	}
	if got.Format(time.DateOnly) != "2019-07-26" {
		t.Fatalf("unexpected date %v", got)
	}

	got, err = dataset.ParseDate("07/26/2019", "01/02/2006")
	if err != nil || got.Format(time.DateOnly) != "2019-07-26" {
		t.Fatalf("custom layout: got %v, %v", got, err)
	}

	if _, err := dataset.ParseDate("soon", time.DateOnly); err == nil {
		t.Fatal("expected error for unparsable date")
	}
}

func TestSetReleaseDateMatchesNormalizedTitleAndSkipsExisting(t *testing.T) {
	existing := date(t, "2001-01-01")
	table := dataset.NewTable(
		dataset.Record{Title: "Heat"},
		dataset.Record{Title: " Heat  "},
		dataset.Record{Title: "Heat", InTheaters: existing},
		dataset.Record{Title: "Alien"},
	)

	if changed := table.SetReleaseDate("Heat", nil, date(t, "1995-12-15")); changed != 2 {
		t.Fatalf("expected 2 records changed, got %d", changed)
	}
	if table.Records[2].InTheaters != existing {
		t.Fatal("existing release date must not be overwritten")
	}
	if table.Records[3].InTheaters != nil {
		t.Fatal("unrelated title must not be changed")
	}
	if changed := table.SetReleaseDate("Alien", nil, nil); changed != 0 {
		t.Fatalf("nil date should change nothing, changed %d", changed)
	}
	if missing := table.MissingReleaseDates(); len(missing) != 1 || missing[0] != 3 {
		t.Fatalf("unexpected missing indexes %v", missing)
	}
}

func TestSetReleaseDateRequiresMatchingStreamingDate(t *testing.T) {
	table := dataset.NewTable(
		dataset.Record{Title: "Dune", OnStreaming: date(t, "2022-01-01")},
		dataset.Record{Title: "Dune", OnStreaming: date(t, "1985-06-01")},
		dataset.Record{Title: "Dune"},
	)

	if changed := table.SetReleaseDate("Dune", date(t, "2022-01-01"), date(t, "2021-09-15")); changed != 1 {
		t.Fatalf("expected 1 record changed, got %d", changed)
	}
	if got := table.Records[0].InTheaters; got == nil || !got.Equal(*date(t, "2021-09-15")) {
		t.Fatalf("expected first row filled, got %v", got)
	}
	if table.Records[1].InTheaters != nil || table.Records[2].InTheaters != nil {
		t.Fatal("rows with another streaming date must not be changed")
	}
}

func TestMissingRatingsAndSetContentRating(t *testing.T) {
	table := dataset.NewTable(
		dataset.Record{Title: "Heat"},
		dataset.Record{Title: "Alien", ContentRating: "R"},
		dataset.Record{Title: "Heat"},
		dataset.Record{Title: "Up"},
		dataset.Record{Title: "  "},
	)
	titles := table.MissingRatings()
	if len(titles) != 2 || titles[0] != "Heat" || titles[1] != "Up" {
		t.Fatalf("unexpected missing rating titles %v", titles)
	}
	if changed := table.SetContentRating("Heat", "R"); changed != 2 {
		t.Fatalf("expected 2 records changed, got %d", changed)
	}
	if changed := table.SetContentRating("Up", " "); changed != 0 {
		t.Fatalf("blank rating should change nothing, changed %d", changed)
	}
}
