package dataset

import (
	"fmt"
	"strings"
	"time"

	"moviemeta/internal/config"
	"moviemeta/internal/textutil"
)

// Record is one movie row. Enrichment reads Title and OnStreaming and writes
// InTheaters and ContentRating.
type Record struct {
	Title         string
	InTheaters    *time.Time
	OnStreaming   *time.Time
	ContentRating string

	// ref locates the row in its backing store (CSV row index or SQLite rowid).
	ref int64
}

// Table is an in-memory copy of a dataset.
type Table struct {
	Records []Record

	schema Schema
	// header and rows preserve CSV columns the enrichment never touches.
	header []string
	rows   [][]string

	original []Record
}

// Schema names the columns that hold each record field.
type Schema struct {
	TitleColumn         string
	InTheatersColumn    string
	OnStreamingColumn   string
	ContentRatingColumn string
	DateLayout          string
}

// SchemaFromConfig builds a Schema from the dataset section of cfg.
func SchemaFromConfig(cfg config.Dataset) Schema {
	return Schema{
		TitleColumn:         cfg.TitleColumn,
		InTheatersColumn:    cfg.InTheatersColumn,
		OnStreamingColumn:   cfg.OnStreamingColumn,
		ContentRatingColumn: cfg.ContentRatingColumn,
		DateLayout:          cfg.DateLayout,
	}
}

// NewTable builds a detached table, mainly for tests and callers that
// assemble records themselves.
func NewTable(records ...Record) *Table {
	return &Table{Records: records}
}

// MissingReleaseDates returns the indexes of records without a theatrical date.
func (t *Table) MissingReleaseDates() []int {
	var idx []int
	for i := range t.Records {
		if t.Records[i].InTheaters == nil {
			idx = append(idx, i)
		}
	}
	return idx
}

// SetReleaseDate writes date onto every record whose normalized title equals
// title, whose streaming date equals onStreaming, and which still lacks a
// theatrical date. It returns the number of records changed. A nil date
// changes nothing.
func (t *Table) SetReleaseDate(title string, onStreaming, date *time.Time) int {
	if date == nil {
		return 0
	}
	key := textutil.NormalizeTitle(title)
	changed := 0
	for i := range t.Records {
		rec := &t.Records[i]
		if rec.InTheaters != nil || textutil.NormalizeTitle(rec.Title) != key || !sameDate(rec.OnStreaming, onStreaming) {
			continue
		}
		value := *date
		rec.InTheaters = &value
		changed++
	}
	return changed
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// MissingRatings returns the distinct titles whose content rating is empty,
// in first-appearance order.
func (t *Table) MissingRatings() []string {
	seen := make(map[string]struct{})
	var titles []string
	for _, rec := range t.Records {
		if strings.TrimSpace(rec.ContentRating) != "" {
			continue
		}
		key := textutil.NormalizeTitle(rec.Title)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		titles = append(titles, rec.Title)
	}
	return titles
}

// SetContentRating writes rating onto records with the same normalized title
// and an empty rating. It returns the number of records changed.
func (t *Table) SetContentRating(title, rating string) int {
	rating = strings.TrimSpace(rating)
	if rating == "" {
		return 0
	}
	key := textutil.NormalizeTitle(title)
	changed := 0
	for i := range t.Records {
		rec := &t.Records[i]
		if strings.TrimSpace(rec.ContentRating) != "" || textutil.NormalizeTitle(rec.Title) != key {
			continue
		}
		rec.ContentRating = rating
		changed++
	}
	return changed
}

var missingMarkers = map[string]struct{}{
	"":     {},
	"nan":  {},
	"nat":  {},
	"none": {},
	"null": {},
}

// ParseDate converts a cell into a date. Blank cells and pandas missing-value
// markers yield nil. Values carrying a time component are truncated to the
// calendar date.
func ParseDate(value, layout string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if _, missing := missingMarkers[strings.ToLower(trimmed)]; missing {
		return nil, nil
	}
	if layout == "" {
		layout = time.DateOnly
	}
	for _, candidate := range []string{layout, time.DateOnly, time.DateTime, time.RFC3339} {
		if parsed, err := time.Parse(candidate, trimmed); err == nil {
			day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			return &day, nil
		}
	}
	return nil, fmt.Errorf("parse date %q with layout %q", value, layout)
}

// FormatDate renders date with layout, or "" when date is nil.
func FormatDate(date *time.Time, layout string) string {
	if date == nil {
		return ""
	}
	if layout == "" {
		layout = time.DateOnly
	}
	return date.Format(layout)
}

// snapshot records the loaded values so stores can tell which fields
// enrichment changed.
func (t *Table) snapshot() {
	t.original = make([]Record, len(t.Records))
	copy(t.original, t.Records)
}

func (t *Table) releaseDateChanged(i int) bool {
	if i >= len(t.original) {
		return true
	}
	return !sameDate(t.original[i].InTheaters, t.Records[i].InTheaters)
}

func (t *Table) ratingChanged(i int) bool {
	if i >= len(t.original) {
		return true
	}
	return t.original[i].ContentRating != t.Records[i].ContentRating
}

func (t *Table) anyReleaseDateChanged() bool {
	for i := range t.Records {
		if t.releaseDateChanged(i) {
			return true
		}
	}
	return false
}

func (t *Table) anyRatingChanged() bool {
	for i := range t.Records {
		if t.ratingChanged(i) {
			return true
		}
	}
	return false
}
