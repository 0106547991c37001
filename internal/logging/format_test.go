package logging

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestFormatValue(t *testing.T) {
	release := time.Date(1995, 12, 15, 0, 0, 0, 0, time.UTC)
	var missing *time.Time

	cases := []struct {
		name string
		in   slog.Value
		want string
	}{
		{"plain string", slog.StringValue("Heat"), "Heat"},
		{"spaced string", slog.StringValue("Blade Runner"), `"Blade Runner"`},
		{"empty string", slog.StringValue(""), `""`},
		{"int", slog.Int64Value(949), "949"},
		{"calendar date", slog.TimeValue(release), "1995-12-15"},
		{"date pointer", slog.AnyValue(&release), "1995-12-15"},
		{"nil date pointer", slog.AnyValue(missing), "-"},
		{"error", slog.AnyValue(errors.New("tmdb search returned 401")), `"tmdb search returned 401"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatValue(tc.in); got != tc.want {
				t.Fatalf("formatValue = %q, want %q", got, tc.want)
			}
		})
	}
}
