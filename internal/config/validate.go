package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateEnrichment(); err != nil {
		return err
	}
	if err := c.validateDataset(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTMDB() error {
	parsed, err := url.Parse(c.TMDB.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("tmdb.base_url must be an absolute URL, got %q", c.TMDB.BaseURL)
	}
	if len(c.TMDB.RegionDefault) != 2 {
		return fmt.Errorf("tmdb.region_default must be a two-letter ISO 3166-1 code, got %q", c.TMDB.RegionDefault)
	}
	if c.TMDB.RequestTimeout <= 0 {
		return errors.New("tmdb.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateEnrichment() error {
	if c.Enrichment.MaxReleaseYear < 1870 {
		return errors.New("enrichment.max_release_year must be a plausible year")
	}
	if c.Enrichment.RequestsPerSecond < 0 {
		return errors.New("enrichment.requests_per_second must be >= 0 (0 disables throttling)")
	}
	if c.Enrichment.Burst <= 0 {
		return errors.New("enrichment.burst must be positive")
	}
	return nil
}

func (c *Config) validateDataset() error {
	columns := map[string]string{
		"dataset.title_column":          c.Dataset.TitleColumn,
		"dataset.in_theaters_column":    c.Dataset.InTheatersColumn,
		"dataset.on_streaming_column":   c.Dataset.OnStreamingColumn,
		"dataset.content_rating_column": c.Dataset.ContentRatingColumn,
	}
	seen := make(map[string]string, len(columns))
	for key, value := range columns {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must be set", key)
		}
		if other, dup := seen[value]; dup {
			return fmt.Errorf("%s and %s must name different columns", other, key)
		}
		seen[value] = key
	}
	if !identifierPattern.MatchString(c.Dataset.SQLiteTable) {
		return fmt.Errorf("dataset.sqlite_table must be a plain identifier, got %q", c.Dataset.SQLiteTable)
	}
	return nil
}
