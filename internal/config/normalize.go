package config

import (
	"fmt"
	"os"
	"strings"
)

var (
	apiKeyEnvVars      = []string{"TMDB_API_KEY", "TMDBAPIKEY"}
	bearerTokenEnvVars = []string{"TMDB_READ_ACCESS_TOKEN", "TMDBAPIReadAccessToken"}
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTMDB()
	c.normalizeEnrichment()
	c.normalizeDataset()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTMDB() {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.APIKey == "" {
		c.TMDB.APIKey = firstEnv(apiKeyEnvVars)
	}
	c.TMDB.BearerToken = strings.TrimSpace(c.TMDB.BearerToken)
	if c.TMDB.BearerToken == "" {
		c.TMDB.BearerToken = firstEnv(bearerTokenEnvVars)
	}
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	c.TMDB.RegionDefault = strings.ToUpper(strings.TrimSpace(c.TMDB.RegionDefault))
	if c.TMDB.RegionDefault == "" {
		c.TMDB.RegionDefault = defaultTMDBRegion
	}
	if c.TMDB.RequestTimeout <= 0 {
		c.TMDB.RequestTimeout = defaultTMDBRequestTimeout
	}
}

func (c *Config) normalizeEnrichment() {
	if c.Enrichment.MaxReleaseYear == 0 {
		c.Enrichment.MaxReleaseYear = defaultMaxReleaseYear
	}
	if c.Enrichment.Burst <= 0 {
		c.Enrichment.Burst = defaultBurst
	}
}

func (c *Config) normalizeDataset() {
	c.Dataset.TitleColumn = defaultIfBlank(c.Dataset.TitleColumn, defaultTitleColumn)
	c.Dataset.InTheatersColumn = defaultIfBlank(c.Dataset.InTheatersColumn, defaultInTheatersColumn)
	c.Dataset.OnStreamingColumn = defaultIfBlank(c.Dataset.OnStreamingColumn, defaultOnStreamingColumn)
	c.Dataset.ContentRatingColumn = defaultIfBlank(c.Dataset.ContentRatingColumn, defaultContentRatingColumn)
	c.Dataset.DateLayout = defaultIfBlank(c.Dataset.DateLayout, defaultDateLayout)
	c.Dataset.SQLiteTable = defaultIfBlank(c.Dataset.SQLiteTable, defaultSQLiteTable)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func firstEnv(names []string) string {
	for _, name := range names {
		if value, ok := os.LookupEnv(name); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func defaultIfBlank(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
