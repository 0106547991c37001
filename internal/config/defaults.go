package config

const (
	defaultStateDir              = "~/.local/share/moviemeta"
	defaultLogDir                = "~/.local/share/moviemeta/logs"
	defaultTMDBBaseURL           = "https://api.themoviedb.org/3"
	defaultTMDBLanguage          = "en-US"
	defaultTMDBRegion            = "US"
	defaultTMDBRequestTimeout    = 10
	defaultMaxReleaseYear        = 2024
	defaultRequestsPerSecond     = 4.0
	defaultBurst                 = 1
	defaultTitleColumn           = "movie_title"
	defaultInTheatersColumn      = "in_theaters_date"
	defaultOnStreamingColumn     = "on_streaming_date"
	defaultContentRatingColumn   = "content_rating"
	defaultDateLayout            = "2006-01-02"
	defaultSQLiteTable           = "movies"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultConfigPathValue       = "~/.config/moviemeta/config.toml"
	defaultProjectConfigFileName = "moviemeta.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		TMDB: TMDB{
			BaseURL:        defaultTMDBBaseURL,
			Language:       defaultTMDBLanguage,
			RegionDefault:  defaultTMDBRegion,
			RequestTimeout: defaultTMDBRequestTimeout,
		},
		Enrichment: Enrichment{
			MaxReleaseYear:    defaultMaxReleaseYear,
			RequestsPerSecond: defaultRequestsPerSecond,
			Burst:             defaultBurst,
		},
		Dataset: Dataset{
			TitleColumn:         defaultTitleColumn,
			InTheatersColumn:    defaultInTheatersColumn,
			OnStreamingColumn:   defaultOnStreamingColumn,
			ContentRatingColumn: defaultContentRatingColumn,
			DateLayout:          defaultDateLayout,
			SQLiteTable:         defaultSQLiteTable,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
