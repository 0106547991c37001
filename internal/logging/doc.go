// Package logging assembles the structured slog loggers used by the moviemeta
// CLI and enrichment pipelines.
//
// It owns the console/JSON handlers, level parsing, the optional tee into a
// run log file, and context-aware helpers that tag log lines with the run ID,
// operation, and movie title. NewNop provides a silent logger for tests.
package logging
