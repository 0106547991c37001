// Package services defines shared utilities consumed by the enrichment
// pipelines and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, the operation being performed, and
//     the movie title under resolution for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures with errors.Is instead of string matching.
package services
