// Package config loads, normalizes, and validates moviemeta configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks for the TMDB
// credentials (TMDB_API_KEY, TMDB_READ_ACCESS_TOKEN and their legacy
// spellings). The Config type is constructed once per process and threaded
// through the TMDB client, the enrichment updater, and the dataset stores.
//
// Missing credentials are not a load error: requests will fail remotely and
// the CLI warns at startup.
package config
