package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"moviemeta/internal/config"
	"moviemeta/internal/services"
)

// Store reads and writes a movie table.
type Store interface {
	Load(ctx context.Context) (*Table, error)
	// Save persists the fields enrichment changed since Load.
	Save(ctx context.Context, table *Table) error
	Path() string
	Close() error
}

// OpenOptions tunes Open.
type OpenOptions struct {
	// Output redirects CSV saves to another file. SQLite datasets are always
	// updated in place.
	Output string
}

// Open picks a store by file extension: .csv for CSV, .db/.sqlite/.sqlite3
// for SQLite.
func Open(path string, cfg config.Dataset, opts OpenOptions) (Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrValidation, "dataset", "open", "path required", nil)
	}
	schema := SchemaFromConfig(cfg)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVStore(path, opts.Output, schema), nil
	case ".db", ".sqlite", ".sqlite3":
		if out := strings.TrimSpace(opts.Output); out != "" && out != path {
			return nil, services.Wrap(services.ErrValidation, "dataset", "open", "sqlite datasets are updated in place; --output is not supported", nil)
		}
		return OpenSQLite(path, cfg.SQLiteTable, schema)
	default:
		return nil, services.Wrap(services.ErrValidation, "dataset", "open", fmt.Sprintf("unsupported dataset extension %q", filepath.Ext(path)), nil)
	}
}
