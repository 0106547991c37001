package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"moviemeta/internal/services"
)

// SQLiteStore reads and updates one table of a SQLite database by rowid.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	table  string
	schema Schema
}

// OpenSQLite connects to the database at path. The table must already exist
// and carry the title column; the date and rating columns are added on first
// save when absent.
func OpenSQLite(path, table string, schema Schema) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragma busy_timeout: %w", err)
	}
	return &SQLiteStore{db: db, path: path, table: table, schema: schema}, nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load selects every row of the table in rowid order.
func (s *SQLiteStore) Load(ctx context.Context) (*Table, error) {
	columns, err := s.columns(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := columns[s.schema.TitleColumn]; !ok {
		return nil, services.Wrap(services.ErrValidation, "dataset", "load", fmt.Sprintf("table %q missing title column %q", s.table, s.schema.TitleColumn), nil)
	}

	selectCol := func(name string) string {
		if _, ok := columns[name]; ok {
			return quoteIdent(name)
		}
		return "NULL"
	}
	query := fmt.Sprintf(
		"SELECT rowid, %s, %s, %s, %s FROM %s ORDER BY rowid",
		quoteIdent(s.schema.TitleColumn),
		selectCol(s.schema.InTheatersColumn),
		selectCol(s.schema.OnStreamingColumn),
		selectCol(s.schema.ContentRatingColumn),
		quoteIdent(s.table),
	)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select movies: %w", err)
	}
	defer rows.Close()

	table := &Table{schema: s.schema}
	for rows.Next() {
		var (
			rowID                         int64
			title, theaters, streaming, r sql.NullString
		)
		if err := rows.Scan(&rowID, &title, &theaters, &streaming, &r); err != nil {
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		rec := Record{Title: title.String, ContentRating: strings.TrimSpace(r.String), ref: rowID}
		if rec.InTheaters, err = ParseDate(theaters.String, s.schema.DateLayout); err != nil {
			return nil, fmt.Errorf("rowid %d %s: %w", rowID, s.schema.InTheatersColumn, err)
		}
		if rec.OnStreaming, err = ParseDate(streaming.String, s.schema.DateLayout); err != nil {
			return nil, fmt.Errorf("rowid %d %s: %w", rowID, s.schema.OnStreamingColumn, err)
		}
		table.Records = append(table.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}
	table.snapshot()
	return table, nil
}

// Save updates the changed release date and rating cells in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, table *Table) error {
	if table == nil {
		return errors.New("save sqlite: nil table")
	}
	if err := s.ensureColumns(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	dateStmt, err := tx.PrepareContext(ctx, fmt.Sprintf("UPDATE %s SET %s = ? WHERE rowid = ?",
		quoteIdent(s.table), quoteIdent(s.schema.InTheatersColumn)))
	if err != nil {
		return fmt.Errorf("prepare release date update: %w", err)
	}
	defer dateStmt.Close()
	ratingStmt, err := tx.PrepareContext(ctx, fmt.Sprintf("UPDATE %s SET %s = ? WHERE rowid = ?",
		quoteIdent(s.table), quoteIdent(s.schema.ContentRatingColumn)))
	if err != nil {
		return fmt.Errorf("prepare rating update: %w", err)
	}
	defer ratingStmt.Close()

	for i, rec := range table.Records {
		if table.releaseDateChanged(i) {
			if _, err := dateStmt.ExecContext(ctx, nullable(FormatDate(rec.InTheaters, s.schema.DateLayout)), rec.ref); err != nil {
				return fmt.Errorf("update release date rowid %d: %w", rec.ref, err)
			}
		}
		if table.ratingChanged(i) {
			if _, err := ratingStmt.ExecContext(ctx, nullable(rec.ContentRating), rec.ref); err != nil {
				return fmt.Errorf("update rating rowid %d: %w", rec.ref, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update tx: %w", err)
	}
	return nil
}

func (s *SQLiteStore) columns(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(s.table)))
	if err != nil {
		return nil, fmt.Errorf("inspect table %q: %w", s.table, err)
	}
	defer rows.Close()

	columns := make(map[string]struct{})
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("scan table info: %w", err)
		}
		columns[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table info: %w", err)
	}
	if len(columns) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "dataset", "load", fmt.Sprintf("table %q not found", s.table), nil)
	}
	return columns, nil
}

func (s *SQLiteStore) ensureColumns(ctx context.Context) error {
	columns, err := s.columns(ctx)
	if err != nil {
		return err
	}
	for _, name := range []string{s.schema.InTheatersColumn, s.schema.ContentRatingColumn} {
		if _, ok := columns[name]; ok {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s TEXT", quoteIdent(s.table), quoteIdent(name))
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("add column %q: %w", name, err)
		}
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
