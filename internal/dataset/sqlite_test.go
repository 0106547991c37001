package dataset_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"moviemeta/internal/config"
	"moviemeta/internal/dataset"
	"moviemeta/internal/services"
)

func seedSQLite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	stmts := []string{
		`CREATE TABLE movies (movie_title TEXT NOT NULL, genre TEXT, in_theaters_date TEXT, on_streaming_date TEXT)`,
		`INSERT INTO movies VALUES ('Heat', 'Crime', NULL, '2017-03-01')`,
		`INSERT INTO movies VALUES ('Alien', 'Horror', '1979-05-25', NULL)`,
		`INSERT INTO movies VALUES ('Heat', 'Crime', '', NULL)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return path
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := seedSQLite(t)
	store, err := dataset.Open(path, config.Default().Dataset, dataset.OpenOptions{})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	table, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(table.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(table.Records))
	}
	if got := table.MissingReleaseDates(); len(got) != 2 {
		t.Fatalf("expected 2 missing release dates, got %v", got)
	}
	if table.Records[0].OnStreaming == nil {
		t.Fatal("expected streaming date on first row")
	}

	table.SetReleaseDate("Heat", table.Records[0].OnStreaming, date(t, "1995-12-15"))
	table.SetReleaseDate("Heat", nil, date(t, "1995-12-15"))
	table.SetContentRating("Alien", "R")
	if err := store.Save(ctx, table); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer db.Close()
	rows, err := db.Query(`SELECT movie_title, genre, in_theaters_date, content_rating FROM movies ORDER BY rowid`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()

	type row struct{ title, genre, theaters, rating string }
	var got []row
	for rows.Next() {
		var title, genre, theaters, rating sql.NullString
		if err := rows.Scan(&title, &genre, &theaters, &rating); err != nil {
			t.Fatalf("scan: %v", err)
		}
		got = append(got, row{title.String, genre.String, theaters.String, rating.String})
	}
	want := []row{
		{"Heat", "Crime", "1995-12-15", ""},
		{"Alien", "Horror", "1979-05-25", "R"},
		{"Heat", "Crime", "1995-12-15", ""},
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected rows %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestSQLiteStoreRejectsOutputAndMissingTable(t *testing.T) {
	path := seedSQLite(t)
	cfg := config.Default().Dataset
	if _, err := dataset.Open(path, cfg, dataset.OpenOptions{Output: filepath.Join(t.TempDir(), "other.db")}); err == nil {
		t.Fatal("expected error when redirecting sqlite output")
	}

	cfg.SQLiteTable = "films"
	store, err := dataset.Open(path, cfg, dataset.OpenOptions{})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer store.Close()
	if _, err := store.Load(context.Background()); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found error for missing table, got %v", err)
	}
}
