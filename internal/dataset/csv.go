package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"moviemeta/internal/services"
)

// CSVStore reads a header-first CSV file.
type CSVStore struct {
	path   string
	output string
	schema Schema
}

// NewCSVStore returns a store reading path. Saves go to output, or back to
// path when output is empty.
func NewCSVStore(path, output string, schema Schema) *CSVStore {
	output = strings.TrimSpace(output)
	if output == "" {
		output = path
	}
	return &CSVStore{path: path, output: output, schema: schema}
}

// Path returns the file the store reads.
func (s *CSVStore) Path() string { return s.path }

// Close is a no-op; the file is only open during Load and Save.
func (s *CSVStore) Close() error { return nil }

// Load parses the whole file.
func (s *CSVStore) Load(ctx context.Context) (*Table, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()
	return readCSV(ctx, file, s.schema)
}

func readCSV(ctx context.Context, r io.Reader, schema Schema) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv is empty: header row required")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	titleIdx := columnIndex(header, schema.TitleColumn)
	if titleIdx < 0 {
		return nil, services.Wrap(services.ErrValidation, "dataset", "load", fmt.Sprintf("csv missing title column %q", schema.TitleColumn), nil)
	}
	theatersIdx := columnIndex(header, schema.InTheatersColumn)
	streamingIdx := columnIndex(header, schema.OnStreamingColumn)
	ratingIdx := columnIndex(header, schema.ContentRatingColumn)

	table := &Table{schema: schema, header: header}
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		rec := Record{Title: cell(row, titleIdx), ref: int64(len(table.rows))}
		if rec.InTheaters, err = ParseDate(cell(row, theatersIdx), schema.DateLayout); err != nil {
			return nil, fmt.Errorf("csv line %d %s: %w", line, schema.InTheatersColumn, err)
		}
		if rec.OnStreaming, err = ParseDate(cell(row, streamingIdx), schema.DateLayout); err != nil {
			return nil, fmt.Errorf("csv line %d %s: %w", line, schema.OnStreamingColumn, err)
		}
		rec.ContentRating = strings.TrimSpace(cell(row, ratingIdx))
		table.rows = append(table.rows, row)
		table.Records = append(table.Records, rec)
	}
	table.snapshot()
	return table, nil
}

// Save rewrites the output file atomically. Only cells enrichment changed are
// reformatted; every other cell is written back verbatim. A date or rating
// column absent from the input is appended only when a value was set for it.
func (s *CSVStore) Save(ctx context.Context, table *Table) error {
	if table == nil {
		return errors.New("save csv: nil table")
	}
	dir := filepath.Dir(s.output)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.output)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp csv: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := writeCSV(ctx, tmp, table, s.schema); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(s.fileMode()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp csv: %w", err)
	}
	if err := os.Rename(tmpPath, s.output); err != nil {
		return fmt.Errorf("replace csv: %w", err)
	}
	return nil
}

// fileMode keeps the permissions of the file being replaced, falling back to
// the input's when writing a new output.
func (s *CSVStore) fileMode() os.FileMode {
	for _, path := range []string{s.output, s.path} {
		if info, err := os.Stat(path); err == nil {
			return info.Mode().Perm()
		}
	}
	return 0o644
}

func writeCSV(ctx context.Context, w io.Writer, table *Table, schema Schema) error {
	header := append([]string(nil), table.header...)
	if len(header) == 0 {
		header = []string{schema.TitleColumn, schema.InTheatersColumn, schema.OnStreamingColumn, schema.ContentRatingColumn}
	}
	theatersIdx := columnIndex(header, schema.InTheatersColumn)
	if theatersIdx < 0 && table.anyReleaseDateChanged() {
		theatersIdx = ensureColumn(&header, schema.InTheatersColumn)
	}
	ratingIdx := columnIndex(header, schema.ContentRatingColumn)
	if ratingIdx < 0 && table.anyRatingChanged() {
		ratingIdx = ensureColumn(&header, schema.ContentRatingColumn)
	}
	titleIdx := columnIndex(header, schema.TitleColumn)
	streamingIdx := columnIndex(header, schema.OnStreamingColumn)

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, rec := range table.Records {
		if err := ctx.Err(); err != nil {
			return err
		}
		var row []string
		if rec.ref >= 0 && int(rec.ref) < len(table.rows) && table.header != nil {
			row = append([]string(nil), table.rows[rec.ref]...)
		} else {
			row = make([]string, 0, len(header))
			setCell(&row, titleIdx, rec.Title)
			setCell(&row, streamingIdx, FormatDate(rec.OnStreaming, schema.DateLayout))
			setCell(&row, theatersIdx, FormatDate(rec.InTheaters, schema.DateLayout))
			setCell(&row, ratingIdx, rec.ContentRating)
		}
		if table.releaseDateChanged(i) {
			setCell(&row, theatersIdx, FormatDate(rec.InTheaters, schema.DateLayout))
		}
		if table.ratingChanged(i) {
			setCell(&row, ratingIdx, rec.ContentRating)
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+2, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func columnIndex(header []string, name string) int {
	for i, col := range header {
		if strings.TrimSpace(col) == name {
			return i
		}
	}
	return -1
}

func ensureColumn(header *[]string, name string) int {
	if idx := columnIndex(*header, name); idx >= 0 {
		return idx
	}
	*header = append(*header, name)
	return len(*header) - 1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func setCell(row *[]string, idx int, value string) {
	if idx < 0 {
		return
	}
	for len(*row) <= idx {
		*row = append(*row, "")
	}
	(*row)[idx] = value
}
