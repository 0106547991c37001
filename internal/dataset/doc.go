// Package dataset loads and saves the movie table that enrichment reads and
// updates.
//
// Two stores are supported: CSV files (column order and unknown columns are
// preserved on save) and SQLite databases (a single table updated in place by
// rowid). Column names and the date layout come from config.Dataset. Missing
// dates are recognised from blank cells as well as the NaN/NaT/None markers a
// pandas export leaves behind.
//
// Lock guards a dataset path with an exclusive advisory file lock so that two
// runs cannot interleave writes to the same table.
package dataset
