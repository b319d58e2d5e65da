// Package journal stores a summary of every inspection in SQLite when the
// journal is enabled. Nothing in it is ever used to answer an inspection.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fmeta/internal/fm"
	"fmeta/internal/journal/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteJournal implements fm.Journal on top of SQLite.
type SQLiteJournal struct {
	db   *sql.DB
	path string
}

var _ fm.Journal = (*SQLiteJournal)(nil)

// NewSQLiteJournal opens (creating if needed) the journal database at path
// and migrates it to the latest schema.
// path can be a file path or ":memory:" for an in-memory journal.
func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.Apply(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating journal: %w", err)
	}

	return &SQLiteJournal{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite database connection.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every pooled connection to ":memory:" would otherwise see its own
	// empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// Append records an entry.
func (j *SQLiteJournal) Append(entry *fm.JournalEntry) error {
	_, err := j.db.Exec(
		`INSERT INTO inspections (id, inspected_at, path, size_bytes, modified_at, digest_algorithm, content_digest)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.InspectedAt.UTC(),
		entry.Path,
		entry.SizeBytes,
		entry.ModifiedAt.UTC(),
		entry.DigestAlgorithm,
		entry.ContentDigest,
	)
	if err != nil {
		return fmt.Errorf("inserting inspection: %w", err)
	}
	return nil
}

// List returns at most limit entries, newest first.
func (j *SQLiteJournal) List(limit int) ([]*fm.JournalEntry, error) {
	rows, err := j.db.Query(
		`SELECT id, inspected_at, path, size_bytes, modified_at, digest_algorithm, content_digest
		 FROM inspections
		 ORDER BY inspected_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing inspections: %w", err)
	}
	defer rows.Close()

	var entries []*fm.JournalEntry
	for rows.Next() {
		var e fm.JournalEntry
		var inspectedAt, modifiedAt time.Time
		if err := rows.Scan(&e.ID, &inspectedAt, &e.Path, &e.SizeBytes, &modifiedAt, &e.DigestAlgorithm, &e.ContentDigest); err != nil {
			return nil, fmt.Errorf("scanning inspection: %w", err)
		}
		e.InspectedAt = inspectedAt
		e.ModifiedAt = modifiedAt
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating inspections: %w", err)
	}

	return entries, nil
}

// Close closes the database connection.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
