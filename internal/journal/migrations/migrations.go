// Package migrations holds the journal schema and applies it with
// golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed files/*.sql
var schemaFiles embed.FS

// ErrNoSchema is returned by Verify for a database that was never migrated.
var ErrNoSchema = errors.New("journal has no schema version")

// Schema applies and checks the embedded journal schema on one database.
// The caller keeps ownership of db; Schema never closes it.
type Schema struct {
	m      *migrate.Migrate
	latest uint
}

// Open prepares a Schema for db and reads the newest embedded version.
func Open(db *sql.DB) (*Schema, error) {
	src, err := iofs.New(schemaFiles, "files")
	if err != nil {
		return nil, fmt.Errorf("reading schema files: %w", err)
	}

	latest, err := src.First()
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("no schema files: %w", err)
	}
	for {
		next, err := src.Next(latest)
		if err != nil {
			break
		}
		latest = next
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("wrapping journal database: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("preparing schema migration: %w", err)
	}

	return &Schema{m: m, latest: latest}, nil
}

// Latest returns the newest schema version embedded in the binary.
func (s *Schema) Latest() uint {
	return s.latest
}

// Up applies every pending migration and then verifies the result.
func (s *Schema) Up() error {
	if err := s.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying journal schema: %w", err)
	}
	return s.Verify()
}

// Verify checks that the database sits cleanly at the latest version.
func (s *Schema) Verify() error {
	version, dirty, err := s.m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return ErrNoSchema
	case err != nil:
		return fmt.Errorf("reading journal schema version: %w", err)
	case dirty:
		return fmt.Errorf("journal schema is dirty at version %d", version)
	case version < s.latest:
		return fmt.Errorf("journal schema at version %d, want %d", version, s.latest)
	case version > s.latest:
		return fmt.Errorf("journal schema version %d is newer than this binary (%d)", version, s.latest)
	}
	return nil
}

// Apply migrates db to the latest schema in one call.
func Apply(db *sql.DB) error {
	s, err := Open(db)
	if err != nil {
		return err
	}
	return s.Up()
}
