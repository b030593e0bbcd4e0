// Package sqlite persists the two append-only event ledgers.
//
// Design notes:
//   - pure event sourcing: rows are inserted, never updated or deleted;
//     current values are recomputed from the log on every read
//   - the primary key is id, not timestamp, so that multiple events in the
//     same instant never need disambiguation
//   - the closed nutrient/kind sets are mirrored as CHECK constraints for
//     defense in depth; the application-layer validation is authoritative
//     for user-facing errors
//
// Possible future optimisations (intentionally not implemented):
//   - indices to support the queries better
//   - materialized views to avoid processing all events
package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite handle for the event ledgers.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) nutrients.db inside dir and applies migrations.
func Open(dir string) (*DB, error) {
	return OpenPath(filepath.Join(dir, "nutrients.db"))
}

// OpenPath opens the database at an explicit path.
func OpenPath(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection: all access is serialized by the tracker anyway, and a
	// single handle keeps modernc's file locking out of the picture.
	db.SetMaxOpenConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying handle.
func (d *DB) Close() error { return d.db.Close() }

// Migrations returns the schema statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		// Nutrient ledger: one signed event per consume/unconsume.
		`CREATE TABLE IF NOT EXISTS nutrient_events (
			id        INTEGER PRIMARY KEY,
			timestamp INT NOT NULL DEFAULT (CAST(unixepoch('subsec') * 1000 AS INT)),
			name      TEXT NOT NULL CHECK (name IN ('protein', 'carbs', 'vegetables', 'fats')),
			date      TEXT NOT NULL,
			type      TEXT NOT NULL CHECK (type IN ('consume', 'unconsume'))
		) STRICT`,

		// Goal ledger: one signed event per inc/dec, no date dimension.
		`CREATE TABLE IF NOT EXISTS goal_events (
			id        INTEGER PRIMARY KEY,
			timestamp INT NOT NULL DEFAULT (CAST(unixepoch('subsec') * 1000 AS INT)),
			nutrient  TEXT NOT NULL CHECK (nutrient IN ('protein', 'carbs', 'vegetables', 'fats')),
			type      TEXT NOT NULL CHECK (type IN ('inc', 'dec'))
		) STRICT`,
	}
}

func (d *DB) migrate() error {
	for _, stmt := range Migrations() {
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
