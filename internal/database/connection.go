package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the sqlite database at the given path, creating the parent
// directory and schema as needed. The returned handle is passed explicitly
// to repositories; there is no package-level connection.
func Connect(path string) (*sqlx.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// _loc=auto keeps scanned timestamps in local time, which the
	// calendar-day queue logic depends on.
	db, err := sqlx.Connect("sqlite3", "file:"+path+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// initializeSchema creates the two collection tables if they don't exist.
// Each row holds a full record keyed by id; a problem's review history is
// stored as a JSON column so that every upsert replaces the record as a
// single atomic unit.
func initializeSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS problems (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			number INTEGER DEFAULT 0,
			review_history TEXT NOT NULL DEFAULT '[]',
			next_review_date TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL,
			archived BOOLEAN NOT NULL DEFAULT false
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create problems table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS todo_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			number INTEGER DEFAULT 0,
			note TEXT DEFAULT '',
			completed BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL,
			completed_at TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create todo_items table: %w", err)
	}

	return nil
}
