package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the embedded sqlite database holding the process-local state
// (reminders and reminder settings).
type DB struct {
	*sql.DB
}

// Open opens (or creates) the sqlite database at path. Use ":memory:" for
// ephemeral state in tests.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The kv store is accessed from request handlers and the sweep timer;
	// a single connection avoids sqlite write contention.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}
