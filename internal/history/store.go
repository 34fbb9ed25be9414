// Package history keeps a local log of completed requests against the
// message resource: what was sent, what the service echoed, what failed.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Operations recorded in the log
const (
	OpFetch = "fetch"
	OpPut   = "put"
	OpPost  = "post"
	OpMode  = "mode"
)

// Entry is one completed request
type Entry struct {
	ID       string
	Op       string
	Source   string // "tui" or "cli"
	Sent     string
	Received string
	Error    string
	At       time.Time
}

// Failed reports whether the request ended in an error
func (e Entry) Failed() bool {
	return e.Error != ""
}

// Store persists entries in a SQLite database
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at dbPath and runs migrations
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Completions from the TUI record concurrently; one connection keeps
	// SQLite writers serialized.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id          TEXT PRIMARY KEY,
	op          TEXT NOT NULL,
	source      TEXT NOT NULL DEFAULT '',
	sent        TEXT NOT NULL DEFAULT '',
	received    TEXT NOT NULL DEFAULT '',
	error       TEXT NOT NULL DEFAULT '',
	at_unixnano INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS entries_at ON entries (at_unixnano);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends an entry. Missing ID and timestamp are filled in.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (id, op, source, sent, received, error, at_unixnano)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Op, e.Source, e.Sent, e.Received, e.Error, e.At.UnixNano())
	if err != nil {
		return e, fmt.Errorf("record history entry: %w", err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, op, source, sent, received, error, at_unixnano
		FROM entries
		ORDER BY at_unixnano DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at int64
		if err := rows.Scan(&e.ID, &e.Op, &e.Source, &e.Sent, &e.Received, &e.Error, &at); err != nil {
			return nil, err
		}
		e.At = time.Unix(0, at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&count)
	return count, err
}

// Prune keeps only the newest keep entries
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM entries WHERE id NOT IN (
			SELECT id FROM entries ORDER BY at_unixnano DESC, rowid DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}
	return nil
}

// Clear removes every entry
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
