package vocab

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store is the durable backing for the vocabulary bank. It is written only
// by the seed command; the service bulk-loads it once at startup and never
// writes.
type Store struct {
	db *sql.DB
}

// Open creates a Store connected to the SQLite database at path, creating
// the schema if needed.
func Open(path string) (*Store, error) {
	if err := ensureDir(path); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := path + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS vocab_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		word TEXT NOT NULL,
		definition TEXT NOT NULL,
		difficulty INTEGER NOT NULL CHECK (difficulty BETWEEN 1 AND 3),
		topic TEXT,
		UNIQUE (word, topic)
	);
	CREATE INDEX IF NOT EXISTS idx_vocab_topic ON vocab_entries(topic);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// LoadAll reads every entry. Called once at startup to build the Bank.
func (s *Store) LoadAll(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word, definition, difficulty, COALESCE(topic, '') FROM vocab_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Word, &e.Definition, &e.Difficulty, &e.Topic); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vocab_entries`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// Insert adds entries, ignoring duplicates of (word, topic). Returns the
// number of rows actually inserted.
func (s *Store) Insert(ctx context.Context, entries []Entry) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO vocab_entries (word, definition, difficulty, topic) VALUES (?, ?, ?, NULLIF(?, ''))`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, e := range entries {
		res, err := stmt.ExecContext(ctx, e.Word, e.Definition, e.Difficulty, e.Topic)
		if err != nil {
			return 0, fmt.Errorf("insert %q: %w", e.Word, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

// Seed populates the store with the built-in corpus when it is empty.
// Safe to call repeatedly.
func (s *Store) Seed(ctx context.Context) (int, error) {
	return s.Insert(ctx, SeedEntries())
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DefaultDBPath resolves the database file path in priority order:
// 1. WORDSPARK_DB environment variable
// 2. $XDG_DATA_HOME/wordspark/wordspark.db
// 3. ~/.local/share/wordspark/wordspark.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("WORDSPARK_DB"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "wordspark", "wordspark.db"), nil
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
