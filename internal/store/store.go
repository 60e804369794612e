// Package store is the durable record store for RoadReady. All user data
// (profile, per-question history, aggregate stats, the active session
// snapshot, and earned achievements) lives in a single SQLite table of
// namespaced JSON documents. Every write replaces the whole value for a key;
// reads tolerate missing or malformed values by logging and returning a
// documented default.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Record keys. One JSON document per key.
const (
	keyUser            = "user"
	keyQuestionHistory = "question_history"
	keyStats           = "stats"
	keyCurrentSession  = "current_session"
	keyAchievements    = "achievements"
	keyCategoryMasters = "category_masters"
)

// Store holds the database handle and provides typed accessors for each
// record key.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the records table.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db, log: slog.Default()}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS records (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	return err
}

// readJSON loads the value for key into v. It returns false, leaving v
// untouched, when the key is absent or the stored value cannot be decoded.
// Storage failures never propagate out of a read.
func (s *Store) readJSON(ctx context.Context, key string, v any) bool {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM records WHERE key = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		s.log.Error("store read failed", "key", key, "err", err)
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.log.Warn("store value malformed, using default", "key", key, "err", err)
		return false
	}
	return true
}

// writeJSON replaces the whole value stored at key.
func (s *Store) writeJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(raw))
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// deleteKey removes a record. Deleting an absent key is a no-op.
func (s *Store) deleteKey(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Reset removes the user profile, question history, stats and any active
// session. Earned achievements survive a reset.
func (s *Store) Reset(ctx context.Context) error {
	for _, key := range []string{keyUser, keyQuestionHistory, keyStats, keyCurrentSession} {
		if err := s.deleteKey(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// ResetAll removes every record, achievements included.
func (s *Store) ResetAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return fmt.Errorf("reset all: %w", err)
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. ROADREADY_DB environment variable
// 2. $XDG_DATA_HOME/roadready/roadready.db
// 3. ~/.local/share/roadready/roadready.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("ROADREADY_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "roadready", "roadready.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
