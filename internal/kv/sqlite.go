package kv

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps slots as rows of a single key-value table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and runs migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Slot returns a handle for the named slot.
func (s *SQLiteStore) Slot(key string) *SQLiteSlot {
	return &SQLiteSlot{store: s, key: key}
}

// Ping verifies the underlying database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SQLiteSlot is one row of the slots table.
type SQLiteSlot struct {
	store *SQLiteStore
	key   string
}

func (s *SQLiteSlot) Get(ctx context.Context) ([]byte, error) {
	var value []byte
	err := s.store.db.QueryRowContext(ctx,
		"SELECT value FROM slots WHERE key = ?", s.key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("slot get %s: %w", s.key, err)
	}
	return value, nil
}

func (s *SQLiteSlot) Set(ctx context.Context, value []byte) error {
	_, err := s.store.db.ExecContext(ctx,
		`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		s.key, value,
	)
	if err != nil {
		return fmt.Errorf("slot set %s: %w", s.key, err)
	}
	return nil
}

func (s *SQLiteSlot) Delete(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM slots WHERE key = ?", s.key,
	)
	if err != nil {
		return fmt.Errorf("slot delete %s: %w", s.key, err)
	}
	return nil
}
