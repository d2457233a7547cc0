// Package settings persists the per-user autosuggest toggle.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store reads and writes whether autosuggest is enabled for a user.
// Users that were never written are enabled.
type Store interface {
	Enabled(ctx context.Context, userID string) (bool, error)
	SetEnabled(ctx context.Context, userID string, enabled bool) error
	Close() error
}

// MemoryStore keeps settings for the lifetime of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	disabled map[string]bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{disabled: make(map[string]bool)}
}

func (m *MemoryStore) Enabled(_ context.Context, userID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.disabled[userID], nil
}

func (m *MemoryStore) SetEnabled(_ context.Context, userID string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if enabled {
		delete(m.disabled, userID)
	} else {
		m.disabled[userID] = true
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// SQLiteStore keeps settings in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies migrations.
func Open(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// database/sql pools connections; SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			_ = cerr
		}
		return nil, fmt.Errorf("failed to migrate settings database: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS user_settings (
			user_id TEXT PRIMARY KEY,
			autosuggest_enabled INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Enabled(ctx context.Context, userID string) (bool, error) {
	var enabled bool
	err := s.db.QueryRowContext(ctx,
		`SELECT autosuggest_enabled FROM user_settings WHERE user_id = ?`, userID).Scan(&enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return true, fmt.Errorf("failed to read setting for %s: %w", userID, err)
	}
	return enabled, nil
}

func (s *SQLiteStore) SetEnabled(ctx context.Context, userID string, enabled bool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_settings (user_id, autosuggest_enabled, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET autosuggest_enabled = excluded.autosuggest_enabled, updated_at = excluded.updated_at`,
		userID, enabled, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to write setting for %s: %w", userID, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
