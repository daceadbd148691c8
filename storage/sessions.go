// Package storage provides SQLite session persistence.
//
// Information Hiding:
// - SQLite connection management hidden behind the store type
// - Schema details encapsulated
// - Thread-safe via sql.DB's built-in connection pooling

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/codeBunny2022/gwsmaa/workspace"
)

// ErrNotFound is returned when a session, state, or credential set is absent.
var ErrNotFound = errors.New("storage: not found")

// SessionStore persists per-session OAuth state and credentials.
// The decision pipeline itself is stateless; this is the only durable state
// the HTTP boundary needs between the login redirect and the callback.
type SessionStore struct {
	db *sql.DB
}

// OpenSessions opens or creates a SQLite database at the given path.
// Creates parent directories if they don't exist.
func OpenSessions(path string) (*SessionStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	store := &SessionStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// NewSessionsInMemory creates an in-memory store (useful for testing).
func NewSessionsInMemory() (*SessionStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite: %w", err)
	}

	store := &SessionStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *SessionStore) Close() error {
	return s.db.Close()
}

func (s *SessionStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			oauth_state TEXT,
			credentials TEXT,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SessionStore) ensureSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO sessions (session_id) VALUES (?)",
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure session: %w", err)
	}
	return nil
}

// SaveState records the pending OAuth state token for a session.
func (s *SessionStore) SaveState(ctx context.Context, sessionID, state string) error {
	if err := s.ensureSession(ctx, sessionID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE sessions SET oauth_state = ?, updated_at = datetime('now') WHERE session_id = ?",
		state, sessionID)
	if err != nil {
		return fmt.Errorf("failed to save oauth state: %w", err)
	}
	return nil
}

// LoadState returns the pending OAuth state for a session.
// Returns ErrNotFound when the session has no pending state.
func (s *SessionStore) LoadState(ctx context.Context, sessionID string) (string, error) {
	var state sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT oauth_state FROM sessions WHERE session_id = ?",
		sessionID).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load oauth state: %w", err)
	}
	if !state.Valid || state.String == "" {
		return "", ErrNotFound
	}
	return state.String, nil
}

// SaveCredentials persists the exchanged credential set for a session and
// clears any pending OAuth state.
func (s *SessionStore) SaveCredentials(ctx context.Context, sessionID string, creds workspace.Credentials) error {
	if err := s.ensureSession(ctx, sessionID); err != nil {
		return err
	}

	encoded, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE sessions SET credentials = ?, oauth_state = NULL, updated_at = datetime('now') WHERE session_id = ?",
		string(encoded), sessionID)
	if err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

// LoadCredentials returns the stored credential set for a session.
// Returns ErrNotFound when the session has never completed the OAuth flow.
func (s *SessionStore) LoadCredentials(ctx context.Context, sessionID string) (workspace.Credentials, error) {
	var encoded sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT credentials FROM sessions WHERE session_id = ?",
		sessionID).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return workspace.Credentials{}, ErrNotFound
	}
	if err != nil {
		return workspace.Credentials{}, fmt.Errorf("failed to load credentials: %w", err)
	}
	if !encoded.Valid || encoded.String == "" {
		return workspace.Credentials{}, ErrNotFound
	}

	var creds workspace.Credentials
	if err := json.Unmarshal([]byte(encoded.String), &creds); err != nil {
		return workspace.Credentials{}, fmt.Errorf("failed to decode credentials: %w", err)
	}
	return creds, nil
}
