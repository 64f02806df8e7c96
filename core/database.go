package core

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Database persists the session token between runs of the application.
type Database struct {
	dbFile string
	conn   *sql.DB
}

func NewDatabase(dbFile string) (*Database, error) {
	if dbFile == "" {
		return nil, errors.New("database file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbFile), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	return &Database{dbFile: dbFile}, nil
}

func (db *Database) Connect() error {
	conn, err := sql.Open("sqlite3", db.dbFile)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	db.conn = conn

	return db.initDatabase()
}

func (db *Database) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

func (db *Database) initDatabase() error {
	query := `
    CREATE TABLE IF NOT EXISTS session (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        token TEXT NOT NULL,
        created_at TEXT NOT NULL,
        expires_at TEXT
    )`
	_, err := db.conn.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}

// SaveToken replaces the stored token. expiresAt may be nil for opaque tokens.
func (db *Database) SaveToken(token string, expiresAt *time.Time) error {
	var expires sql.NullString
	if expiresAt != nil {
		expires = sql.NullString{String: expiresAt.UTC().Format(time.RFC3339), Valid: true}
	}
	query := `
    INSERT OR REPLACE INTO session (id, token, created_at, expires_at)
    VALUES (1, ?, ?, ?)`
	_, err := db.conn.Exec(query, token, time.Now().UTC().Format(time.RFC3339), expires)
	if err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}
	return nil
}

// LoadToken returns the stored token, or "" when there is none.
func (db *Database) LoadToken() (string, *time.Time, error) {
	var token string
	var expires sql.NullString
	err := db.conn.QueryRow("SELECT token, expires_at FROM session WHERE id = 1").Scan(&token, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to load session token: %w", err)
	}
	if !expires.Valid {
		return token, nil, nil
	}
	t, err := time.Parse(time.RFC3339, expires.String)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse session expiry %q: %w", expires.String, err)
	}
	return token, &t, nil
}

func (db *Database) ClearToken() error {
	_, err := db.conn.Exec("DELETE FROM session")
	if err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}
