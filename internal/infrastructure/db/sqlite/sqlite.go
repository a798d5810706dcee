// Package sqlite implements the repositories over a local SQLite database.
// All access goes through parameterized queries; raw user input never reaches
// the query text.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const defaultTimeout = 5 * time.Second

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	email         TEXT UNIQUE,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'user',
	created_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS topics (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS quotes (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	text        TEXT NOT NULL,
	author      TEXT,
	is_public   INTEGER NOT NULL DEFAULT 1,
	is_favorite INTEGER NOT NULL DEFAULT 0,
	user_id     INTEGER REFERENCES users(id) ON DELETE SET NULL,
	topic_id    INTEGER REFERENCES topics(id) ON DELETE SET NULL,
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quotes_created_at ON quotes(created_at);
CREATE INDEX IF NOT EXISTS idx_quotes_user_id ON quotes(user_id);
CREATE INDEX IF NOT EXISTS idx_quotes_topic_id ON quotes(topic_id);
`

// Connect opens (or creates) the SQLite database at path, applies pragmas and
// the schema, and verifies connectivity with a ping.
func Connect(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = "quotes.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}

	// journal_mode is unsupported for in-memory databases; ignore errors.
	_, _ = db.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	return db, nil
}
