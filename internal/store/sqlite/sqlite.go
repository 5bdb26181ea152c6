// Package sqlite persists diary entries in a single file-backed table.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/apetrov/diarium/backend/internal/model/diary"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id              TEXT PRIMARY KEY,
	content         TEXT NOT NULL,
	sentiment_score REAL NOT NULL,
	sentiment_label TEXT NOT NULL,
	emotions        TEXT NOT NULL,
	created_at      TEXT NOT NULL
);
`

// Store implements diary.Store on top of a SQLite database file.
// Access is append-only plus full-table scans, so a single connection
// with WAL journaling is enough.
type Store struct {
	db *sql.DB
}

// Open creates the database file (and its directory) if needed and
// applies the schema idempotently.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append inserts one entry row.
func (s *Store) Append(ctx context.Context, entry diary.Entry) error {
	emotions, err := json.Marshal(entry.Emotions)
	if err != nil {
		return fmt.Errorf("failed to encode emotions: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO entries (id, content, sentiment_score, sentiment_label, emotions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Content, entry.SentimentScore, entry.SentimentLabel, string(emotions), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

// List returns every entry ordered by created_at ascending.
func (s *Store) List(ctx context.Context) ([]diary.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, sentiment_score, sentiment_label, emotions, created_at
		 FROM entries ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []diary.Entry
	for rows.Next() {
		var entry diary.Entry
		var emotions string
		if err := rows.Scan(&entry.ID, &entry.Content, &entry.SentimentScore, &entry.SentimentLabel, &emotions, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if err := json.Unmarshal([]byte(emotions), &entry.Emotions); err != nil {
			return nil, fmt.Errorf("failed to decode emotions for entry %s: %w", entry.ID, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}
