// Package history keeps an audit log of every request batch the bridge
// applies to a remote document. Edits land on documents other people
// share; a local record of what changed, when, and through which tool is
// the cheapest form of accountability.
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

type Entry struct {
	ID         string
	DocumentID string
	Tool       string
	Requests   int
	EndIndex   int64
	CreatedAt  time.Time
}

type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS batches (
    id TEXT PRIMARY KEY,
    document_id TEXT NOT NULL,
    tool TEXT NOT NULL,
    requests INTEGER NOT NULL,
    end_index INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_batches_created_at ON batches(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_batches_document_id ON batches(document_id);
`

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Record(ctx context.Context, e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO batches (id, document_id, tool, requests, end_index, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.DocumentID, e.Tool, e.Requests, e.EndIndex, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("record batch: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first, optionally
// filtered to one document.
func (s *Store) List(ctx context.Context, documentID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, document_id, tool, requests, end_index, created_at
	          FROM batches`
	args := []any{}
	if documentID != "" {
		query += ` WHERE document_id = ?`
		args = append(args, documentID)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.DocumentID, &e.Tool, &e.Requests, &e.EndIndex, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
