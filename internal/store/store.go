// Package store persists extraction results in a relational table.
// Persistence is best-effort: callers log failures and still return
// the extraction to the client.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rclark/bookstruct/internal/booktree"
)

// Store wraps the extraction results table. A nil *Store is valid and
// turns every operation into a no-op, which is how the service runs
// with persistence disabled.
type Store struct {
	db *sql.DB
}

// Extraction is one persisted result row.
type Extraction struct {
	ID          int64     `json:"id"`
	PDFFileName string    `json:"pdf_file_name"`
	JSONContent string    `json:"json_content"`
	CreatedAt   time.Time `json:"created_at"`
}

// Open connects to the sqlite database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragma: %w", err)
	}

	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS extractions(
		id INTEGER NOT NULL PRIMARY KEY,
		pdf_file_name TEXT NOT NULL,
		json_content TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveExtraction serializes the document tree and inserts one row.
func (s *Store) SaveExtraction(ctx context.Context, pdfFileName string, doc *booktree.Document) error {
	if s == nil {
		return nil
	}
	content, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO extractions (pdf_file_name, json_content, created_at) VALUES ($1, $2, $3)`,
		pdfFileName, string(content), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert extraction: %w", err)
	}
	return nil
}

// Recent returns the newest extractions, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Extraction, error) {
	if s == nil {
		return []Extraction{}, nil
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pdf_file_name, json_content, created_at
		 FROM extractions ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []Extraction{}
	for rows.Next() {
		var e Extraction
		if err := rows.Scan(&e.ID, &e.PDFFileName, &e.JSONContent, &e.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return results, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}
