// internal/history/history.go
//
// Append-only play history.
//
// Entries are never mutated or deleted; reads come back newest-first.  The
// timestamp is stored as the string the clients send (unix seconds), which
// keeps the wire format stable across the historical generations.
package history

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Entry is one played song event.
type Entry struct {
	UUID string `db:"uuid" json:"uuid"`
	Song string `db:"song" json:"song"`
	Tst  string `db:"tst"  json:"tst"`
}

// Store reads and writes songify_history.
type Store struct {
	db *sqlx.DB
}

// New returns a Store backed by db.
func New(db *sqlx.DB) *Store { return &Store{db: db} }

const (
	insertQ = `INSERT INTO songify_history (uuid, song, tst) VALUES (?, ?, ?)`

	listQ = `SELECT uuid, song, tst
               FROM songify_history
              WHERE uuid = ?
              ORDER BY tst DESC`
)

// Append records a play event.  Insert-only.
func (s *Store) Append(ctx context.Context, e Entry) error {
	if _, err := s.db.ExecContext(ctx, insertQ, e.UUID, e.Song, e.Tst); err != nil {
		return fmt.Errorf("history: append: %w", err)
	}
	return nil
}

// ByTenant returns all history entries for the tenant, newest first.
func (s *Store) ByTenant(ctx context.Context, tenantID string) ([]Entry, error) {
	entries := make([]Entry, 0, 32)
	if err := s.db.SelectContext(ctx, &entries, listQ, tenantID); err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	return entries, nil
}
