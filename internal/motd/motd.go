// internal/motd/motd.go
//
// Operator-authored banner messages.
//
// Read-only from the service's perspective; messages are written by an
// administrative tool straight into the table.  JSON casing (Id,
// MessageText, …) is the shape the desktop client renders.
package motd

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Message is one banner.
type Message struct {
	ID          int64  `db:"id"           json:"Id"`
	MessageText string `db:"message_text" json:"MessageText"`
	Severity    string `db:"severity"     json:"Severity"`
	CreatedAt   int64  `db:"created_at"   json:"CreatedAt"`
	StartDate   *int64 `db:"start_date"   json:"StartDate"`
	EndDate     *int64 `db:"end_date"     json:"EndDate"`
	IsActive    bool   `db:"is_active"    json:"IsActive"`
	Author      string `db:"author"       json:"Author"`
}

// Store reads motd_messages.
type Store struct {
	db *sqlx.DB
}

// New returns a Store backed by db.
func New(db *sqlx.DB) *Store { return &Store{db: db} }

const (
	activeQ = `SELECT id, message_text, severity, created_at, start_date,
                      end_date, is_active, author
                 FROM motd_messages
                WHERE is_active = 1
                ORDER BY created_at DESC`

	allQ = `SELECT id, message_text, severity, created_at, start_date,
                   end_date, is_active, author
              FROM motd_messages
             ORDER BY created_at DESC`
)

// Active returns messages with the active flag set, newest first.
func (s *Store) Active(ctx context.Context) ([]Message, error) {
	msgs := make([]Message, 0, 4)
	if err := s.db.SelectContext(ctx, &msgs, activeQ); err != nil {
		return nil, fmt.Errorf("motd: active: %w", err)
	}
	return msgs, nil
}

// All returns every message, newest first.
func (s *Store) All(ctx context.Context) ([]Message, error) {
	msgs := make([]Message, 0, 16)
	if err := s.db.SelectContext(ctx, &msgs, allQ); err != nil {
		return nil, fmt.Errorf("motd: all: %w", err)
	}
	return msgs, nil
}
