// internal/queue/queue.go
//
// Per-tenant song-request queue.
//
// Context
// -------
// The queue is an append-only table.  Consumption never deletes: playing a
// song flips its `played` flag, so the table doubles as an audit log of
// everything ever requested.  `queue_id` is the table's AUTO_INCREMENT
// column, which gives strictly increasing ids and therefore FIFO order
// within a tenant without any in-process locking.
//
// JSON field casing (Queueid, Trackid, Albumcover, …) is the wire format
// the overlay and chat-bot clients already speak; do not normalise it.
package queue

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/songify-rocks/songify-backend/internal/metrics"
)

// Entry is one requested song.  Played stays an int on the wire for
// compatibility with clients that predate a boolean column.
type Entry struct {
	QueueID    int64   `db:"queue_id"    json:"Queueid"`
	UUID       string  `db:"uuid"        json:"Uuid"`
	TrackID    string  `db:"track_id"    json:"Trackid"`
	Artist     string  `db:"artist"      json:"Artist"`
	Title      string  `db:"title"       json:"Title"`
	Length     string  `db:"length"      json:"Length"`
	Requester  string  `db:"requester"   json:"Requester"`
	Played     int     `db:"played"      json:"Played"`
	AlbumCover *string `db:"album_cover" json:"Albumcover"`
}

// Store reads and writes songify_queue.
type Store struct {
	db *sqlx.DB
}

// New returns a Store backed by db.
func New(db *sqlx.DB) *Store { return &Store{db: db} }

const (
	insertQ = `INSERT INTO songify_queue
                   (uuid, track_id, artist, title, length, requester, played, album_cover)
               VALUES (?, ?, ?, ?, ?, ?, 0, ?)`

	selectOneQ = `SELECT queue_id, uuid, track_id, artist, title, length,
                         requester, played, album_cover
                    FROM songify_queue
                   WHERE queue_id = ?`

	pendingQ = `SELECT queue_id, uuid, track_id, artist, title, length,
                       requester, played, album_cover
                  FROM songify_queue
                 WHERE uuid = ? AND played = 0
                 ORDER BY queue_id ASC`

	markPlayedQ = `UPDATE songify_queue SET played = 1
                    WHERE uuid = ? AND queue_id = ?`

	clearQ = `UPDATE songify_queue SET played = 1
               WHERE uuid = ? AND played = 0`
)

// Add inserts a pending entry for tenantID and returns the materialized row,
// including the store-assigned queue id.  Whatever uuid the caller put in
// e is overwritten by tenantID.
func (s *Store) Add(ctx context.Context, tenantID string, e Entry) (Entry, error) {
	res, err := s.db.ExecContext(ctx, insertQ,
		tenantID, e.TrackID, e.Artist, e.Title, e.Length, e.Requester, e.AlbumCover)
	if err != nil {
		return Entry{}, fmt.Errorf("queue: insert: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("queue: last insert id: %w", err)
	}

	var row Entry
	if err := s.db.GetContext(ctx, &row, selectOneQ, id); err != nil {
		return Entry{}, fmt.Errorf("queue: readback: %w", err)
	}

	metrics.QueueAddTotal.Inc()
	return row, nil
}

// Pending returns the tenant's unplayed entries in request order.  An empty
// queue is an empty slice, never an error.
func (s *Store) Pending(ctx context.Context, tenantID string) ([]Entry, error) {
	entries := make([]Entry, 0, 16)
	if err := s.db.SelectContext(ctx, &entries, pendingQ, tenantID); err != nil {
		return nil, fmt.Errorf("queue: pending: %w", err)
	}
	return entries, nil
}

// MarkPlayed flips one entry to played.  Marking an already-played (or
// unknown) entry is not an error and has no further effect.
func (s *Store) MarkPlayed(ctx context.Context, tenantID string, queueID int64) error {
	if _, err := s.db.ExecContext(ctx, markPlayedQ, tenantID, queueID); err != nil {
		return fmt.Errorf("queue: mark played: %w", err)
	}
	metrics.QueuePlayedTotal.Inc()
	return nil
}

// Clear marks every pending entry for the tenant played in one statement,
// the "skip the rest of the queue" operation.  History is preserved.
func (s *Store) Clear(ctx context.Context, tenantID string) error {
	res, err := s.db.ExecContext(ctx, clearQ, tenantID)
	if err != nil {
		return fmt.Errorf("queue: clear: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		metrics.QueuePlayedTotal.Add(float64(n))
	}
	return nil
}
