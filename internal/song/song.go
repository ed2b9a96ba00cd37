// internal/song/song.go
//
// Now-playing record, one per tenant.
//
// Context
// -------
// The overlay replaces the whole record on every track change
// (`REPLACE INTO`), so there is no merge logic anywhere.  Reads follow the
// soft-miss policy: a tenant with no record gets a renderable sentinel
// ("No song found", empty cover), never an error.  Chat bots print that
// string directly, so changing it is a breaking change.
package song

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// NoSongSentinel is the `song` field of the record returned when a tenant
// has nothing playing.
const NoSongSentinel = "No song found"

// Record is the current song for one tenant.  Optional metadata fields are
// pointers so absent values round-trip as JSON null.
type Record struct {
	UUID       string  `db:"uuid"       json:"uuid"`
	Song       string  `db:"song"       json:"song"`
	CoverURL   string  `db:"cover_url"  json:"cover_url"`
	SongID     *string `db:"song_id"    json:"song_id"`
	PlayerType *string `db:"playertype" json:"playertype"`
	Artist     *string `db:"artist"     json:"artist"`
	Title      *string `db:"title"      json:"title"`
	Requester  *string `db:"requester"  json:"requester"`
}

// Store reads and writes song_data.
type Store struct {
	db *sqlx.DB
}

// New returns a Store backed by db.
func New(db *sqlx.DB) *Store { return &Store{db: db} }

const (
	replaceQ = `REPLACE INTO song_data
                    (uuid, song, cover_url, song_id, playertype, artist, title, requester)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	selectQ = `SELECT uuid, song, cover_url, song_id, playertype, artist, title, requester
                 FROM song_data
                WHERE uuid = ?`
)

// Set replaces the tenant's record wholesale.
func (s *Store) Set(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, replaceQ,
		rec.UUID, rec.Song, rec.CoverURL, rec.SongID, rec.PlayerType,
		rec.Artist, rec.Title, rec.Requester)
	if err != nil {
		return fmt.Errorf("song: set: %w", err)
	}
	return nil
}

// ByTenant returns the tenant's current song.  A store miss yields the
// sentinel record echoing the requested id; only genuine store faults are
// errors.
func (s *Store) ByTenant(ctx context.Context, tenantID string) (Record, error) {
	var rec Record
	err := s.db.GetContext(ctx, &rec, selectQ, tenantID)
	switch {
	case err == nil:
		return rec, nil
	case errors.Is(err, sql.ErrNoRows):
		return Sentinel(tenantID), nil
	default:
		return Record{}, fmt.Errorf("song: get: %w", err)
	}
}

// Sentinel is the defined "nothing playing" record for ref.
func Sentinel(ref string) Record {
	return Record{UUID: ref, Song: NoSongSentinel}
}
