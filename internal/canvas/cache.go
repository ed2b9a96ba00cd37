// internal/canvas/cache.go
//
// Read-through artwork cache.
//
// Context
// -------
// Spotify canvas/cover lookups are slow and rate-limited upstream, so
// results are cached forever in `canvas_cache` (no TTL; artwork for a
// given track does not change).  A miss goes to the origin, and a
// successful answer is upserted before it is returned.  Failed lookups are
// not cached: the next request for the same track retries the origin in
// full.  That keeps a transient origin outage from poisoning tracks that
// do have artwork.
package canvas

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/songify-rocks/songify-backend/internal/metrics"
)

// ErrNotFound is returned when neither the cache nor the origin has
// artwork for a track.
var ErrNotFound = errors.New("canvas: no artwork found")

// Cache is the read-through cache over canvas_cache plus the origin.
type Cache struct {
	db     *sqlx.DB
	origin *OriginClient
}

// New returns a Cache backed by db and origin.
func New(db *sqlx.DB, origin *OriginClient) *Cache {
	return &Cache{db: db, origin: origin}
}

const (
	lookupQ = `SELECT canvas_url FROM canvas_cache WHERE track_id = ?`

	upsertQ = `INSERT INTO canvas_cache (track_id, canvas_url)
               VALUES (?, ?)
               ON DUPLICATE KEY UPDATE
                   canvas_url = VALUES(canvas_url),
                   cached_at  = CURRENT_TIMESTAMP`
)

// Get returns the artwork URL for trackID: cache hit first, origin on
// miss.  Origin answers are persisted before they are returned, so at most
// one origin round trip happens per track (absent races, which at worst
// refresh the same row).
func (c *Cache) Get(ctx context.Context, trackID string) (string, error) {
	var cached string
	err := c.db.GetContext(ctx, &cached, lookupQ, trackID)
	switch {
	case err == nil:
		metrics.CanvasCacheHits.Inc()
		return cached, nil
	case errors.Is(err, sql.ErrNoRows):
		metrics.CanvasCacheMisses.Inc()
	default:
		return "", fmt.Errorf("canvas: cache lookup: %w", err)
	}

	fetched, err := c.origin.Lookup(ctx, trackID)
	if err != nil {
		metrics.CanvasOriginErrors.Inc()
		zap.S().Infow("canvas origin miss", "track", trackID, "err", err)
		return "", err
	}

	if _, err := c.db.ExecContext(ctx, upsertQ, trackID, fetched); err != nil {
		return "", fmt.Errorf("canvas: cache store: %w", err)
	}
	return fetched, nil
}
