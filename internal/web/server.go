// internal/web/server.go
//
// HTTP surface of the Songify backend.
//
// Context
// -------
// One Server owns every store and the artwork cache; handlers are methods
// on it.  All handlers are stateless per call—durable state lives in the
// database, so concurrent requests only meet at the store, and ordering
// guarantees (queue ids, key binding) come from the store's own atomicity.
//
// Request flow for mutating endpoints: resolve nothing, verify the access
// key against the uuid taken straight from the payload, then dispatch.
// Read endpoints resolve `uuid`/`name` first (vanity alias table, then
// most-recent-session lookup) and never require a key.
package web

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/songify-rocks/songify-backend/internal/accesskey"
	"github.com/songify-rocks/songify-backend/internal/alias"
	"github.com/songify-rocks/songify-backend/internal/canvas"
	"github.com/songify-rocks/songify-backend/internal/history"
	"github.com/songify-rocks/songify-backend/internal/motd"
	"github.com/songify-rocks/songify-backend/internal/queue"
	"github.com/songify-rocks/songify-backend/internal/song"
	"github.com/songify-rocks/songify-backend/internal/telemetry"
)

// Server wires the stores behind the HTTP handlers.
type Server struct {
	db      *sqlx.DB
	log     *zap.SugaredLogger
	base    string
	aliases *alias.Resolver

	keys    *accesskey.Store
	queue   *queue.Store
	songs   *song.Store
	history *history.Store
	usage   *telemetry.Store
	motd    *motd.Store
	canvas  *canvas.Cache
}

// New builds a Server on the shared pool.  base is the route mount point
// (overlay clients speak /v2).
func New(db *sqlx.DB, aliases *alias.Resolver, cv *canvas.Cache, base string, log *zap.SugaredLogger) *Server {
	return &Server{
		db:      db,
		log:     log,
		base:    base,
		aliases: aliases,
		keys:    accesskey.New(db),
		queue:   queue.New(db),
		songs:   song.New(db),
		history: history.New(db),
		usage:   telemetry.New(db),
		motd:    motd.New(db),
		canvas:  cv,
	}
}
