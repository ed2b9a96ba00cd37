// internal/web/router.go
//
// Route table and middleware chain.
//
// CORS is wide open on purpose: the overlay runs inside OBS browser
// sources and chat bots call from arbitrary origins.  The header set
// matches what the clients already rely on; tightening it breaks them.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router returns the root handler: API under s.base, plus /healthz and
// /metrics outside it.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "GET", "OPTIONS", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.Use(countRequests)

	r.Route(s.base, func(r chi.Router) {
		r.Get("/getsong", s.getSong)
		r.Get("/getcover", s.getCover)

		r.Get("/queue", s.getQueue)
		r.Post("/queue", s.addToQueue)
		r.Patch("/queue", s.markQueuePlayed)
		r.Post("/queue_delete", s.clearQueue)

		r.Post("/telemetry", s.reportTelemetry)
		r.Post("/song", s.setSong)

		r.Post("/history", s.appendHistory)
		r.Get("/history_data", s.getHistory)

		r.Get("/twitch_name", s.getTwitchName)

		r.Get("/motd", s.getActiveMotds)
		r.Get("/motd_all", s.getAllMotds)

		r.Get("/canvas/{track_id}", s.getCanvas)
	})

	r.Get("/healthz", s.healthz)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
