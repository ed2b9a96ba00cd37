// internal/web/middleware.go
//
// Request-counting middleware.  Label cardinality stays bounded because the
// route label is chi's route *pattern* (`/v2/canvas/{track_id}`), not the
// raw path.
package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/songify-rocks/songify-backend/internal/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		metrics.RequestsTotal.
			WithLabelValues(route, r.Method, strconv.Itoa(rec.code)).
			Inc()
	})
}
