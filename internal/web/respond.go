// internal/web/respond.go
//
// Response helpers and the error → status mapping.
//
// Policy (kept exactly as the clients expect): validation and auth
// failures are client errors, store and origin faults are server errors,
// and data absence on reads is a soft miss handled by the stores
// themselves—by the time an error reaches fail(), it is a real fault.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/songify-rocks/songify-backend/internal/accesskey"
	"github.com/songify-rocks/songify-backend/internal/canvas"
	"github.com/songify-rocks/songify-backend/internal/telemetry"
)

// errMissingRef means a read endpoint got neither uuid nor name.
var errMissingRef = errors.New("web: request carries neither uuid nor name")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// fail classifies err and writes the matching status.  Server-side faults
// are logged; client errors are the caller's problem.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errMissingRef):
		http.Error(w, "uuid or name required", http.StatusBadRequest)
	case errors.Is(err, telemetry.ErrEmptyTenant):
		http.Error(w, "uuid must not be empty", http.StatusBadRequest)
	case errors.Is(err, accesskey.ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, canvas.ErrNotFound):
		http.Error(w, "no canvas found", http.StatusNotFound)
	default:
		s.log.Errorw("request failed",
			"path", r.URL.Path, "method", r.Method, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// decode unmarshals a JSON body, treating any syntax or type mismatch as a
// client error.
func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
