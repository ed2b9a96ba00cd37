// internal/web/handlers.go
//
// Endpoint handlers.  Field names in the payload structs mirror the JSON
// the desktop client and overlay already send; several casings are
// historical (queueItem, Queueid) and must stay.
package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/songify-rocks/songify-backend/internal/history"
	"github.com/songify-rocks/songify-backend/internal/queue"
	"github.com/songify-rocks/songify-backend/internal/song"
	"github.com/songify-rocks/songify-backend/internal/telemetry"
	"github.com/songify-rocks/songify-backend/internal/ua"
)

//
// payloads
//

type queuePostPayload struct {
	QueueItem queue.Entry `json:"queueItem"`
	UUID      string      `json:"uuid"`
}

type queueUpdatePayload struct {
	QueueID int64  `json:"queueid"`
	UUID    string `json:"uuid"`
}

type queueClearPayload struct {
	UUID string `json:"uuid"`
	Key  string `json:"key"`
}

type telemetryPayload struct {
	UUID       string  `json:"uuid"`
	Key        string  `json:"key"`
	Tst        int64   `json:"tst"`
	TwitchID   string  `json:"twitch_id"`
	TwitchName string  `json:"twitch_name"`
	VS         *string `json:"vs"`
	PlayerType string  `json:"playertype"`
}

type songPayload struct {
	UUID       string  `json:"uuid"`
	Key        string  `json:"key"`
	Song       string  `json:"song"`
	Cover      *string `json:"cover"`
	SongID     *string `json:"song_id"`
	PlayerType *string `json:"playertype"`
	Artist     *string `json:"artist"`
	Title      *string `json:"title"`
	Requester  *string `json:"requester"`
}

type historyPayload struct {
	ID   string `json:"id"`
	Song string `json:"song"`
	Key  string `json:"key"`
	Tst  int64  `json:"tst"`
}

//
// song reads
//

func (s *Server) getSong(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ref, err := s.resolveRef(r.Context(), q.Get("uuid"), q.Get("name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	rec, err := s.songs.ByTenant(r.Context(), ref)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if q.Get("full") == "true" {
		writeJSON(w, http.StatusOK, rec)
		return
	}
	writeText(w, http.StatusOK, rec.Song)
}

func (s *Server) getCover(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ref, err := s.resolveRef(r.Context(), q.Get("uuid"), q.Get("name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	rec, err := s.songs.ByTenant(r.Context(), ref)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeText(w, http.StatusOK, rec.CoverURL)
}

//
// queue
//

func (s *Server) getQueue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ref, err := s.resolveRef(r.Context(), q.Get("uuid"), q.Get("name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	entries, err := s.queue.Pending(r.Context(), ref)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) addToQueue(w http.ResponseWriter, r *http.Request) {
	var p queuePostPayload
	if err := decode(r, &p); err != nil {
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	if err := s.keys.Verify(r.Context(), p.UUID, r.URL.Query().Get("api_key")); err != nil {
		s.fail(w, r, err)
		return
	}

	entry, err := s.queue.Add(r.Context(), p.UUID, p.QueueItem)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Infow("queue entry added",
		"tenant", p.UUID, "queue_id", entry.QueueID, "track", entry.TrackID)
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) markQueuePlayed(w http.ResponseWriter, r *http.Request) {
	var p queueUpdatePayload
	if err := decode(r, &p); err != nil {
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	if err := s.keys.Verify(r.Context(), p.UUID, r.URL.Query().Get("api_key")); err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.queue.MarkPlayed(r.Context(), p.UUID, p.QueueID); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) clearQueue(w http.ResponseWriter, r *http.Request) {
	var p queueClearPayload
	if err := decode(r, &p); err != nil {
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	if err := s.keys.Verify(r.Context(), p.UUID, p.Key); err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.queue.Clear(r.Context(), p.UUID); err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Infow("queue cleared", "tenant", p.UUID)
	w.WriteHeader(http.StatusOK)
}

//
// telemetry / now playing
//

func (s *Server) reportTelemetry(w http.ResponseWriter, r *http.Request) {
	var p telemetryPayload
	if err := decode(r, &p); err != nil {
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}
	if p.UUID == "" {
		s.fail(w, r, telemetry.ErrEmptyTenant)
		return
	}

	if err := s.keys.Verify(r.Context(), p.UUID, p.Key); err != nil {
		s.fail(w, r, err)
		return
	}

	rec := telemetry.Record{
		UUID:       p.UUID,
		Tst:        strconv.FormatInt(p.Tst, 10),
		TwitchID:   p.TwitchID,
		TwitchName: p.TwitchName,
		VS:         p.VS,
		PlayerType: p.PlayerType,
		AccessKey:  p.Key,
	}
	if info := ua.Parse(r.UserAgent()); info.OS != "" {
		rec.ClientOS, rec.ClientDevice = &info.OS, &info.Device
	}

	if err := s.usage.Report(r.Context(), rec); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) setSong(w http.ResponseWriter, r *http.Request) {
	var p songPayload
	if err := decode(r, &p); err != nil {
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	if err := s.keys.Verify(r.Context(), p.UUID, p.Key); err != nil {
		s.fail(w, r, err)
		return
	}

	cover := ""
	if p.Cover != nil {
		cover = *p.Cover
	}
	rec := song.Record{
		UUID:       p.UUID,
		Song:       p.Song,
		CoverURL:   cover,
		SongID:     p.SongID,
		PlayerType: p.PlayerType,
		Artist:     p.Artist,
		Title:      p.Title,
		Requester:  p.Requester,
	}

	if err := s.songs.Set(r.Context(), rec); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

//
// history
//

func (s *Server) appendHistory(w http.ResponseWriter, r *http.Request) {
	var p historyPayload
	if err := decode(r, &p); err != nil {
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	if err := s.keys.Verify(r.Context(), p.ID, r.URL.Query().Get("api_key")); err != nil {
		s.fail(w, r, err)
		return
	}

	e := history.Entry{
		UUID: p.ID,
		Song: p.Song,
		Tst:  strconv.FormatInt(p.Tst, 10),
	}
	if err := s.history.Append(r.Context(), e); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		s.fail(w, r, errMissingRef)
		return
	}

	entries, err := s.history.ByTenant(r.Context(), s.aliases.Resolve(id))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

//
// misc reads
//

func (s *Server) getTwitchName(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		s.fail(w, r, errMissingRef)
		return
	}

	name, err := s.usage.TwitchName(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeText(w, http.StatusOK, name)
}

func (s *Server) getActiveMotds(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.motd.Active(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (s *Server) getAllMotds(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.motd.All(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (s *Server) getCanvas(w http.ResponseWriter, r *http.Request) {
	trackID := chi.URLParam(r, "track_id")

	url, err := s.canvas.Get(r.Context(), trackID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	// The historical wire format is a bare JSON string.
	writeJSON(w, http.StatusOK, url)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	writeText(w, http.StatusOK, "ok")
}
