// internal/canvas/cache_test.go
//
// Unit-tests for the read-through artwork cache.  The store is sqlmock;
// the origin is an httptest server so the tests exercise the real client,
// including its timeout handling.

package canvas

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

const track = "3B54sVLJ402zGa6Xm4YGNe"

func newCache(t *testing.T, originURL string) (*Cache, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, "mysql"), NewOrigin(originURL, 2*time.Second)), mock
}

func TestGetCacheHitSkipsOrigin(t *testing.T) {
	var originCalls atomic.Int32
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		originCalls.Add(1)
	}))
	defer origin.Close()

	c, mock := newCache(t, origin.URL)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT canvas_url FROM canvas_cache WHERE track_id = ?`)).
		WithArgs(track).
		WillReturnRows(sqlmock.NewRows([]string{"canvas_url"}).
			AddRow("https://canvas/u.mp4"))

	got, err := c.Get(context.Background(), track)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "https://canvas/u.mp4" {
		t.Fatalf("unexpected url: %q", got)
	}
	if originCalls.Load() != 0 {
		t.Fatalf("origin must not be called on a cache hit")
	}
}

func TestGetMissFetchesAndPersists(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/canvas" || r.URL.Query().Get("id") != track {
			t.Errorf("unexpected origin request: %s", r.URL)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"canvasUrl":"https://canvas/new.mp4"}`))
	}))
	defer origin.Close()

	c, mock := newCache(t, origin.URL)

	mock.ExpectQuery("SELECT canvas_url FROM canvas_cache").
		WithArgs(track).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO canvas_cache (track_id, canvas_url) VALUES (?, ?) ON DUPLICATE KEY UPDATE canvas_url = VALUES(canvas_url), cached_at = CURRENT_TIMESTAMP`)).
		WithArgs(track, "https://canvas/new.mp4").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := c.Get(context.Background(), track)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "https://canvas/new.mp4" {
		t.Fatalf("unexpected url: %q", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestGetOriginWithoutURLIsNotFound(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer origin.Close()

	c, mock := newCache(t, origin.URL)

	mock.ExpectQuery("SELECT canvas_url FROM canvas_cache").
		WithArgs(track).
		WillReturnError(sql.ErrNoRows)

	_, err := c.Get(context.Background(), track)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetOriginDownIsNotFound(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer origin.Close()

	c, mock := newCache(t, origin.URL)

	mock.ExpectQuery("SELECT canvas_url FROM canvas_cache").
		WithArgs(track).
		WillReturnError(sql.ErrNoRows)

	_, err := c.Get(context.Background(), track)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetStoreFaultIsNotNotFound(t *testing.T) {
	c, mock := newCache(t, "http://127.0.0.1:0")

	mock.ExpectQuery("SELECT canvas_url FROM canvas_cache").
		WithArgs(track).
		WillReturnError(errors.New("connection refused"))

	_, err := c.Get(context.Background(), track)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("store faults must not masquerade as NotFound, got %v", err)
	}
}
