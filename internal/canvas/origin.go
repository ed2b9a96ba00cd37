// internal/canvas/origin.go
//
// Client for the external artwork origin service.
//
// The origin exposes `GET <base>/canvas?id=<track>` and answers
// `{"canvasUrl": "..."}`.  Calls are bounded by the client timeout; the
// historical service had none, which let a slow origin pin request workers.
package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// OriginClient looks artwork URLs up at the origin service.
type OriginClient struct {
	base string
	http *http.Client
}

// NewOrigin returns a client for the origin at base (no trailing slash
// needed) with the given per-call timeout.
func NewOrigin(base string, timeout time.Duration) *OriginClient {
	return &OriginClient{
		base: base,
		http: &http.Client{Timeout: timeout},
	}
}

// Lookup fetches the artwork URL for trackID.  Any transport failure,
// non-2xx status, or response without a canvasUrl field reports ErrNotFound;
// callers retry in full on the next request for the track.
func (c *OriginClient) Lookup(ctx context.Context, trackID string) (string, error) {
	u := fmt.Sprintf("%s/canvas?id=%s", c.base, url.QueryEscape(trackID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("canvas: build origin request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: origin call: %v", ErrNotFound, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: origin status %d", ErrNotFound, resp.StatusCode)
	}

	var body struct {
		CanvasURL string `json:"canvasUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: origin body: %v", ErrNotFound, err)
	}
	if body.CanvasURL == "" {
		return "", fmt.Errorf("%w: origin response has no canvasUrl", ErrNotFound)
	}
	return body.CanvasURL, nil
}
