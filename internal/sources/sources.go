// Package sources holds one adapter per external data provider. Each
// adapter performs a single network call and normalizes the payload into
// a typed record; callers convert any returned error into an absent data
// slice, so no adapter failure is ever fatal to a request.
package sources

import (
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNotConfigured marks an adapter whose API key is unset. Callers skip
// the slice silently instead of logging a degradation.
var ErrNotConfigured = errors.New("adapter not configured")

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// newClient builds a resty client with the shared defaults. The per-call
// deadline comes from the request context; the client timeout is only a
// backstop.
func newClient(baseURL string) *resty.Client {
	client := resty.New()
	if baseURL != "" {
		client.SetBaseURL(baseURL)
	}
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", browserUserAgent)
	return client
}
