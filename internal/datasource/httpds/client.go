// Package httpds implements an HTTP data source with built-in retry/backoff,
// used when the converter's input is a URL rather than a local file (exports
// are often pulled straight from a sheet-sharing link).
//
// Design goals:
//
//   - Keep a tiny, explicit API (a Source returning the response body).
//   - Handle transient failures with exponential backoff.
//   - Respect context cancellation during requests and backoff waits.
//   - Be easy to test by injecting a custom http.Client.
package httpds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config configures the HTTP data source.
//
// Zero values are given sensible defaults:
//   - Timeout:        30s
//   - MaxRetries:     3
//   - InitialBackoff: 200ms
type Config struct {
	// Timeout is the per-request timeout applied at the http.Client level.
	Timeout time.Duration

	// MaxRetries is the number of retry attempts after the initial request.
	// MaxRetries=0 means "no retries" (only the initial attempt).
	MaxRetries int

	// InitialBackoff is the base backoff duration for the first retry.
	// Each subsequent retry doubles the previous backoff.
	InitialBackoff time.Duration

	// Client is an optional custom http.Client. When nil, one is constructed
	// from Timeout.
	Client *http.Client
}

// URL is an HTTP(S) data source for a single resource.
type URL struct {
	url    string
	cfg    Config
	client *http.Client
}

// NewURL returns a data source that fetches url on Open.
func NewURL(url string, cfg Config) *URL {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialBackoff == 0 {
		cfg.InitialBackoff = 200 * time.Millisecond
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &URL{url: url, cfg: cfg, client: client}
}

// Open issues a GET for the configured URL and returns the response body.
// Non-2xx responses and transport errors are retried with exponential
// backoff; 4xx responses are terminal since retrying cannot help.
func (u *URL) Open(ctx context.Context) (io.ReadCloser, error) {
	backoff := u.cfg.InitialBackoff
	var lastErr error

	for attempt := 0; attempt <= u.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request for %s: %w", u.url, err)
		}
		resp, err := u.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp.Body, nil
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: %s", u.url, resp.Status)
		default:
			resp.Body.Close()
			lastErr = fmt.Errorf("fetch %s: %s", u.url, resp.Status)
		}
	}
	return nil, fmt.Errorf("fetch %s after %d attempts: %w", u.url, u.cfg.MaxRetries+1, lastErr)
}
