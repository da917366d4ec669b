// Package httpsrc downloads dictionary text over HTTP.
package httpsrc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/hanzi-reader/internal/adapter/source"
)

const defaultTimeout = 60 * time.Second

// Source fetches a dictionary file from a URL. Gzipped payloads (".gz" path
// or a gzip content type) are decompressed.
type Source struct {
	url        string
	httpClient *http.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// New creates a Source for rawURL. A zero timeout uses the default of 60s.
func New(rawURL string, timeout time.Duration, logger *slog.Logger) *Source {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Source{
		url:        rawURL,
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: 500 * time.Millisecond,
		log:        logger.With("adapter", "httpsrc"),
	}
}

// Open issues the GET request and returns the response body.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("httpsrc: create request: %w", err)
	}

	s.log.DebugContext(ctx, "dictionary download", slog.String("url", s.url))

	resp, err := s.doWithRetry(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("httpsrc: request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("httpsrc: unexpected status %d", resp.StatusCode)
	}

	if s.isGzip(resp) {
		return source.Gunzip(resp.Body)
	}
	return resp.Body, nil
}

// String returns the source URL.
func (s *Source) String() string { return s.url }

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (s *Source) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := s.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, ctx.Err()
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	s.log.WarnContext(ctx, "dictionary download retry", slog.String("url", s.url), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.retryDelay):
	}

	return s.httpClient.Do(req)
}

func (s *Source) isGzip(resp *http.Response) bool {
	if u, err := url.Parse(s.url); err == nil && strings.HasSuffix(u.Path, ".gz") {
		return true
	}
	mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/gzip" || mt == "application/x-gzip"
}
