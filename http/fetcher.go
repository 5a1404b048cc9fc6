package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/localmind"
)

// DefaultFetchTimeout is the default timeout for page imports.
const DefaultFetchTimeout = 10 * time.Second

// UserAgent identifies page imports to remote servers.
const UserAgent = "LocalMind/" + localmind.Version

var _ localmind.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages for URL import. It does not execute JavaScript.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBytes caps how much of a response body is read. Larger pages fail
// with ETOOLARGE. Defaults to localmind.MaxFileSize.
func WithMaxBytes(n int64) FetcherOption {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxBytes: localmind.MaxFileSize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at url. Client errors (4xx) and non-HTML
// responses are returned as application errors; server errors are not, so
// callers may retry them.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", localmind.Errorf(localmind.EINVALID, "Fetching %s failed: HTTP %d", url, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mediaType, _, _ := mime.ParseMediaType(ct)
		if mediaType != "text/html" && mediaType != "application/xhtml+xml" && !strings.HasPrefix(mediaType, "text/") {
			return "", localmind.Errorf(localmind.EUNSUPPORTED, "Unsupported content type %q", mediaType)
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > f.maxBytes {
		return "", localmind.Errorf(localmind.ETOOLARGE, "Page too large (max %dMB)", f.maxBytes/(1024*1024))
	}

	return string(body), nil
}

// Close is a no-op; http.Client needs no cleanup.
func (f *Fetcher) Close() error {
	return nil
}
