// Package crawl imports web pages into the knowledge base. Pages are fetched
// with retry and per-domain rate limiting, then processed like uploaded HTML.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/fwojciec/localmind"
)

var _ localmind.Importer = (*Importer)(nil)

// Importer fetches a page and stores its readable content.
type Importer struct {
	Fetcher     localmind.Fetcher
	Processor   localmind.Processor
	Uploader    localmind.Uploader
	RateLimiter localmind.DomainLimiter
	Policy      localmind.UploadPolicy
	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// Import fetches rawURL and stores it as an HTML document.
func (i *Importer) Import(ctx context.Context, rawURL string) (*localmind.Document, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, localmind.Errorf(localmind.EINVALID, "Invalid URL %q: must be an absolute http(s) URL", rawURL)
	}

	if i.RateLimiter != nil {
		if err := i.RateLimiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, err
		}
	}

	body, err := FetchWithRetry(ctx, u.String(), i.Fetcher.Fetch, i.Logger, i.RetryDelays)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}

	if limit := i.Policy.MaxFileSize; limit > 0 && len(body) > limit {
		return nil, localmind.Errorf(localmind.ETOOLARGE, "Page too large (max %dMB)", limit/(1024*1024))
	}

	doc, err := i.Processor.Process(PageFilename(u), []byte(body))
	if err != nil {
		return nil, err
	}
	if doc.Metadata == nil {
		doc.Metadata = map[string]any{}
	}
	doc.Metadata["source_url"] = u.String()
	if doc.Title == PageFilename(u) {
		doc.Title = u.String()
	}

	if err := i.Uploader.Store(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// PageFilename derives a filename for a page URL, e.g.
// https://example.com/docs/intro → intro.html.
func PageFilename(u *url.URL) string {
	base := path.Base(strings.TrimSuffix(u.Path, "/"))
	if base == "." || base == "/" || base == "" {
		base = u.Hostname()
	}
	if ext := path.Ext(base); ext != ".html" && ext != ".htm" {
		base += ".html"
	}
	return base
}
