package mock

import (
	"context"

	"github.com/fwojciec/localmind"
)

var (
	_ localmind.Fetcher        = (*Fetcher)(nil)
	_ localmind.DomainLimiter  = (*DomainLimiter)(nil)
	_ localmind.Extractor      = (*Extractor)(nil)
	_ localmind.Converter      = (*Converter)(nil)
	_ localmind.MetadataReader = (*MetadataReader)(nil)
)

// Fetcher is a mock implementation of localmind.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

// DomainLimiter is a mock implementation of localmind.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}

// Extractor is a mock implementation of localmind.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*localmind.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*localmind.ExtractResult, error) {
	return e.ExtractFn(html)
}

// Converter is a mock implementation of localmind.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// MetadataReader is a mock implementation of localmind.MetadataReader.
type MetadataReader struct {
	ReadMetadataFn func(html string) (*localmind.PageMetadata, error)
}

func (m *MetadataReader) ReadMetadata(html string) (*localmind.PageMetadata, error) {
	return m.ReadMetadataFn(html)
}
