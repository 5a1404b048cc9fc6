package mock

import (
	"context"

	"github.com/fwojciec/localmind"
)

var (
	_ localmind.SearchService = (*SearchService)(nil)
	_ localmind.SearchLog     = (*SearchLog)(nil)
	_ localmind.Index         = (*Index)(nil)
	_ localmind.WebSearcher   = (*WebSearcher)(nil)
	_ localmind.StatsService  = (*StatsService)(nil)
)

// SearchService is a mock implementation of localmind.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, req localmind.SearchRequest) (*localmind.SearchResponse, error)
}

func (s *SearchService) Search(ctx context.Context, req localmind.SearchRequest) (*localmind.SearchResponse, error) {
	return s.SearchFn(ctx, req)
}

// SearchLog is a mock implementation of localmind.SearchLog.
type SearchLog struct {
	RecordSearchFn   func(ctx context.Context, event *localmind.SearchEvent) error
	RecentSearchesFn func(ctx context.Context, n int) ([]*localmind.SearchEvent, error)
	CountSearchesFn  func(ctx context.Context) (int, error)
}

func (l *SearchLog) RecordSearch(ctx context.Context, event *localmind.SearchEvent) error {
	return l.RecordSearchFn(ctx, event)
}

func (l *SearchLog) RecentSearches(ctx context.Context, n int) ([]*localmind.SearchEvent, error) {
	return l.RecentSearchesFn(ctx, n)
}

func (l *SearchLog) CountSearches(ctx context.Context) (int, error) {
	return l.CountSearchesFn(ctx)
}

// Index is a mock implementation of localmind.Index.
type Index struct {
	RebuildFn        func(docs []*localmind.Document)
	SearchFn         func(query string, n int) []localmind.IndexHit
	VocabularySizeFn func() int
	LenFn            func() int
}

func (i *Index) Rebuild(docs []*localmind.Document) {
	i.RebuildFn(docs)
}

func (i *Index) Search(query string, n int) []localmind.IndexHit {
	return i.SearchFn(query, n)
}

func (i *Index) VocabularySize() int {
	return i.VocabularySizeFn()
}

func (i *Index) Len() int {
	return i.LenFn()
}

// WebSearcher is a mock implementation of localmind.WebSearcher.
type WebSearcher struct {
	SearchWebFn func(ctx context.Context, query string) ([]localmind.SearchResult, error)
}

func (w *WebSearcher) SearchWeb(ctx context.Context, query string) ([]localmind.SearchResult, error) {
	return w.SearchWebFn(ctx, query)
}

// StatsService is a mock implementation of localmind.StatsService.
type StatsService struct {
	StatsFn func(ctx context.Context) (*localmind.Stats, error)
}

func (s *StatsService) Stats(ctx context.Context) (*localmind.Stats, error) {
	return s.StatsFn(ctx)
}
