package localmind

import (
	"context"
	"strings"
	"time"
)

// Search limits.
const (
	DefaultMaxResults = 10
	MaxMaxResults     = 100
)

// Search types reported in QueryAnalysis.
const (
	SearchTypeSemantic = "semantic"
	SearchTypeKeyword  = "keyword"
)

// SearchRequest describes a query against the knowledge base.
type SearchRequest struct {
	Query      string         `json:"query"`
	IncludeWeb bool           `json:"include_web"`
	MaxResults int            `json:"max_results"`
	Filters    map[string]any `json:"filters,omitempty"`
}

// Normalize applies defaults and bounds to the request.
func (r *SearchRequest) Normalize() {
	r.Query = strings.TrimSpace(r.Query)
	if r.MaxResults <= 0 {
		r.MaxResults = DefaultMaxResults
	}
	if r.MaxResults > MaxMaxResults {
		r.MaxResults = MaxMaxResults
	}
}

// Validate returns an error if the request cannot be executed.
func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return Errorf(EINVALID, "search query required")
	}
	return nil
}

// SearchResult is a ranked match. Web results carry Source and URL and
// have no stored document behind them.
type SearchResult struct {
	ID       string         `json:"id,omitempty"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Type     DocumentType   `json:"type"`
	Metadata map[string]any `json:"metadata,omitempty"`
	AddedAt  *time.Time     `json:"added_at,omitempty"`
	Score    float64        `json:"score"`
	Source   string         `json:"source,omitempty"`
	URL      string         `json:"url,omitempty"`
}

// QueryAnalysis describes how a query was interpreted.
type QueryAnalysis struct {
	OriginalQuery string   `json:"original_query"`
	Terms         []string `json:"terms"`
	SearchType    string   `json:"search_type"`
}

// SearchResponse is returned by SearchService.
type SearchResponse struct {
	Results       []SearchResult `json:"results"`
	Total         int            `json:"total"`
	QueryAnalysis QueryAnalysis  `json:"query_analysis"`
}

// SearchService ranks stored documents against a query.
type SearchService interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// IndexHit is a document reference scored by an Index.
type IndexHit struct {
	DocumentID string
	Score      float64
}

// Index is an in-memory relevance index over document contents.
type Index interface {
	// Rebuild replaces the indexed corpus with docs.
	Rebuild(docs []*Document)

	// Search returns at most n hits with a positive score, best first.
	Search(query string, n int) []IndexHit

	// VocabularySize returns the number of distinct indexed terms.
	VocabularySize() int

	// Len returns the number of indexed documents.
	Len() int
}

// WebSearcher supplies results from outside the local knowledge base.
type WebSearcher interface {
	SearchWeb(ctx context.Context, query string) ([]SearchResult, error)
}

// SearchEvent is a recorded query.
type SearchEvent struct {
	ID        string    `json:"-"`
	Query     string    `json:"query"`
	Results   int       `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}

// SearchLog records search history.
type SearchLog interface {
	// RecordSearch stores an event. ID and Timestamp are set when empty.
	RecordSearch(ctx context.Context, event *SearchEvent) error

	// RecentSearches returns at most n events, newest first.
	RecentSearches(ctx context.Context, n int) ([]*SearchEvent, error)

	// CountSearches returns the total number of recorded searches.
	CountSearches(ctx context.Context) (int, error)
}

// QueryTerms splits a query the way it is reported in QueryAnalysis.
func QueryTerms(query string) []string {
	terms := strings.Fields(strings.ToLower(query))
	if terms == nil {
		return []string{}
	}
	return terms
}
