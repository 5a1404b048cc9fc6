package search

import (
	"context"
	"fmt"

	"github.com/fwojciec/localmind"
)

var _ localmind.WebSearcher = (*SimulatedWeb)(nil)

// SimulatedWeb stands in for a web search backend. It returns one canned
// result built from the query.
type SimulatedWeb struct{}

// SearchWeb returns the canned result for query.
func (SimulatedWeb) SearchWeb(_ context.Context, query string) ([]localmind.SearchResult, error) {
	return []localmind.SearchResult{{
		Title:   fmt.Sprintf("Web: %s - Building Standards", query),
		Content: fmt.Sprintf("Latest building codes and standards for %s...", query),
		Type:    "web",
		Source:  "web",
		URL:     "https://example.com/standards",
		Score:   0.8,
	}}, nil
}
