// Package search answers queries against the knowledge base by combining the
// relevance index, the document store and the search history.
package search

import (
	"context"
	"fmt"
	"slices"

	"github.com/fwojciec/localmind"
)

var _ localmind.SearchService = (*Service)(nil)

// Service implements localmind.SearchService.
type Service struct {
	Documents localmind.DocumentService
	Index     localmind.Index
	Log       localmind.SearchLog

	// Web supplies results when a request sets IncludeWeb. Optional.
	Web localmind.WebSearcher
}

// Search ranks stored documents against req.Query. Queries against an empty
// index return no results and are not recorded in the history.
func (s *Service) Search(ctx context.Context, req localmind.SearchRequest) (*localmind.SearchResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp := &localmind.SearchResponse{
		Results: []localmind.SearchResult{},
		QueryAnalysis: localmind.QueryAnalysis{
			OriginalQuery: req.Query,
			Terms:         localmind.QueryTerms(req.Query),
			SearchType:    localmind.SearchTypeKeyword,
		},
	}

	if s.Index.Len() > 0 {
		resp.QueryAnalysis.SearchType = localmind.SearchTypeSemantic

		results, err := s.searchLocal(ctx, req)
		if err != nil {
			return nil, err
		}
		resp.Results = results

		if err := s.Log.RecordSearch(ctx, &localmind.SearchEvent{Query: req.Query, Results: len(results)}); err != nil {
			return nil, fmt.Errorf("record search: %w", err)
		}
	}

	if req.IncludeWeb && s.Web != nil {
		web, err := s.Web.SearchWeb(ctx, req.Query)
		if err != nil {
			return nil, fmt.Errorf("web search: %w", err)
		}
		resp.Results = append(resp.Results, web...)
	}

	resp.Total = len(resp.Results)
	return resp, nil
}

func (s *Service) searchLocal(ctx context.Context, req localmind.SearchRequest) ([]localmind.SearchResult, error) {
	// Filters are applied after ranking, so rank the whole corpus when set.
	n := req.MaxResults
	if len(req.Filters) > 0 {
		n = s.Index.Len()
	}

	results := []localmind.SearchResult{}
	for _, hit := range s.Index.Search(req.Query, n) {
		doc, err := s.Documents.FindDocumentByID(ctx, hit.DocumentID)
		if localmind.ErrorCode(err) == localmind.ENOTFOUND {
			// Deleted between ranking and lookup.
			continue
		} else if err != nil {
			return nil, err
		}
		if !MatchFilters(doc, req.Filters) {
			continue
		}

		results = append(results, NewResult(doc, hit.Score))
		if len(results) == req.MaxResults {
			break
		}
	}
	return results, nil
}

// NewResult converts a stored document into a scored result.
func NewResult(doc *localmind.Document, score float64) localmind.SearchResult {
	addedAt := doc.AddedAt
	return localmind.SearchResult{
		ID:       doc.ID,
		Title:    doc.Title,
		Content:  doc.Content,
		Type:     doc.Type,
		Metadata: doc.Metadata,
		AddedAt:  &addedAt,
		Score:    score,
	}
}

// MatchFilters reports whether doc satisfies every filter. The "type" key
// matches the document type; other keys match metadata values. A list
// value matches if any element does.
func MatchFilters(doc *localmind.Document, filters map[string]any) bool {
	for key, want := range filters {
		var got any
		if key == "type" {
			got = string(doc.Type)
		} else {
			v, ok := doc.Metadata[key]
			if !ok {
				return false
			}
			got = v
		}
		if !matchValue(got, want) {
			return false
		}
	}
	return true
}

func matchValue(got, want any) bool {
	if list, ok := want.([]any); ok {
		return slices.ContainsFunc(list, func(w any) bool { return matchValue(got, w) })
	}
	return fmt.Sprint(got) == fmt.Sprint(want)
}
