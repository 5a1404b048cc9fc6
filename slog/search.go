package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/localmind"
)

var _ localmind.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with logging.
type LoggingSearchService struct {
	next   localmind.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next localmind.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the query.
func (s *LoggingSearchService) Search(ctx context.Context, req localmind.SearchRequest) (resp *localmind.SearchResponse, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"query", req.Query,
			"include_web", req.IncludeWeb,
			"duration", time.Since(begin),
			"err", err,
		}
		if resp != nil {
			attrs = append(attrs, "results", resp.Total, "search_type", resp.QueryAnalysis.SearchType)
		}
		s.logger.Info("search", attrs...)
	}(time.Now())
	return s.next.Search(ctx, req)
}

var _ localmind.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with logging.
type LoggingAsker struct {
	next   localmind.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next localmind.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the question.
func (a *LoggingAsker) Ask(ctx context.Context, question string) (answer *localmind.Answer, err error) {
	defer func(begin time.Time) {
		sources := 0
		if answer != nil {
			sources = len(answer.Sources)
		}
		a.logger.Info("ask",
			"question", question,
			"sources", sources,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, question)
}
