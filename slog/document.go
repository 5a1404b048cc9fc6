// Package slog wraps domain services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/localmind"
)

var _ localmind.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService logs writes at info level and reads at debug level.
type LoggingDocumentService struct {
	next   localmind.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next localmind.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

func (s *LoggingDocumentService) CreateDocument(ctx context.Context, doc *localmind.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create document",
			"id", doc.ID,
			"title", doc.Title,
			"type", doc.Type,
			"bytes", len(doc.Content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateDocument(ctx, doc)
}

func (s *LoggingDocumentService) FindDocumentByID(ctx context.Context, id string) (doc *localmind.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find document",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocumentByID(ctx, id)
}

func (s *LoggingDocumentService) FindDocuments(ctx context.Context, filter localmind.DocumentFilter) (docs []*localmind.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find documents",
			"offset", filter.Offset,
			"limit", filter.Limit,
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocuments(ctx, filter)
}

func (s *LoggingDocumentService) CountDocuments(ctx context.Context, filter localmind.DocumentFilter) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("count documents",
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CountDocuments(ctx, filter)
}

func (s *LoggingDocumentService) DeleteDocument(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete document",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteDocument(ctx, id)
}

func (s *LoggingDocumentService) StorageStats(ctx context.Context) (stats localmind.StorageStats, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("storage stats",
			"documents", stats.Documents,
			"bytes", stats.ContentBytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.StorageStats(ctx)
}
