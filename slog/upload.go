package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/localmind"
)

var _ localmind.Uploader = (*LoggingUploader)(nil)

// LoggingUploader wraps an Uploader with logging.
type LoggingUploader struct {
	next   localmind.Uploader
	logger *slog.Logger
}

// NewLoggingUploader creates a new LoggingUploader.
func NewLoggingUploader(next localmind.Uploader, logger *slog.Logger) *LoggingUploader {
	return &LoggingUploader{next: next, logger: logger}
}

func (u *LoggingUploader) Upload(ctx context.Context, file localmind.File) (doc *localmind.Document, err error) {
	defer func(begin time.Time) {
		id := ""
		if doc != nil {
			id = doc.ID
		}
		u.logger.Info("upload",
			"filename", file.Name,
			"size", localmind.FormatSize(len(file.Data)),
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return u.next.Upload(ctx, file)
}

func (u *LoggingUploader) BulkUpload(ctx context.Context, files []localmind.File) (result *localmind.BulkResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"files", len(files), "duration", time.Since(begin), "err", err}
		if result != nil {
			attrs = append(attrs, "succeeded", result.TotalProcessed, "failed", result.TotalFailed)
		}
		u.logger.Info("bulk upload", attrs...)
	}(time.Now())
	return u.next.BulkUpload(ctx, files)
}

func (u *LoggingUploader) Store(ctx context.Context, doc *localmind.Document) (err error) {
	defer func(begin time.Time) {
		u.logger.Info("store",
			"title", doc.Title,
			"id", doc.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return u.next.Store(ctx, doc)
}

var _ localmind.Importer = (*LoggingImporter)(nil)

// LoggingImporter wraps an Importer with logging.
type LoggingImporter struct {
	next   localmind.Importer
	logger *slog.Logger
}

// NewLoggingImporter creates a new LoggingImporter.
func NewLoggingImporter(next localmind.Importer, logger *slog.Logger) *LoggingImporter {
	return &LoggingImporter{next: next, logger: logger}
}

// Import delegates to the wrapped importer and logs the URL.
func (i *LoggingImporter) Import(ctx context.Context, url string) (doc *localmind.Document, err error) {
	defer func(begin time.Time) {
		id := ""
		if doc != nil {
			id = doc.ID
		}
		i.logger.Info("import",
			"url", url,
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Import(ctx, url)
}
