package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/localmind"
	"github.com/fwojciec/localmind/xxhash"
)

// Compile-time interface verification.
var _ localmind.DocumentService = (*DocumentService)(nil)

// DocumentService implements localmind.DocumentService using SQLite.
type DocumentService struct {
	db *DB

	// Now returns the current time. Overridable in tests.
	Now func() time.Time
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db, Now: time.Now}
}

const documentColumns = "id, title, content, type, metadata, content_hash, added_at"

// CreateDocument creates a new document.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *localmind.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if doc.AddedAt.IsZero() {
		doc.AddedAt = s.Now().UTC()
	}
	if doc.ID == "" {
		doc.ID = xxhash.GenerateID(doc.Title, doc.AddedAt)
	}
	if doc.Type == "" {
		doc.Type = localmind.DocumentTypeText
	}
	if doc.Metadata == nil {
		doc.Metadata = map[string]any{}
	}
	doc.ContentHash = xxhash.HashContent(doc.Content)

	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM documents WHERE id = ?)", doc.ID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return localmind.Errorf(localmind.ECONFLICT, "document %q already exists", doc.ID)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, title, content, type, metadata, content_hash, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Title, doc.Content, string(doc.Type), string(metadata), doc.ContentHash, formatTime(doc.AddedAt))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*localmind.Document, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+documentColumns+" FROM documents WHERE id = ?", id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, localmind.Errorf(localmind.ENOTFOUND, "Document not found")
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter, newest first.
func (s *DocumentService) FindDocuments(ctx context.Context, filter localmind.DocumentFilter) ([]*localmind.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents")
	writeDocumentFilter(&query, &args, filter)
	query.WriteString(" ORDER BY added_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []*localmind.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// CountDocuments returns the number of documents matching the filter.
func (s *DocumentService) CountDocuments(ctx context.Context, filter localmind.DocumentFilter) (int, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT COUNT(*) FROM documents")
	writeDocumentFilter(&query, &args, filter)

	var n int
	if err := s.db.QueryRowContext(ctx, query.String(), args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return localmind.Errorf(localmind.ENOTFOUND, "Document not found")
	}

	return nil
}

// StorageStats reports the number of documents and their content size in bytes.
func (s *DocumentService) StorageStats(ctx context.Context) (localmind.StorageStats, error) {
	var stats localmind.StorageStats
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(LENGTH(CAST(content AS BLOB))), 0) FROM documents",
	).Scan(&stats.Documents, &stats.ContentBytes)
	return stats, err
}

func writeDocumentFilter(query *strings.Builder, args *[]any, filter localmind.DocumentFilter) {
	query.WriteString(" WHERE 1=1")
	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		*args = append(*args, *filter.ID)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		*args = append(*args, *filter.ContentHash)
	}
	if filter.Type != nil {
		query.WriteString(" AND type = ?")
		*args = append(*args, string(*filter.Type))
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*localmind.Document, error) {
	var doc localmind.Document
	var docType, metadata, addedAt string

	if err := row.Scan(&doc.ID, &doc.Title, &doc.Content, &docType, &metadata, &doc.ContentHash, &addedAt); err != nil {
		return nil, err
	}

	doc.Type = localmind.DocumentType(docType)
	if err := json.Unmarshal([]byte(metadata), &doc.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata for %q: %w", doc.ID, err)
	}
	if doc.Metadata == nil {
		doc.Metadata = map[string]any{}
	}

	var err error
	doc.AddedAt, err = parseTime(addedAt, "added_at")
	if err != nil {
		return nil, err
	}

	return &doc, nil
}
