package localmind

import (
	"context"
	"strings"
	"time"
)

// DocumentType identifies how a document's content was produced.
type DocumentType string

// DocumentType constants.
const (
	DocumentTypeText     DocumentType = "text"
	DocumentTypeJSON     DocumentType = "json"
	DocumentTypeMarkdown DocumentType = "markdown"
	DocumentTypeYAML     DocumentType = "yaml"
	DocumentTypeXML      DocumentType = "xml"
	DocumentTypeHTML     DocumentType = "html"
)

// Document represents an indexed piece of user knowledge.
type Document struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Type        DocumentType   `json:"type"`
	Metadata    map[string]any `json:"metadata"`
	ContentHash string         `json:"content_hash"`
	AddedAt     time.Time      `json:"added_at"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return Errorf(EINVALID, "document title required")
	}
	if strings.TrimSpace(d.Content) == "" {
		return Errorf(EINVALID, "document content required")
	}
	return nil
}

// DocumentService represents a service for managing documents.
type DocumentService interface {
	// CreateDocument stores a new document. An ID is generated when empty.
	// Returns ECONFLICT if a document with the same ID already exists.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter, newest first.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// CountDocuments returns the number of documents matching the filter.
	// Offset and Limit are ignored.
	CountDocuments(ctx context.Context, filter DocumentFilter) (int, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error

	// StorageStats reports how much content is stored.
	StorageStats(ctx context.Context) (StorageStats, error)
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID          *string       `json:"id"`
	ContentHash *string       `json:"content_hash"`
	Type        *DocumentType `json:"type"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// StorageStats summarizes stored documents.
type StorageStats struct {
	Documents    int `json:"documents"`
	ContentBytes int `json:"content_bytes"`
}
