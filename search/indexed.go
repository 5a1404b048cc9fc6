package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/localmind"
)

var _ localmind.DocumentService = (*IndexedDocuments)(nil)

// IndexedDocuments wraps a DocumentService and rebuilds an Index from the
// store after every successful write, so search always reflects stored
// documents.
type IndexedDocuments struct {
	localmind.DocumentService

	index localmind.Index

	// Serializes refreshes so a slow rebuild cannot overwrite a newer one.
	mu sync.Mutex
}

// NewIndexedDocuments returns the decorator. Call Refresh once at startup to
// index documents that are already stored.
func NewIndexedDocuments(next localmind.DocumentService, index localmind.Index) *IndexedDocuments {
	return &IndexedDocuments{DocumentService: next, index: index}
}

// CreateDocument stores doc and reindexes.
func (d *IndexedDocuments) CreateDocument(ctx context.Context, doc *localmind.Document) error {
	if err := d.DocumentService.CreateDocument(ctx, doc); err != nil {
		return err
	}
	return d.Refresh(ctx)
}

// DeleteDocument removes a document and reindexes.
func (d *IndexedDocuments) DeleteDocument(ctx context.Context, id string) error {
	if err := d.DocumentService.DeleteDocument(ctx, id); err != nil {
		return err
	}
	return d.Refresh(ctx)
}

// Refresh rebuilds the index from every stored document.
func (d *IndexedDocuments) Refresh(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	docs, err := d.DocumentService.FindDocuments(ctx, localmind.DocumentFilter{})
	if err != nil {
		return fmt.Errorf("reindex: %w", err)
	}

	// Oldest first keeps tie order stable as documents are added.
	for i, j := 0, len(docs)-1; i < j; i, j = i+1, j-1 {
		docs[i], docs[j] = docs[j], docs[i]
	}

	d.index.Rebuild(docs)
	return nil
}
