package ingest

import (
	"context"
	"fmt"

	"github.com/fwojciec/localmind"
)

var _ localmind.DocumentService = (*DocumentService)(nil)

// DocumentService keeps an Ingester's hash set in step with deletions made
// outside the Ingester.
type DocumentService struct {
	localmind.DocumentService
	ingester *Ingester
}

// NewDocumentService wraps next. Deletes through the returned service
// rebuild ingester.Seen.
func NewDocumentService(next localmind.DocumentService, ingester *Ingester) *DocumentService {
	return &DocumentService{DocumentService: next, ingester: ingester}
}

// DeleteDocument deletes the document and rebuilds the hash set so its
// content can be uploaded again.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	if err := s.DocumentService.DeleteDocument(ctx, id); err != nil {
		return err
	}
	if err := s.ingester.Warm(ctx); err != nil {
		return fmt.Errorf("failed to rebuild content hashes: %w", err)
	}
	return nil
}
