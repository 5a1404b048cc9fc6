package mock

import (
	"context"

	"github.com/fwojciec/localmind"
)

var _ localmind.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of localmind.DocumentService.
type DocumentService struct {
	CreateDocumentFn   func(ctx context.Context, doc *localmind.Document) error
	FindDocumentByIDFn func(ctx context.Context, id string) (*localmind.Document, error)
	FindDocumentsFn    func(ctx context.Context, filter localmind.DocumentFilter) ([]*localmind.Document, error)
	CountDocumentsFn   func(ctx context.Context, filter localmind.DocumentFilter) (int, error)
	DeleteDocumentFn   func(ctx context.Context, id string) error
	StorageStatsFn     func(ctx context.Context) (localmind.StorageStats, error)
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *localmind.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*localmind.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter localmind.DocumentFilter) ([]*localmind.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) CountDocuments(ctx context.Context, filter localmind.DocumentFilter) (int, error) {
	return s.CountDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

func (s *DocumentService) StorageStats(ctx context.Context) (localmind.StorageStats, error) {
	return s.StorageStatsFn(ctx)
}
