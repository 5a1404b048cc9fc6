package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/localmind"
	"github.com/fwojciec/localmind/mock"
	"github.com/fwojciec/localmind/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexedDocuments(t *testing.T) {
	t.Parallel()

	newDocs := func(stored *[]*localmind.Document) *mock.DocumentService {
		return &mock.DocumentService{
			CreateDocumentFn: func(_ context.Context, doc *localmind.Document) error {
				*stored = append([]*localmind.Document{doc}, *stored...)
				return nil
			},
			DeleteDocumentFn: func(_ context.Context, id string) error {
				for i, doc := range *stored {
					if doc.ID == id {
						*stored = append((*stored)[:i], (*stored)[i+1:]...)
						return nil
					}
				}
				return localmind.Errorf(localmind.ENOTFOUND, "Document not found")
			},
			FindDocumentsFn: func(_ context.Context, _ localmind.DocumentFilter) ([]*localmind.Document, error) {
				return append([]*localmind.Document(nil), *stored...), nil
			},
		}
	}

	t.Run("rebuilds index oldest first after create", func(t *testing.T) {
		t.Parallel()

		var stored []*localmind.Document
		var rebuilt [][]*localmind.Document
		index := &mock.Index{
			RebuildFn: func(docs []*localmind.Document) { rebuilt = append(rebuilt, docs) },
		}
		docs := search.NewIndexedDocuments(newDocs(&stored), index)

		require.NoError(t, docs.CreateDocument(context.Background(), &localmind.Document{ID: "a"}))
		require.NoError(t, docs.CreateDocument(context.Background(), &localmind.Document{ID: "b"}))

		require.Len(t, rebuilt, 2)
		require.Len(t, rebuilt[1], 2)
		assert.Equal(t, "a", rebuilt[1][0].ID)
		assert.Equal(t, "b", rebuilt[1][1].ID)
	})

	t.Run("rebuilds index after delete", func(t *testing.T) {
		t.Parallel()

		stored := []*localmind.Document{{ID: "a"}}
		var last []*localmind.Document
		index := &mock.Index{
			RebuildFn: func(docs []*localmind.Document) { last = docs },
		}
		docs := search.NewIndexedDocuments(newDocs(&stored), index)

		require.NoError(t, docs.DeleteDocument(context.Background(), "a"))
		assert.Empty(t, last)
	})

	t.Run("does not rebuild when write fails", func(t *testing.T) {
		t.Parallel()

		called := false
		index := &mock.Index{RebuildFn: func([]*localmind.Document) { called = true }}
		docs := search.NewIndexedDocuments(&mock.DocumentService{
			CreateDocumentFn: func(context.Context, *localmind.Document) error {
				return localmind.Errorf(localmind.ECONFLICT, "exists")
			},
			DeleteDocumentFn: func(context.Context, string) error {
				return localmind.Errorf(localmind.ENOTFOUND, "Document not found")
			},
		}, index)

		err := docs.CreateDocument(context.Background(), &localmind.Document{})
		assert.Equal(t, localmind.ECONFLICT, localmind.ErrorCode(err))
		err = docs.DeleteDocument(context.Background(), "x")
		assert.Equal(t, localmind.ENOTFOUND, localmind.ErrorCode(err))
		assert.False(t, called)
	})

	t.Run("returns load error on refresh", func(t *testing.T) {
		t.Parallel()

		docs := search.NewIndexedDocuments(&mock.DocumentService{
			FindDocumentsFn: func(context.Context, localmind.DocumentFilter) ([]*localmind.Document, error) {
				return nil, errors.New("disk I/O error")
			},
		}, &mock.Index{})

		err := docs.Refresh(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk I/O error")
	})
}
