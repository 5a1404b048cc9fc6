package ingest_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/localmind"
	"github.com/fwojciec/localmind/ingest"
	"github.com/fwojciec/localmind/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHTMLProcessor(extractors ...localmind.Extractor) *ingest.HTMLProcessor {
	return &ingest.HTMLProcessor{
		Extractors: extractors,
		Converter: &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "MD(" + html + ")", nil
			},
		},
		Metadata: &mock.MetadataReader{
			ReadMetadataFn: func(string) (*localmind.PageMetadata, error) {
				return &localmind.PageMetadata{
					Title:       "Head Title",
					Description: "Head description",
					Language:    "en",
					Text:        "visible text",
				}, nil
			},
		},
	}
}

func extractor(result *localmind.ExtractResult, err error) *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(string) (*localmind.ExtractResult, error) {
			return result, err
		},
	}
}

func TestHTMLProcessor_Process(t *testing.T) {
	t.Parallel()

	t.Run("converts extracted content", func(t *testing.T) {
		t.Parallel()

		p := newHTMLProcessor(extractor(&localmind.ExtractResult{Title: "Article", ContentHTML: "<p>body</p>"}, nil))

		doc, err := p.Process("page.html", []byte("<html></html>"))
		require.NoError(t, err)

		assert.Equal(t, "Article", doc.Title)
		assert.Equal(t, "MD(<p>body</p>)", doc.Content)
		assert.Equal(t, localmind.DocumentTypeHTML, doc.Type)
		assert.Equal(t, "Head description", doc.Metadata["description"])
		assert.Equal(t, "en", doc.Metadata["language"])
		assert.NotContains(t, doc.Metadata, "generator")
	})

	t.Run("falls through failing and empty extractors", func(t *testing.T) {
		t.Parallel()

		p := newHTMLProcessor(
			extractor(nil, errors.New("boom")),
			extractor(&localmind.ExtractResult{ContentHTML: "  "}, nil),
			extractor(&localmind.ExtractResult{ContentHTML: "<p>second</p>", Description: "Extracted"}, nil),
		)

		doc, err := p.Process("page.html", []byte("<html></html>"))
		require.NoError(t, err)

		assert.Equal(t, "MD(<p>second</p>)", doc.Content)
		assert.Equal(t, "Head Title", doc.Title)
		assert.Equal(t, "Extracted", doc.Metadata["description"])
	})

	t.Run("uses visible text when nothing is extracted", func(t *testing.T) {
		t.Parallel()

		p := newHTMLProcessor()

		doc, err := p.Process("page.html", []byte("<html></html>"))
		require.NoError(t, err)
		assert.Equal(t, "visible text", doc.Content)
	})

	t.Run("title falls back to filename", func(t *testing.T) {
		t.Parallel()

		p := newHTMLProcessor()
		p.Metadata = &mock.MetadataReader{
			ReadMetadataFn: func(string) (*localmind.PageMetadata, error) {
				return &localmind.PageMetadata{Text: "words"}, nil
			},
		}

		doc, err := p.Process("untitled.html", []byte("<p>words</p>"))
		require.NoError(t, err)
		assert.Equal(t, "untitled.html", doc.Title)
	})

	t.Run("rejects pages without text", func(t *testing.T) {
		t.Parallel()

		p := newHTMLProcessor()
		p.Metadata = &mock.MetadataReader{
			ReadMetadataFn: func(string) (*localmind.PageMetadata, error) {
				return &localmind.PageMetadata{}, nil
			},
		}

		_, err := p.Process("empty.html", []byte("<html></html>"))
		assert.Equal(t, localmind.EINVALID, localmind.ErrorCode(err))
	})
}
