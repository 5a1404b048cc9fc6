package main_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/localmind"
	main "github.com/fwojciec/localmind/cmd/localmind"
	"github.com/fwojciec/localmind/mock"
	"github.com/fwojciec/localmind/tfidf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ingester is a test double for main.Ingester.
type ingester struct {
	SeedFn      func(ctx context.Context, docs []*localmind.Document) (int, error)
	ImportDirFn func(ctx context.Context, dir string) (*localmind.BulkResult, error)
}

func (i *ingester) Seed(ctx context.Context, docs []*localmind.Document) (int, error) {
	return i.SeedFn(ctx, docs)
}

func (i *ingester) ImportDir(ctx context.Context, dir string) (*localmind.BulkResult, error) {
	return i.ImportDirFn(ctx, dir)
}

func newDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
	}
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes document when --force is set", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Documents = &mock.DocumentService{
			DeleteDocumentFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		err := (&main.DeleteCmd{ID: "abc123def456", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "abc123def456", deletedID)
		assert.Contains(t, stdout.String(), "Document abc123def456 deleted successfully")
	})

	t.Run("requires --force flag", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := newDeps(&bytes.Buffer{}, stderr)

		err := (&main.DeleteCmd{ID: "abc123def456"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("reports missing document", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := newDeps(&bytes.Buffer{}, stderr)
		deps.Documents = &mock.DocumentService{
			DeleteDocumentFn: func(context.Context, string) error {
				return localmind.Errorf(localmind.ENOTFOUND, "Document not found")
			},
		}

		err := (&main.DeleteCmd{ID: "missing", Force: true}).Run(deps)

		assert.Equal(t, localmind.ENOTFOUND, localmind.ErrorCode(err))
		assert.Contains(t, stderr.String(), "localmind list")
	})
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists documents with paging", func(t *testing.T) {
		t.Parallel()

		var got localmind.DocumentFilter
		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Documents = &mock.DocumentService{
			FindDocumentsFn: func(_ context.Context, filter localmind.DocumentFilter) ([]*localmind.Document, error) {
				got = filter
				return []*localmind.Document{
					{ID: "sample1", Title: "Construction Safety Guidelines", Type: localmind.DocumentTypeText, AddedAt: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)},
				}, nil
			},
		}

		err := (&main.ListCmd{Skip: 5, Limit: 10}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 5, got.Offset)
		assert.Equal(t, 10, got.Limit)
		assert.Contains(t, stdout.String(), "sample1")
		assert.Contains(t, stdout.String(), "2024-01-15 08:00")
		assert.Contains(t, stdout.String(), "Construction Safety Guidelines")
	})

	t.Run("empty knowledge base", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Documents = &mock.DocumentService{
			FindDocumentsFn: func(context.Context, localmind.DocumentFilter) ([]*localmind.Document, error) {
				return nil, nil
			},
		}

		require.NoError(t, (&main.ListCmd{Limit: 50}).Run(deps))
		assert.Contains(t, stdout.String(), "No documents found")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	deps := newDeps(stdout, &bytes.Buffer{})
	deps.Documents = &mock.DocumentService{
		FindDocumentByIDFn: func(_ context.Context, id string) (*localmind.Document, error) {
			return &localmind.Document{
				ID:       id,
				Title:    "Concrete Specifications",
				Content:  "Slump test for each truck",
				Type:     localmind.DocumentTypeText,
				Metadata: map[string]any{"category": "concrete", "date": "2024-02-20"},
			}, nil
		},
	}

	err := (&main.ShowCmd{ID: "sample2"}).Run(deps)

	require.NoError(t, err)
	out := stdout.String()
	assert.Contains(t, out, "Title:   Concrete Specifications")
	assert.Contains(t, out, "  category: concrete\n  date: 2024-02-20")
	assert.Contains(t, out, "Slump test for each truck")
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("builds request and prints ranked results", func(t *testing.T) {
		t.Parallel()

		var got localmind.SearchRequest
		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Search = &mock.SearchService{
			SearchFn: func(_ context.Context, req localmind.SearchRequest) (*localmind.SearchResponse, error) {
				got = req
				return &localmind.SearchResponse{
					Results: []localmind.SearchResult{
						{ID: "sample2", Title: "Concrete Specifications", Content: "Slump   test\nfor each truck", Score: 0.4567},
						{Title: "Web Result for: slump", Source: "web_search", Score: 0.8},
					},
				}, nil
			},
		}

		cmd := &main.SearchCmd{Query: []string{"slump", "test"}, Limit: 3, Web: true, Filter: map[string]string{"category": "concrete"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "slump test", got.Query)
		assert.Equal(t, 3, got.MaxResults)
		assert.True(t, got.IncludeWeb)
		assert.Equal(t, map[string]any{"category": "concrete"}, got.Filters)

		out := stdout.String()
		assert.Contains(t, out, "0.457  sample2  Concrete Specifications")
		assert.Contains(t, out, "Slump test for each truck")
		assert.Contains(t, out, "web_search")
	})

	t.Run("reports invalid query", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := newDeps(&bytes.Buffer{}, stderr)
		deps.Search = &mock.SearchService{
			SearchFn: func(context.Context, localmind.SearchRequest) (*localmind.SearchResponse, error) {
				return nil, localmind.Errorf(localmind.EINVALID, "search query required")
			},
		}

		err := (&main.SearchCmd{Query: []string{" "}}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "search query required")
	})
}

func TestAskCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires configured asker", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := newDeps(&bytes.Buffer{}, stderr)

		err := (&main.AskCmd{Question: []string{"why?"}}).Run(deps)

		assert.Equal(t, localmind.ENOTIMPLEMENTED, localmind.ErrorCode(err))
		assert.Contains(t, stderr.String(), "GEMINI_API_KEY")
	})

	t.Run("prints answer and sources", func(t *testing.T) {
		t.Parallel()

		var question string
		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Asker = &mock.Asker{
			AskFn: func(_ context.Context, q string) (*localmind.Answer, error) {
				question = q
				return &localmind.Answer{
					Text:    "Above 6 feet.",
					Sources: []localmind.SearchResult{{ID: "sample1", Title: "Construction Safety Guidelines"}},
				}, nil
			},
		}

		err := (&main.AskCmd{Question: []string{"when", "is", "fall", "protection", "required?"}}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "when is fall protection required?", question)
		assert.Contains(t, stdout.String(), "Above 6 feet.")
		assert.Contains(t, stdout.String(), "sample1  Construction Safety Guidelines")
	})
}

func TestImportCmd_Run(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	deps := newDeps(stdout, &bytes.Buffer{})
	deps.Importer = &mock.Importer{
		ImportFn: func(_ context.Context, url string) (*localmind.Document, error) {
			return &localmind.Document{ID: "abc123def456", Title: "Example Domain"}, nil
		},
	}

	require.NoError(t, (&main.ImportCmd{URL: "https://example.com"}).Run(deps))
	assert.Contains(t, stdout.String(), "Imported Example Domain (abc123def456)")
}

func TestStatsCmd_Run(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	deps := newDeps(stdout, &bytes.Buffer{})
	deps.Stats = &mock.StatsService{
		StatsFn: func(context.Context) (*localmind.Stats, error) {
			return &localmind.Stats{
				TotalDocuments: 3,
				TotalSearches:  7,
				StorageUsed:    "2.1 KB",
				ModelStatus:    "TF-IDF (Enhanced Mode)",
				RecentSearches: []*localmind.SearchEvent{{Query: "concrete", Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}},
			}, nil
		},
	}

	require.NoError(t, (&main.StatsCmd{}).Run(deps))

	out := stdout.String()
	assert.Contains(t, out, "Documents:     3")
	assert.Contains(t, out, "Searches:      7")
	assert.Contains(t, out, "Storage used:  2.1 KB")
	assert.Contains(t, out, "2024-05-01 12:00  concrete")
}

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("seeds and imports before serving", func(t *testing.T) {
		t.Parallel()

		var seeded int
		var importedDir string
		deps := newDeps(&bytes.Buffer{}, &bytes.Buffer{})
		deps.Logger = discardLogger()
		deps.Index = tfidf.NewIndex()
		deps.Policy = localmind.DefaultUploadPolicy()
		deps.Ingester = &ingester{
			SeedFn: func(_ context.Context, docs []*localmind.Document) (int, error) {
				seeded = len(docs)
				return len(docs), nil
			},
			ImportDirFn: func(_ context.Context, dir string) (*localmind.BulkResult, error) {
				importedDir = dir
				return &localmind.BulkResult{}, nil
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		deps.Ctx = ctx

		cmd := &main.ServeCmd{Addr: "127.0.0.1:0", Seed: true, ImportDir: "/srv/documents"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 3, seeded)
		assert.Equal(t, "/srv/documents", importedDir)
	})

	t.Run("seed failure stops startup", func(t *testing.T) {
		t.Parallel()

		deps := newDeps(&bytes.Buffer{}, &bytes.Buffer{})
		deps.Logger = discardLogger()
		deps.Ingester = &ingester{
			SeedFn: func(context.Context, []*localmind.Document) (int, error) {
				return 0, errors.New("disk full")
			},
		}

		err := (&main.ServeCmd{Seed: true}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
