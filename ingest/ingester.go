package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sync"
	"time"

	"github.com/fwojciec/localmind"
	"github.com/fwojciec/localmind/xxhash"
	"golang.org/x/sync/errgroup"
)

var _ localmind.Uploader = (*Ingester)(nil)

// DefaultConcurrency is the number of files processed at once in a bulk upload.
const DefaultConcurrency = 4

// HashSet is a probabilistic set of content hashes. MaybeContains may report
// false positives but never false negatives.
type HashSet interface {
	Add(hash string)
	MaybeContains(hash string) bool

	// Reset replaces the contents of the set with hashes.
	Reset(hashes []string)
}

// Ingester implements localmind.Uploader.
type Ingester struct {
	Documents localmind.DocumentService
	Processor localmind.Processor
	Policy    localmind.UploadPolicy

	// Seen lets Store skip the duplicate lookup for content that was never
	// stored. Optional.
	Seen HashSet

	Concurrency int

	// Now returns the current time. Overridable in tests.
	Now func() time.Time

	// Serializes duplicate checks with inserts.
	mu sync.Mutex
}

// NewIngester returns an Ingester with the default upload policy.
func NewIngester(docs localmind.DocumentService, processor localmind.Processor) *Ingester {
	return &Ingester{
		Documents:   docs,
		Processor:   processor,
		Policy:      localmind.DefaultUploadPolicy(),
		Concurrency: DefaultConcurrency,
		Now:         time.Now,
	}
}

// Warm rebuilds Seen from the hashes of all stored documents. It must run
// after deletions since a Bloom filter cannot remove entries.
func (i *Ingester) Warm(ctx context.Context) error {
	if i.Seen == nil {
		return nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	docs, err := i.Documents.FindDocuments(ctx, localmind.DocumentFilter{})
	if err != nil {
		return err
	}
	hashes := make([]string, 0, len(docs))
	for _, doc := range docs {
		hashes = append(hashes, doc.ContentHash)
	}
	i.Seen.Reset(hashes)
	return nil
}

// Upload validates, processes and stores a single file.
func (i *Ingester) Upload(ctx context.Context, file localmind.File) (*localmind.Document, error) {
	doc, err := i.process(file)
	if err != nil {
		return nil, err
	}
	if err := i.Store(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (i *Ingester) process(file localmind.File) (*localmind.Document, error) {
	if err := i.Policy.CheckFile(file.Name, len(file.Data)); err != nil {
		return nil, err
	}

	doc, err := i.Processor.Process(file.Name, file.Data)
	if err != nil {
		return nil, err
	}
	if doc.ID == "" {
		doc.ID = xxhash.GenerateID(file.Name, i.Now())
	}
	return doc, nil
}

// Store saves doc unless a document with identical content exists, in
// which case it returns ECONFLICT.
func (i *Ingester) Store(ctx context.Context, doc *localmind.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	hash := xxhash.HashContent(doc.Content)

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.Seen == nil || i.Seen.MaybeContains(hash) {
		existing, err := i.Documents.FindDocuments(ctx, localmind.DocumentFilter{ContentHash: &hash, Limit: 1})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return localmind.Errorf(localmind.ECONFLICT, "Duplicate content: already stored as %s (%s)", existing[0].Title, existing[0].ID)
		}
	}

	if err := i.Documents.CreateDocument(ctx, doc); err != nil {
		return err
	}
	if i.Seen != nil {
		i.Seen.Add(hash)
	}
	return nil
}

// BulkUpload processes files concurrently and stores them in request order.
// Per-file problems are reported in the result.
func (i *Ingester) BulkUpload(ctx context.Context, files []localmind.File) (*localmind.BulkResult, error) {
	if err := i.Policy.CheckBatch(len(files)); err != nil {
		return nil, err
	}

	type outcome struct {
		doc *localmind.Document
		err error
	}
	outcomes := make([]outcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(i.Concurrency, 1))
	for idx, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := i.process(file)
			outcomes[idx] = outcome{doc: doc, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &localmind.BulkResult{}
	for idx, file := range files {
		o := outcomes[idx]
		if file.Name == "" {
			result.Failed = append(result.Failed, localmind.UploadFailure{
				Filename: "unknown",
				Status:   "error",
				Error:    "No filename provided",
			})
			continue
		}

		err := o.err
		if err == nil {
			err = i.Store(ctx, o.doc)
		}
		if err != nil {
			result.Failed = append(result.Failed, localmind.UploadFailure{
				Filename: file.Name,
				Status:   "error",
				Error:    localmind.ErrorMessage(err),
			})
			continue
		}

		result.Successful = append(result.Successful, localmind.UploadSuccess{
			Filename: file.Name,
			Status:   "success",
			DocID:    o.doc.ID,
			SizeKB:   math.Round(float64(len(file.Data))/1024*100) / 100,
		})
	}

	result.Summarize()
	return result, nil
}

// Seed stores docs that are not already present, keeping their IDs.
// It returns the number of documents added.
func (i *Ingester) Seed(ctx context.Context, docs []*localmind.Document) (int, error) {
	added := 0
	for _, doc := range docs {
		_, err := i.Documents.FindDocumentByID(ctx, doc.ID)
		if err == nil {
			continue
		} else if localmind.ErrorCode(err) != localmind.ENOTFOUND {
			return added, err
		}

		if err := i.Store(ctx, doc); localmind.ErrorCode(err) == localmind.ECONFLICT {
			continue
		} else if err != nil {
			return added, fmt.Errorf("seed %s: %w", doc.ID, err)
		}
		added++
	}
	return added, nil
}

// ImportDir ingests every supported file in dir. Subdirectories are not
// descended into.
func (i *Ingester) ImportDir(ctx context.Context, dir string) (*localmind.BulkResult, error) {
	return i.ImportFS(ctx, os.DirFS(dir))
}

// ImportFS ingests every supported file at the root of fsys. Files whose
// content is already stored are skipped and appear in neither list.
func (i *Ingester) ImportFS(ctx context.Context, fsys fs.FS) (*localmind.BulkResult, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	result := &localmind.BulkResult{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.Type().IsRegular() || !i.Policy.Allowed(entry.Name()) {
			continue
		}

		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, err
		}

		doc, err := i.Upload(ctx, localmind.File{Name: entry.Name(), Data: data})
		var lmErr *localmind.Error
		switch {
		case err == nil:
			result.Successful = append(result.Successful, localmind.UploadSuccess{
				Filename: entry.Name(),
				Status:   "success",
				DocID:    doc.ID,
				SizeKB:   math.Round(float64(len(data))/1024*100) / 100,
			})
		case localmind.ErrorCode(err) == localmind.ECONFLICT:
		case errors.As(err, &lmErr):
			result.Failed = append(result.Failed, localmind.UploadFailure{
				Filename: entry.Name(),
				Status:   "error",
				Error:    lmErr.Message,
			})
		default:
			return nil, err
		}
	}

	result.Summarize()
	return result, nil
}
