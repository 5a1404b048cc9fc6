package mock

import (
	"context"

	"github.com/fwojciec/localmind"
)

var (
	_ localmind.Processor = (*Processor)(nil)
	_ localmind.Uploader  = (*Uploader)(nil)
	_ localmind.Importer  = (*Importer)(nil)
)

// Processor is a mock implementation of localmind.Processor.
type Processor struct {
	ProcessFn func(filename string, data []byte) (*localmind.Document, error)
}

func (p *Processor) Process(filename string, data []byte) (*localmind.Document, error) {
	return p.ProcessFn(filename, data)
}

// Uploader is a mock implementation of localmind.Uploader.
type Uploader struct {
	UploadFn     func(ctx context.Context, file localmind.File) (*localmind.Document, error)
	BulkUploadFn func(ctx context.Context, files []localmind.File) (*localmind.BulkResult, error)
	StoreFn      func(ctx context.Context, doc *localmind.Document) error
}

func (u *Uploader) Upload(ctx context.Context, file localmind.File) (*localmind.Document, error) {
	return u.UploadFn(ctx, file)
}

func (u *Uploader) BulkUpload(ctx context.Context, files []localmind.File) (*localmind.BulkResult, error) {
	return u.BulkUploadFn(ctx, files)
}

func (u *Uploader) Store(ctx context.Context, doc *localmind.Document) error {
	return u.StoreFn(ctx, doc)
}

// Importer is a mock implementation of localmind.Importer.
type Importer struct {
	ImportFn func(ctx context.Context, url string) (*localmind.Document, error)
}

func (i *Importer) Import(ctx context.Context, url string) (*localmind.Document, error) {
	return i.ImportFn(ctx, url)
}
