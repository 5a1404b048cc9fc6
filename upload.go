package localmind

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Upload limits.
const (
	MaxFileSize  = 5 * 1024 * 1024
	MaxBulkFiles = 10
)

// UploadPolicy decides which files may be ingested.
type UploadPolicy struct {
	MaxFileSize       int
	MaxBulkFiles      int
	AllowedExtensions []string
}

// DefaultUploadPolicy returns the policy used by the server and CLI.
func DefaultUploadPolicy() UploadPolicy {
	return UploadPolicy{
		MaxFileSize:       MaxFileSize,
		MaxBulkFiles:      MaxBulkFiles,
		AllowedExtensions: []string{".txt", ".json", ".md", ".yaml", ".yml", ".xml", ".html", ".htm"},
	}
}

// Allowed reports whether the file's extension is accepted.
func (p UploadPolicy) Allowed(filename string) bool {
	return slices.Contains(p.AllowedExtensions, Ext(filename))
}

// CheckFile validates a single file before it is processed.
func (p UploadPolicy) CheckFile(filename string, size int) error {
	if filename == "" {
		return Errorf(EINVALID, "No file selected")
	}
	if size > p.MaxFileSize {
		return Errorf(ETOOLARGE, "File too large (max %dMB)", p.MaxFileSize/(1024*1024))
	}
	if size == 0 {
		return Errorf(EINVALID, "File is empty")
	}
	if !p.Allowed(filename) {
		return Errorf(EUNSUPPORTED, "Unsupported file type. Allowed: %s", strings.Join(p.AllowedExtensions, ", "))
	}
	return nil
}

// CheckBatch validates the number of files in a bulk upload.
func (p UploadPolicy) CheckBatch(n int) error {
	if n == 0 {
		return Errorf(EINVALID, "No files provided")
	}
	if n > p.MaxBulkFiles {
		return Errorf(EINVALID, "Too many files (max %d at once)", p.MaxBulkFiles)
	}
	return nil
}

// Ext returns the lowercased extension of filename, including the dot.
func Ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// Processor converts raw file bytes into an unsaved Document.
type Processor interface {
	Process(filename string, data []byte) (*Document, error)
}

// File is an uploaded file.
type File struct {
	Name string
	Data []byte
}

// UploadSuccess describes a stored file in a bulk upload.
type UploadSuccess struct {
	Filename string  `json:"filename"`
	Status   string  `json:"status"`
	DocID    string  `json:"doc_id"`
	SizeKB   float64 `json:"size_kb"`
}

// UploadFailure describes a rejected file in a bulk upload.
type UploadFailure struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Error    string `json:"error"`
}

// BulkResult summarizes a bulk upload.
type BulkResult struct {
	Successful     []UploadSuccess `json:"successful"`
	Failed         []UploadFailure `json:"failed"`
	TotalProcessed int             `json:"total_processed"`
	TotalFailed    int             `json:"total_failed"`
	Message        string          `json:"message"`
}

// Summarize fills the totals and message from the outcome lists.
func (r *BulkResult) Summarize() {
	if r.Successful == nil {
		r.Successful = []UploadSuccess{}
	}
	if r.Failed == nil {
		r.Failed = []UploadFailure{}
	}
	r.TotalProcessed = len(r.Successful)
	r.TotalFailed = len(r.Failed)
	r.Message = fmt.Sprintf("Processed %d files successfully, %d failed", r.TotalProcessed, r.TotalFailed)
}

// Uploader ingests files into the knowledge base.
type Uploader interface {
	// Upload validates, processes and stores a single file.
	Upload(ctx context.Context, file File) (*Document, error)

	// BulkUpload stores several files, reporting per-file outcomes.
	// Only batch-level problems are returned as an error.
	BulkUpload(ctx context.Context, files []File) (*BulkResult, error)

	// Store saves an already processed document.
	// Returns ECONFLICT if a document with the same content exists.
	Store(ctx context.Context, doc *Document) error
}

// FormatSize formats a byte count in human-readable form.
func FormatSize(n int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case n >= MB:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(MB))
	case n >= KB:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(KB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
