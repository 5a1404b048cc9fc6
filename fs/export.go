package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/localmind"
	"gopkg.in/yaml.v3"
)

// ExportBatchSize is how many documents Export reads per page.
const ExportBatchSize = 100

// frontmatter is the YAML header written above each exported document.
type frontmatter struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Type        string         `yaml:"type"`
	Added       string         `yaml:"added"`
	ContentHash string         `yaml:"content_hash,omitempty"`
	Metadata    map[string]any `yaml:"metadata,omitempty"`
}

// FormatDocument formats a document with YAML frontmatter.
func FormatDocument(doc *localmind.Document) (string, error) {
	header, err := yaml.Marshal(frontmatter{
		ID:          doc.ID,
		Title:       doc.Title,
		Type:        string(doc.Type),
		Added:       doc.AddedAt.UTC().Format("2006-01-02T15:04:05Z"),
		ContentHash: doc.ContentHash,
		Metadata:    doc.Metadata,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(doc.Content)
	return b.String(), nil
}

// DocumentPath returns the export file name for doc.
func DocumentPath(doc *localmind.Document) string {
	return doc.ID + ".md"
}

// Exporter writes documents into a directory with atomic update semantics.
// Documents are saved to a temporary directory which replaces the target
// on Commit.
type Exporter struct {
	baseDir string
	name    string
}

// NewExporter creates a new Exporter writing to baseDir/name.
func NewExporter(baseDir, name string) *Exporter {
	return &Exporter{baseDir: baseDir, name: name}
}

func (e *Exporter) tempDir() string {
	return filepath.Join(e.baseDir, e.name+".tmp")
}

func (e *Exporter) finalDir() string {
	return filepath.Join(e.baseDir, e.name)
}

// Save writes doc to the temporary directory.
func (e *Exporter) Save(doc *localmind.Document) error {
	if doc.ID == "" {
		return localmind.Errorf(localmind.EINVALID, "document ID required")
	}

	content, err := FormatDocument(doc)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(e.tempDir(), DocumentPath(doc)), []byte(content), 0644)
}

// Commit replaces the target directory with the saved documents.
func (e *Exporter) Commit() error {
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(e.finalDir()); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.finalDir())
}

// Abort discards the saved documents.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}

// Export saves every stored document and commits. On failure the target
// directory is left untouched. It returns the number of documents written.
func (e *Exporter) Export(ctx context.Context, docs localmind.DocumentService) (n int, err error) {
	defer func() {
		if err != nil {
			_ = e.Abort()
		}
	}()

	for offset := 0; ; offset += ExportBatchSize {
		batch, err := docs.FindDocuments(ctx, localmind.DocumentFilter{Offset: offset, Limit: ExportBatchSize})
		if err != nil {
			return n, err
		}
		for _, doc := range batch {
			if err := e.Save(doc); err != nil {
				return n, fmt.Errorf("export %s: %w", doc.ID, err)
			}
			n++
		}
		if len(batch) < ExportBatchSize {
			break
		}
	}

	return n, e.Commit()
}
