// Package trafilatura extracts the readable body of uploaded and imported
// HTML pages using go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/localmind"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ localmind.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura.
type Extractor struct {
	// IncludeTables keeps tables in the extracted content.
	IncludeTables bool
}

// NewExtractor creates a new Extractor that keeps tables.
func NewExtractor() *Extractor {
	return &Extractor{IncludeTables: true}
}

// Extract returns the main content of rawHTML along with its title and
// description.
func (e *Extractor) Extract(rawHTML string) (*localmind.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, localmind.Errorf(localmind.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   !e.IncludeTables,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		contentHTML = buf.String()
	}

	return &localmind.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		Description: strings.TrimSpace(result.Metadata.Description),
		ContentHTML: contentHTML,
	}, nil
}
