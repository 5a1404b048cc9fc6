// Package readability extracts page content with go-readability. It is the
// fallback when trafilatura finds no main content.
package readability

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/localmind"
	"github.com/go-shiori/go-readability"
)

// DefaultMinTextLength is the shortest article text, in runes, that counts
// as content.
const DefaultMinTextLength = 25

var _ localmind.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct {
	// Articles with less visible text than this are reported with empty
	// ContentHTML so the caller moves on to its next strategy.
	MinTextLength int
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{MinTextLength: DefaultMinTextLength}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*localmind.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, localmind.Errorf(localmind.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	result := &localmind.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		Description: strings.TrimSpace(article.Excerpt),
		ContentHTML: article.Content,
	}
	if utf8.RuneCountInString(strings.TrimSpace(article.TextContent)) < e.MinTextLength {
		result.ContentHTML = ""
	}
	return result, nil
}
