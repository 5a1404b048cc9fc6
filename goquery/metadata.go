// Package goquery reads descriptive metadata from HTML documents.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/localmind"
)

var _ localmind.MetadataReader = (*MetadataReader)(nil)

// MetadataReader implements localmind.MetadataReader.
type MetadataReader struct{}

// NewMetadataReader creates a new MetadataReader.
func NewMetadataReader() *MetadataReader {
	return &MetadataReader{}
}

// ReadMetadata parses html and returns its title, description, language,
// generator and visible text. Missing fields are left empty.
func (r *MetadataReader) ReadMetadata(html string) (*localmind.PageMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, localmind.Errorf(localmind.EINVALID, "failed to parse HTML: %v", err)
	}

	meta := &localmind.PageMetadata{
		Title: firstNonEmpty(
			collapse(doc.Find("head title").First().Text()),
			metaContent(doc, `meta[property="og:title"]`),
			collapse(doc.Find("h1").First().Text()),
		),
		Description: firstNonEmpty(
			metaContent(doc, `meta[name="description"]`),
			metaContent(doc, `meta[property="og:description"]`),
		),
		Language: firstNonEmpty(
			attr(doc.Find("html").First(), "lang"),
			metaContent(doc, `meta[http-equiv="content-language"]`),
		),
		Generator: metaContent(doc, `meta[name="generator"]`),
	}

	body := doc.Find("body").First()
	body.Find("script, style, noscript, template").Remove()
	meta.Text = collapse(body.Text())

	return meta, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	return attr(doc.Find(selector).First(), "content")
}

func attr(sel *goquery.Selection, name string) string {
	v, _ := sel.Attr(name)
	return strings.TrimSpace(v)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
