package ingest

import (
	"strings"

	"github.com/fwojciec/localmind"
)

// HTMLProcessor converts HTML pages to Markdown. Extractors are tried in
// order and the first that yields content wins. When none does, the page's
// visible text is stored instead.
type HTMLProcessor struct {
	Extractors []localmind.Extractor
	Converter  localmind.Converter
	Metadata   localmind.MetadataReader
}

// Process extracts, converts and describes an HTML page.
func (p *HTMLProcessor) Process(filename string, data []byte) (*localmind.Document, error) {
	raw := DecodeText(data)
	if strings.TrimSpace(raw) == "" {
		return nil, errEmpty()
	}

	meta, err := p.Metadata.ReadMetadata(raw)
	if err != nil {
		return nil, err
	}

	var extracted *localmind.ExtractResult
	for _, ex := range p.Extractors {
		r, err := ex.Extract(raw)
		if err != nil || strings.TrimSpace(r.ContentHTML) == "" {
			continue
		}
		extracted = r
		break
	}

	var content string
	if extracted != nil {
		if md, err := p.Converter.Convert(extracted.ContentHTML); err == nil {
			content = md
		}
	}
	if strings.TrimSpace(content) == "" {
		content = meta.Text
	}
	if strings.TrimSpace(content) == "" {
		return nil, errEmpty()
	}

	title, description := meta.Title, meta.Description
	if extracted != nil {
		title = firstNonEmpty(extracted.Title, title)
		description = firstNonEmpty(extracted.Description, description)
	}

	metadata := baseMetadata(filename, data)
	if description != "" {
		metadata["description"] = description
	}
	if meta.Language != "" {
		metadata["language"] = meta.Language
	}
	if meta.Generator != "" {
		metadata["generator"] = meta.Generator
	}

	return &localmind.Document{
		Title:    firstNonEmpty(title, filename),
		Content:  content,
		Type:     localmind.DocumentTypeHTML,
		Metadata: metadata,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
