// Package ingest turns uploaded files into stored documents. Processors
// extract searchable text and metadata per file type; the Ingester validates
// uploads, rejects duplicate content and stores the result.
package ingest

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/fwojciec/localmind"
	"gopkg.in/yaml.v3"
)

var _ localmind.Processor = (*Processor)(nil)

// Processor dispatches files to a type-specific processor by extension.
// Unknown extensions are processed as plain text.
type Processor struct {
	// HTML processes .html and .htm files. When nil they are read as text.
	HTML *HTMLProcessor
}

// NewProcessor returns a Processor using html for HTML files.
func NewProcessor(html *HTMLProcessor) *Processor {
	return &Processor{HTML: html}
}

// Process converts data into an unsaved document.
func (p *Processor) Process(filename string, data []byte) (*localmind.Document, error) {
	switch localmind.Ext(filename) {
	case ".json":
		return ProcessJSON(filename, data)
	case ".md":
		return ProcessMarkdown(filename, data)
	case ".yaml", ".yml":
		return ProcessYAML(filename, data)
	case ".xml":
		return ProcessXML(filename, data)
	case ".html", ".htm":
		if p.HTML != nil {
			return p.HTML.Process(filename, data)
		}
	}
	return ProcessText(filename, data)
}

func errEmpty() error {
	return localmind.Errorf(localmind.EINVALID, "File appears to be empty or contains no readable text")
}

func baseMetadata(filename string, data []byte) map[string]any {
	return map[string]any{
		"filename":   filename,
		"size_bytes": len(data),
	}
}

// ProcessText reads data as UTF-8, falling back to Latin-1.
func ProcessText(filename string, data []byte) (*localmind.Document, error) {
	content := DecodeText(data)
	if strings.TrimSpace(content) == "" {
		return nil, errEmpty()
	}

	metadata := baseMetadata(filename, data)
	metadata["line_count"] = strings.Count(content, "\n") + 1
	metadata["char_count"] = utf8.RuneCountInString(content)

	return &localmind.Document{
		Title:    filename,
		Content:  content,
		Type:     localmind.DocumentTypeText,
		Metadata: metadata,
	}, nil
}

// ProcessJSON stores the document re-indented with two spaces. Key order is
// preserved and top-level object keys are recorded in metadata.
func ProcessJSON(filename string, data []byte) (*localmind.Document, error) {
	if !utf8.Valid(data) {
		return nil, localmind.Errorf(localmind.EINVALID, "Invalid JSON file: content is not valid UTF-8")
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, localmind.Errorf(localmind.EINVALID, "Invalid JSON file: %v", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", "  "); err != nil {
		return nil, localmind.Errorf(localmind.EINVALID, "Invalid JSON file: %v", err)
	}

	metadata := baseMetadata(filename, data)
	metadata["keys"] = jsonKeys(data)

	return &localmind.Document{
		Title:    filename,
		Content:  buf.String(),
		Type:     localmind.DocumentTypeJSON,
		Metadata: metadata,
	}, nil
}

// jsonKeys returns the keys of a top-level JSON object in document order.
func jsonKeys(data []byte) []string {
	keys := []string{}

	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return keys
	}

	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		key, _ := tok.(string)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			break
		}
	}
	return keys
}

// ProcessMarkdown records the first five heading titles in metadata.
func ProcessMarkdown(filename string, data []byte) (*localmind.Document, error) {
	content := DecodeText(data)
	if strings.TrimSpace(content) == "" {
		return nil, errEmpty()
	}

	metadata := baseMetadata(filename, data)
	metadata["headers"] = localmind.HeadingTitles(content, 5)

	return &localmind.Document{
		Title:    filename,
		Content:  content,
		Type:     localmind.DocumentTypeMarkdown,
		Metadata: metadata,
	}, nil
}

// ProcessYAML validates the document and records the keys of a top-level
// mapping in metadata. The original text is stored.
func ProcessYAML(filename string, data []byte) (*localmind.Document, error) {
	content := DecodeText(data)
	if strings.TrimSpace(content) == "" {
		return nil, errEmpty()
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(content), &root); err != nil {
		return nil, localmind.Errorf(localmind.EINVALID, "Invalid YAML file: %v", err)
	}

	keys := []string{}
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 && root.Content[0].Kind == yaml.MappingNode {
		m := root.Content[0]
		for i := 0; i+1 < len(m.Content); i += 2 {
			keys = append(keys, m.Content[i].Value)
		}
	}

	metadata := baseMetadata(filename, data)
	metadata["keys"] = keys

	return &localmind.Document{
		Title:    filename,
		Content:  content,
		Type:     localmind.DocumentTypeYAML,
		Metadata: metadata,
	}, nil
}

// ProcessXML stores the text content of the document, one line per text
// node, and records the root element and element count.
func ProcessXML(filename string, data []byte) (*localmind.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, localmind.Errorf(localmind.EINVALID, "Invalid XML file: %v", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, localmind.Errorf(localmind.EINVALID, "Invalid XML file: no root element")
	}

	var parts []string
	count := 0
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		count++
		for _, tok := range e.Child {
			switch t := tok.(type) {
			case *etree.Element:
				walk(t)
			case *etree.CharData:
				if s := strings.TrimSpace(t.Data); s != "" {
					parts = append(parts, s)
				}
			}
		}
	}
	walk(root)

	content := strings.Join(parts, "\n")
	if content == "" {
		return nil, errEmpty()
	}

	metadata := baseMetadata(filename, data)
	metadata["root_element"] = root.FullTag()
	metadata["element_count"] = count

	return &localmind.Document{
		Title:    filename,
		Content:  content,
		Type:     localmind.DocumentTypeXML,
		Metadata: metadata,
	}, nil
}
