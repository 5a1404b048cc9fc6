package localmind

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Description is the page summary, when the page declares one.
	Description string

	// Language is the declared or detected content language.
	Language string

	// ContentHTML is the main content as clean HTML with navigation,
	// footers and other boilerplate removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML (e.g., from an Extractor) into Markdown.
	Convert(html string) (string, error)
}

// PageMetadata holds descriptive fields read from an HTML head.
type PageMetadata struct {
	Title       string
	Description string
	Language    string
	Generator   string

	// Text is the visible body text, used when no main content can be
	// extracted.
	Text string
}

// MetadataReader reads PageMetadata from raw HTML.
type MetadataReader interface {
	ReadMetadata(html string) (*PageMetadata, error)
}
