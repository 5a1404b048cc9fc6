package localmind

import "context"

// Answer is a generated response grounded in stored documents.
type Answer struct {
	Text    string         `json:"answer"`
	Sources []SearchResult `json:"sources"`
}

// Asker provides natural language question answering over the knowledge base.
type Asker interface {
	// Ask answers a question using the most relevant documents as context.
	// Returns ENOTFOUND if no document is relevant to the question.
	Ask(ctx context.Context, question string) (*Answer, error)
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
