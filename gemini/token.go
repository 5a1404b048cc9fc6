package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/localmind"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ localmind.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens locally with the Gemini tokenizer, without
// calling the API.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a TokenCounter for model, or for Model when model
// is empty. The tokenizer vocabulary is downloaded on first use.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = Model
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the tokens in text. Blank text has no tokens.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, "user")}, nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}

// Budget tracks how many tokens of a fixed limit have been spent.
type Budget struct {
	Counter localmind.TokenCounter
	Limit   int

	used int
}

// Take spends the tokens of text if they fit in the remaining budget and
// reports whether they did. A Budget without a Counter or Limit accepts
// everything.
func (b *Budget) Take(ctx context.Context, text string) (bool, error) {
	if b.Counter == nil || b.Limit <= 0 {
		return true, nil
	}
	n, err := b.Counter.CountTokens(ctx, text)
	if err != nil {
		return false, err
	}
	if b.used+n > b.Limit {
		return false, nil
	}
	b.used += n
	return true, nil
}

// Used returns the tokens spent so far.
func (b *Budget) Used() int {
	return b.used
}
