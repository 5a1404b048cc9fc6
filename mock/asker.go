package mock

import (
	"context"

	"github.com/fwojciec/localmind"
)

var (
	_ localmind.Asker        = (*Asker)(nil)
	_ localmind.TokenCounter = (*TokenCounter)(nil)
)

// Asker is a mock implementation of localmind.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question string) (*localmind.Answer, error)
}

func (a *Asker) Ask(ctx context.Context, question string) (*localmind.Answer, error) {
	return a.AskFn(ctx, question)
}

// TokenCounter is a mock implementation of localmind.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return c.CountTokensFn(ctx, text)
}
