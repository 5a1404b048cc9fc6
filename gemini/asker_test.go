package gemini_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/localmind"
	"github.com/fwojciec/localmind/gemini"
	"github.com/fwojciec/localmind/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsker_Ask_ReturnsErrorWhenQuestionEmpty(t *testing.T) {
	t.Parallel()

	asker := gemini.NewAsker(nil, nil, nil)

	_, err := asker.Ask(context.Background(), "   ")

	require.Error(t, err)
	assert.Equal(t, localmind.EINVALID, localmind.ErrorCode(err))
	assert.Equal(t, "question required", localmind.ErrorMessage(err))
}

func TestAsker_Ask_ReturnsNotFoundWhenNoResults(t *testing.T) {
	t.Parallel()

	var got localmind.SearchRequest
	search := &mock.SearchService{
		SearchFn: func(_ context.Context, req localmind.SearchRequest) (*localmind.SearchResponse, error) {
			got = req
			return &localmind.SearchResponse{Results: []localmind.SearchResult{}}, nil
		},
	}

	asker := gemini.NewAsker(nil, search, nil) // nil client ok for this test

	_, err := asker.Ask(context.Background(), "what is the slump?")

	require.Error(t, err)
	assert.Equal(t, localmind.ENOTFOUND, localmind.ErrorCode(err))
	assert.Equal(t, "what is the slump?", got.Query)
	assert.Equal(t, gemini.DefaultMaxSources, got.MaxResults)
	assert.False(t, got.IncludeWeb)
}

func TestAsker_Ask_PropagatesSearchError(t *testing.T) {
	t.Parallel()

	search := &mock.SearchService{
		SearchFn: func(context.Context, localmind.SearchRequest) (*localmind.SearchResponse, error) {
			return nil, localmind.Errorf(localmind.EINTERNAL, "database error")
		},
	}

	_, err := gemini.NewAsker(nil, search, nil).Ask(context.Background(), "anything")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
}

func TestAsker_Ask_ReturnsTooLargeWhenNothingFits(t *testing.T) {
	t.Parallel()

	search := &mock.SearchService{
		SearchFn: func(context.Context, localmind.SearchRequest) (*localmind.SearchResponse, error) {
			return &localmind.SearchResponse{Results: []localmind.SearchResult{{ID: "a", Content: "long"}}}, nil
		},
	}
	counter := &mock.TokenCounter{
		CountTokensFn: func(context.Context, string) (int, error) { return 500, nil },
	}

	asker := gemini.NewAsker(nil, search, counter)
	asker.ContextLimit = 100

	_, err := asker.Ask(context.Background(), "anything")

	require.Error(t, err)
	assert.Equal(t, localmind.ETOOLARGE, localmind.ErrorCode(err))
}

func TestSelectSources(t *testing.T) {
	t.Parallel()

	results := []localmind.SearchResult{
		{ID: "a", Content: "aaaa"},
		{Title: "web", Source: "web_search"},
		{ID: "b", Content: "bbbbbbbbbb"},
		{ID: "c", Content: "cc"},
	}
	counter := &mock.TokenCounter{
		CountTokensFn: func(_ context.Context, text string) (int, error) { return len(text), nil },
	}

	t.Run("keeps results within budget in rank order", func(t *testing.T) {
		t.Parallel()

		got, err := gemini.SelectSources(context.Background(), counter, results, 7)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "c", got[1].ID)
	})

	t.Run("nil counter keeps all stored results", func(t *testing.T) {
		t.Parallel()

		got, err := gemini.SelectSources(context.Background(), nil, results, 7)

		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("propagates counter error", func(t *testing.T) {
		t.Parallel()

		failing := &mock.TokenCounter{
			CountTokensFn: func(context.Context, string) (int, error) { return 0, errors.New("tokenizer failed") },
		}

		_, err := gemini.SelectSources(context.Background(), failing, results, 7)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "tokenizer failed")
	})
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "knowledge base")
}

func TestBuildConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.4, *config.Temperature, 0.001)
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	sources := []localmind.SearchResult{
		{ID: "sample1", Title: "Construction Safety Guidelines", Type: localmind.DocumentTypeText, Content: "Hard hats are required."},
		{ID: "sample2", Title: "Concrete Specifications", Type: localmind.DocumentTypeText, Content: "Slump: 4 inches."},
	}

	prompt := gemini.BuildUserPrompt(sources, "Are hard hats required?")

	assert.Contains(t, prompt, "<documents>")
	assert.Contains(t, prompt, "<index>1</index>\n<title>Construction Safety Guidelines</title>")
	assert.Contains(t, prompt, "<index>2</index>\n<title>Concrete Specifications</title>")
	assert.Contains(t, prompt, "<content>Hard hats are required.</content>")
	assert.Contains(t, prompt, "</documents>")
	assert.True(t, strings.HasSuffix(prompt, "Question: Are hard hats required?"))
	assert.NotContains(t, prompt, "helpful assistant")
}
