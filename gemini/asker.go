// Package gemini answers questions over the knowledge base with Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/localmind"
	"google.golang.org/genai"
)

// Model is the Gemini model used for answers and token counting.
const Model = "gemini-2.5-flash"

// Defaults for context selection.
const (
	DefaultMaxSources   = 5
	DefaultContextLimit = 200_000
)

var _ localmind.Asker = (*Asker)(nil)

// Asker implements localmind.Asker using Google Gemini. The question is
// searched first and the best matches that fit ContextLimit tokens are sent
// as context.
type Asker struct {
	client  *genai.Client
	search  localmind.SearchService
	counter localmind.TokenCounter

	MaxSources   int
	ContextLimit int
}

// NewAsker creates a new Asker. counter may be nil, in which case no token
// budget is enforced.
func NewAsker(client *genai.Client, search localmind.SearchService, counter localmind.TokenCounter) *Asker {
	return &Asker{
		client:       client,
		search:       search,
		counter:      counter,
		MaxSources:   DefaultMaxSources,
		ContextLimit: DefaultContextLimit,
	}
}

// Ask answers a natural language question using stored documents.
func (a *Asker) Ask(ctx context.Context, question string) (*localmind.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, localmind.Errorf(localmind.EINVALID, "question required")
	}

	resp, err := a.search.Search(ctx, localmind.SearchRequest{Query: question, MaxResults: a.MaxSources})
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, localmind.Errorf(localmind.ENOTFOUND, "no relevant documents found")
	}

	sources, err := SelectSources(ctx, a.counter, resp.Results, a.ContextLimit)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, localmind.Errorf(localmind.ETOOLARGE, "relevant documents exceed the context limit")
	}

	result, err := a.client.Models.GenerateContent(ctx, Model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(sources, question)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, localmind.Errorf(localmind.EINTERNAL, "gemini returned nil result")
	}

	return &localmind.Answer{Text: result.Text(), Sources: sources}, nil
}

// SelectSources keeps results in rank order while their combined token count
// stays within limit. Results without a stored document are skipped. A nil
// counter or non-positive limit keeps every stored result.
func SelectSources(ctx context.Context, counter localmind.TokenCounter, results []localmind.SearchResult, limit int) ([]localmind.SearchResult, error) {
	budget := &Budget{Counter: counter, Limit: limit}
	sources := make([]localmind.SearchResult, 0, len(results))
	for _, r := range results {
		if r.ID == "" {
			continue
		}
		ok, err := budget.Take(ctx, r.Content)
		if err != nil {
			return nil, fmt.Errorf("count tokens: %w", err)
		}
		if ok {
			sources = append(sources, r)
		}
	}
	return sources, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about the user's personal knowledge base. Answer based only on the documents provided and cite document titles. If the answer is not in the documents, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing documents and question.
func BuildUserPrompt(sources []localmind.SearchResult, question string) string {
	var sb strings.Builder
	sb.WriteString("<documents>\n")
	for i, src := range sources {
		sb.WriteString("<document>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<title>%s</title>\n", src.Title)
		fmt.Fprintf(&sb, "<type>%s</type>\n", src.Type)
		fmt.Fprintf(&sb, "<content>%s</content>\n", src.Content)
		sb.WriteString("</document>\n")
	}
	sb.WriteString("</documents>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
