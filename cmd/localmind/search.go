package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/localmind"
)

// snippetLength is how much of each result's content search prints.
const snippetLength = 160

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	req := localmind.SearchRequest{
		Query:      strings.Join(c.Query, " "),
		IncludeWeb: c.Web,
		MaxResults: c.Limit,
	}
	if len(c.Filter) > 0 {
		req.Filters = make(map[string]any, len(c.Filter))
		for k, v := range c.Filter {
			req.Filters[k] = v
		}
	}

	resp, err := deps.Search.Search(deps.Ctx, req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", localmind.ErrorMessage(err))
		return err
	}

	if len(resp.Results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results found.")
		return nil
	}

	fmt.Fprint(deps.Stdout, localmind.FormatResults(resp.Results, snippetLength))
	return nil
}

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	if deps.Asker == nil {
		fmt.Fprintln(deps.Stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return localmind.Errorf(localmind.ENOTIMPLEMENTED, "GEMINI_API_KEY not set")
	}

	answer, err := deps.Asker.Ask(deps.Ctx, strings.Join(c.Question, " "))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", localmind.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer.Text)
	if len(answer.Sources) > 0 {
		fmt.Fprintln(deps.Stdout, "\nSources:")
		for _, src := range answer.Sources {
			fmt.Fprintf(deps.Stdout, "  %s  %s\n", src.ID, src.Title)
		}
	}
	return nil
}

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Stats.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", localmind.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Fprintf(deps.Stdout, "Documents:     %d\n", stats.TotalDocuments)
	fmt.Fprintf(deps.Stdout, "Searches:      %d\n", stats.TotalSearches)
	fmt.Fprintf(deps.Stdout, "Storage used:  %s\n", stats.StorageUsed)
	fmt.Fprintf(deps.Stdout, "Unique terms:  %d\n", stats.UniqueTerms)
	fmt.Fprintf(deps.Stdout, "Model:         %s\n", stats.ModelStatus)
	fmt.Fprintf(deps.Stdout, "Platform:      %s\n", stats.Platform)
	if len(stats.RecentSearches) > 0 {
		fmt.Fprintln(deps.Stdout, "Recent searches:")
		for _, e := range stats.RecentSearches {
			fmt.Fprintf(deps.Stdout, "  %s  %s\n", e.Timestamp.Format("2006-01-02 15:04"), e.Query)
		}
	}
	return nil
}
