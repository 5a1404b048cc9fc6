package localmind

import (
	"fmt"
	"strings"
)

// FormatResults renders search results for terminal output.
// Content is collapsed to a single line and cut at width runes.
func FormatResults(results []SearchResult, width int) string {
	if len(results) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		id := r.ID
		if id == "" {
			id = r.Source
		}
		fmt.Fprintf(&sb, "%.3f  %s  %s\n", r.Score, id, r.Title)
		if snippet := Snippet(r.Content, width); snippet != "" {
			sb.WriteString("       ")
			sb.WriteString(snippet)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Snippet collapses whitespace in s and truncates it to n runes,
// appending "..." when cut.
func Snippet(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
