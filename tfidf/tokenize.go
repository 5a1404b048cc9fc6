package tfidf

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into terms of at least two
// letters, digits or underscores. Everything else separates terms.
func Tokenize(text string) []string {
	var terms []string
	var sb strings.Builder
	runes := 0

	flush := func() {
		if runes >= 2 {
			terms = append(terms, sb.String())
		}
		sb.Reset()
		runes = 0
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			sb.WriteRune(r)
			runes++
			continue
		}
		flush()
	}
	flush()

	return terms
}
