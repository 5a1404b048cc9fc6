package localmind

import (
	"bufio"
	"strings"
)

// HeadingTitles returns the titles of at most n markdown headings in order.
// A heading is any line starting with '#'; the title is the line with
// surrounding hashes and whitespace removed. Lines inside fenced code
// blocks are skipped.
func HeadingTitles(markdown string, n int) []string {
	titles := []string{}
	inFence := false

	sc := bufio.NewScanner(strings.NewReader(markdown))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() && len(titles) < n {
		line := sc.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence || !strings.HasPrefix(line, "#") {
			continue
		}
		if title := strings.Trim(line, "# \t\r"); title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}
