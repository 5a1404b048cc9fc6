package readability_test

import (
	"testing"

	"github.com/fwojciec/localmind"
	"github.com/fwojciec/localmind/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := readability.NewExtractor().Extract("")

	require.Error(t, err)
	assert.Equal(t, localmind.EINVALID, localmind.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Concrete Specifications</title></head>
<body><article><p>Minimum compressive strength is 3000 PSI at 28 days.</p></article></body>
</html>`

	result, err := readability.NewExtractor().Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Concrete Specifications", result.Title)
}

func TestExtractor_KeepsArticleDropsNavigation(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Distribution</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article><p>The main switchboard is rated 2000A, 480V, 3-phase and sits in the ground floor electrical room.
Panels LP-1A and PP-1A feed lighting and power on the first floor.</p></article>
</body>
</html>`

	result, err := readability.NewExtractor().Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "main switchboard")
	assert.NotContains(t, result.ContentHTML, "Home Nav Link")
}

func TestExtractor_ShortArticleHasNoContent(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Stub</title></head><body><p>Hi.</p></body></html>`

	result, err := readability.NewExtractor().Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Stub", result.Title)
	assert.Empty(t, result.ContentHTML)
}

func TestExtractor_MinTextLengthZeroKeepsShortContent(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Stub</title></head><body><article><p>Hi there.</p></article></body></html>`

	ex := &readability.Extractor{}
	result, err := ex.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "Hi there.")
}
