package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/localmind"
	"github.com/fwojciec/localmind/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts paragraph and trims", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert("\n<p>Hard hats are required.</p>\n")

		require.NoError(t, err)
		assert.Equal(t, "Hard hats are required.", md)
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<h1>Safety</h1><h2>Fall Protection</h2>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Safety")
		assert.Contains(t, md, "## Fall Protection")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<ul><li>Slump test</li><li>Compression test</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- Slump test")
		assert.Contains(t, md, "- Compression test")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>See <a href="https://example.com/osha">OSHA rules</a>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[OSHA rules](https://example.com/osha)")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Panel</th><th>Rating</th></tr></thead>
<tbody><tr><td>LP-1A</td><td>225A</td></tr></tbody>
</table>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Panel")
		assert.Contains(t, md, "LP-1A")
		assert.Contains(t, md, "|")
	})

	t.Run("converts emphasis and code", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p><strong>Never</strong> bypass <code>GFCI</code> outlets.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "**Never**")
		assert.Contains(t, md, "`GFCI`")
	})

	t.Run("rejects blank input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("   ")

		assert.Equal(t, localmind.EINVALID, localmind.ErrorCode(err))
	})
}

func TestConverter_CollapsesBlankLines(t *testing.T) {
	t.Parallel()

	md, err := htmltomarkdown.NewConverter().Convert(`<p>First</p><div><br><br><br></div><p>Second</p>`)

	require.NoError(t, err)
	assert.NotContains(t, md, "\n\n\n")
	assert.Contains(t, md, "First")
	assert.Contains(t, md, "Second")
}
