package web_test

import (
	"io/fs"
	"testing"

	"github.com/fwojciec/localmind/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_AreEmbedded(t *testing.T) {
	t.Parallel()

	for _, name := range web.Templates {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			data, err := fs.ReadFile(web.FS(), name)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}
}

func TestIndexPage_CallsAPI(t *testing.T) {
	t.Parallel()

	data, err := fs.ReadFile(web.FS(), "static/index.html")
	require.NoError(t, err)

	page := string(data)
	for _, endpoint := range []string{"/api/health", "/api/search", "/api/upload", "/api/documents", "/api/stats"} {
		assert.Contains(t, page, endpoint)
	}
}
