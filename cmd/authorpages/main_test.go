package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackielii/authorpages"
	"github.com/jackielii/authorpages/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"templates/author.html":              `author {{.Query.Get "author_name"}}`,
		"templates/author-page-recipes.html": `recipes of {{.Query.Get "author_name"}}`,
		"authorpages.yaml": "pages: [recipes]\ntemplates:\n  root: " +
			filepath.Join(dir, "templates") + "\n",
	}
	for name, data := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	}
	return dir
}

func TestApp(t *testing.T) {
	logger = zap.NewNop()
	dir := writeSite(t)
	cfg, err := config.Load(filepath.Join(dir, "authorpages.yaml"))
	require.NoError(t, err)

	a, err := newApp(cfg)
	require.NoError(t, err)

	get := func(path string) string {
		rec := httptest.NewRecorder()
		a.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, http.NoBody))
		return rec.Body.String()
	}
	assert.Equal(t, "recipes of jane", get("/author/jane/recipes"))

	cfg.Pages = []string{"bio"}
	restart, err := a.reload(cfg)
	require.NoError(t, err)
	assert.Empty(t, restart)
	assert.Equal(t, "author jane", get("/author/jane/bio"))
	assert.Equal(t, "404 page not found\n", get("/author/jane/recipes"))
}

func TestAppReloadReportsRestartKeys(t *testing.T) {
	logger = zap.NewNop()
	dir := writeSite(t)
	cfg, err := config.Load(filepath.Join(dir, "authorpages.yaml"))
	require.NoError(t, err)
	a, err := newApp(cfg)
	require.NoError(t, err)

	next := cfg
	next.Addr = ":9090"
	next.AuthorBase = "writers/{author}"
	next.Templates.Themes = []string{"child", "."}
	next.Precedence = "first"
	restart, err := a.reload(next)
	require.NoError(t, err)
	assert.Equal(t, []string{"addr", "author_base", "templates"}, restart)
	assert.Equal(t, authorpages.FirstPageFirst, a.ext.Precedence)

	// the running rules still use the old base
	_, err = a.rewrite.Match("/author/jane/recipes")
	require.NoError(t, err)
	_, err = a.rewrite.Match("/writers/jane/recipes")
	assert.ErrorIs(t, err, authorpages.ErrNoMatch)
}

func TestRulesCommand(t *testing.T) {
	dir := writeSite(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"rules", "-c", filepath.Join(dir, "authorpages.yaml"), "/author/jane/recipes"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "query:  author_name=jane&author_page=recipes")
	assert.Contains(t, out.String(), "template: author-page-recipes.html")
}
