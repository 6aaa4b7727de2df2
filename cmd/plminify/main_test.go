package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leeforge/plminify/minifyhtml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const siteConfig = `{
  "paths": { "public": { "root": "public" } },
  "logging": { "log-in-terminal": false },
  "plugins": {
    "plugin-node-minify-html": { "enabled": true, "options": true }
  }
}`

const patternHTML = `<html>
  <body>
    <!-- card -->
    <div   class="card">Card</div>
  </body>
</html>
`

func newSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "patternlab-config.json"), []byte(siteConfig), 0o644))

	for _, name := range []string{"atoms-card", "molecules-list"} {
		out := filepath.Join(dir, "public", "patterns", name)
		require.NoError(t, os.MkdirAll(out, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(out, name+".html"), []byte(patternHTML), 0o644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)

	for _, sub := range []string{"build", "serve"} {
		assert.Contains(t, out, sub, "Help missing %q command", sub)
	}
}

func TestBuild_MinifiesAndPublishes(t *testing.T) {
	dir := newSite(t)

	out, err := execute(t, "build", "--config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "minified 2 patterns")

	page, err := os.ReadFile(filepath.Join(dir, "public", "patterns", "atoms-card", "atoms-card.html"))
	require.NoError(t, err)
	assert.NotContains(t, string(page), "<!--")
	assert.True(t, strings.Contains(string(page), "Card"))

	public := filepath.Join(dir, "public")
	assert.FileExists(t, minifyhtml.ConfigPath(public, minifyhtml.PluginName))
	assert.FileExists(t, filepath.Join(minifyhtml.AssetRoot(public, minifyhtml.PluginName), "js", minifyhtml.PluginName+".js"))
}

func TestBuild_OnlyFilter(t *testing.T) {
	dir := newSite(t)

	out, err := execute(t, "build", "--config", dir, "--only", "molecules-*")
	require.NoError(t, err)
	assert.Contains(t, out, "minified 1 patterns")

	page, err := os.ReadFile(filepath.Join(dir, "public", "patterns", "atoms-card", "atoms-card.html"))
	require.NoError(t, err)
	assert.Equal(t, patternHTML, string(page))
}

func TestBuild_MissingConfig(t *testing.T) {
	_, err := execute(t, "build", "--config", t.TempDir())
	assert.Error(t, err)
}

func TestRouter(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "page.html"), []byte("<p>hi</p>"), 0o644))
	h := newRouter(root, zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/page.html", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hi")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/-/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"plugin":"plugin-node-minify-html"`)
}
