package minifyhtml

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/leeforge/plminify/assets"
	apperrors "github.com/leeforge/plminify/errors"
	"github.com/leeforge/plminify/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripDist(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"dist/js/app.js", "js/app.js"},
		{"dist/js/distro.js", "js/distro.js"},
		{"dist/dist/app.js", "dist/app.js"},
		{"dist/css/dist.css", "css/dist.css"},
		{"js/distro.js", "js/distro.js"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripDist(tt.in), tt.in)
	}
}

func TestPublishAssets_OnlyDistFiles(t *testing.T) {
	dest := t.TempDir()
	src := fstest.MapFS{
		"dist/js/distro.js": {Data: []byte("distro")},
		"distro/skip.js":    {Data: []byte("skip")},
		"README.md":         {Data: []byte("readme")},
	}

	report := PublishAssets(src, dest)

	require.NoError(t, report.Err())
	assert.Equal(t, []string{filepath.Join(dest, "js", "distro.js")}, report.Written)
	assert.Equal(t, []string{"js/distro.js"}, listFiles(t, dest))
}

func TestPublishAssets_FailureIsIsolated(t *testing.T) {
	dest := t.TempDir()
	// js cannot become a folder, so only the js file fails.
	require.NoError(t, os.WriteFile(filepath.Join(dest, "js"), nil, 0o644))

	report := PublishAssets(bundle, dest)

	require.Equal(t, 1, report.Failures.Len())
	assert.True(t, report.Failures.HasType(apperrors.ErrorTypeIO))
	assert.Equal(t, filepath.Join(dest, "js", "app.js"), report.Failures.First().Detail(apperrors.DetailPath))
	assert.Equal(t, []string{filepath.Join(dest, "css", "app.css")}, report.Written)
}

func TestPublishAssets_Bundled(t *testing.T) {
	dest := t.TempDir()

	report := PublishAssets(assets.FS, dest)

	require.NoError(t, report.Err())
	assert.ElementsMatch(t, []string{
		"js/" + PluginName + ".js",
		"css/" + PluginName + ".css",
	}, listFiles(t, dest))
}

func TestWriteConfig_Path(t *testing.T) {
	root := t.TempDir()
	desc := Frontend().WithOptions(&plugin.PluginRecord{Options: plugin.NewOptions(true)})

	path, err := WriteConfig(root, PluginName, desc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "patternlab-components", "packages", PluginName+".json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"options": true`)
}

func TestFrontend(t *testing.T) {
	d := Frontend()
	assert.Equal(t, "pattern-lab/"+PluginName, d.Name)
	assert.Equal(t, []string{"patternlab-components/pattern-lab/" + PluginName + "/js/" + PluginName + ".js"}, d.Javascripts)
	assert.Equal(t, "PluginPlMinify.init()", d.OnReady)
	assert.Empty(t, d.Templates)
	assert.True(t, d.Options.IsZero())
}
