package runtime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gobwas/glob"
	"github.com/leeforge/plminify/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeOutput(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, name), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name, name+".html"), []byte("<p>x</p>"), 0o644))
}

func TestDiscoverPatterns(t *testing.T) {
	dir := t.TempDir()
	writeOutput(t, dir, "molecules-card")
	writeOutput(t, dir, "atoms-button")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), nil, 0o644))

	patterns, err := DiscoverPatterns(dir, nil)
	require.NoError(t, err)
	require.Len(t, patterns, 2)
	assert.Equal(t, "atoms-button", patterns[0].PatternPartial)
	assert.Equal(t, filepath.Join(dir, "atoms-button", "atoms-button.html"), patterns[0].OutputPath(dir))

	patterns, err = DiscoverPatterns(dir, glob.MustCompile("molecules-*"))
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.Equal(t, "molecules-card", patterns[0].Name)
}

func TestDiscoverPatterns_MissingDir(t *testing.T) {
	_, err := DiscoverPatterns(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}

func TestRuntime_ReconfigureKeepsInitialized(t *testing.T) {
	rt := NewRuntime(Config{Logger: zap.NewNop()})
	rt.State().SetPluginRecord("a", plugin.PluginRecord{Enabled: true, Initialized: true})

	rt.Reconfigure(map[string]plugin.PluginRecord{
		"a": {Enabled: true, Options: plugin.NewOptions(false)},
		"b": {Enabled: true},
	})

	a, _ := rt.State().PluginRecord("a")
	assert.True(t, a.Initialized)
	assert.False(t, a.Options.Truthy())

	b, ok := rt.State().PluginRecord("b")
	require.True(t, ok)
	assert.False(t, b.Initialized)
}
