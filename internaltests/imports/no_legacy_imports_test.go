package imports_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// layerRules lists imports a package folder must not use. plugin holds the
// host contract and stays free of the host runtime and the CLI.
var layerRules = map[string][]string{
	"plugin":     {"github.com/leeforge/plminify/runtime", "github.com/leeforge/plminify/minifyhtml", "github.com/leeforge/plminify/cmd"},
	"minify":     {"github.com/leeforge/plminify/runtime", "github.com/leeforge/plminify/minifyhtml", "github.com/leeforge/plminify/cmd"},
	"minifyhtml": {"github.com/leeforge/plminify/config", "github.com/leeforge/plminify/cmd"},
	"runtime":    {"github.com/leeforge/plminify/minifyhtml", "github.com/leeforge/plminify/config", "github.com/leeforge/plminify/cmd"},
}

var legacy = []string{
	"github.com/leeforge/framework",
}

func walkGo(t *testing.T, root string, fn func(path, rel, content string)) {
	t.Helper()
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "internaltests") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		fn(path, filepath.ToSlash(rel), string(b))
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
}

func TestNoLegacyFrameworkImports(t *testing.T) {
	var hits []string
	walkGo(t, filepath.Clean("../.."), func(path, _, content string) {
		for _, k := range legacy {
			if strings.Contains(content, `"`+k) {
				hits = append(hits, path)
				break
			}
		}
	})

	if len(hits) > 0 {
		t.Fatalf("legacy imports found: %v", hits[:min(10, len(hits))])
	}
}

func TestPackageLayering(t *testing.T) {
	var hits []string
	walkGo(t, filepath.Clean("../.."), func(path, rel, content string) {
		pkg, _, _ := strings.Cut(rel, "/")
		for _, forbidden := range layerRules[pkg] {
			if strings.Contains(content, `"`+forbidden+`"`) || strings.Contains(content, `"`+forbidden+`/`) {
				hits = append(hits, path+" imports "+forbidden)
			}
		}
	})

	if len(hits) > 0 {
		t.Fatalf("layering violations: %v", hits)
	}
}
