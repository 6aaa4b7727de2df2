package runtime

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
	apperrors "github.com/leeforge/plminify/errors"
	"github.com/leeforge/plminify/plugin"
	"github.com/leeforge/plminify/utils"
)

// DiscoverPatterns finds patterns already written to dir, laid out as
// <dir>/<name>/<name>.html. When match is non-nil only names it matches are
// returned. Patterns are sorted by name.
func DiscoverPatterns(dir string, match glob.Glob) ([]*plugin.Pattern, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.NewIO("read", dir, err)
	}

	var patterns []*plugin.Pattern
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if match != nil && !match.Match(name) {
			continue
		}
		if !utils.IsFile(filepath.Join(dir, name, name+".html")) {
			continue
		}
		patterns = append(patterns, &plugin.Pattern{
			PatternPartial: name,
			Name:           name,
			RelPath:        name + ".html",
		})
	}

	sort.Slice(patterns, func(i, j int) bool {
		return patterns[i].PatternPartial < patterns[j].PatternPartial
	})
	return patterns, nil
}
