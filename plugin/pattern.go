package plugin

import (
	"path"
	"path/filepath"
	"strings"
)

// Pattern is a single compiled UI template unit written by the host.
type Pattern struct {
	// PatternPartial is the include key, e.g. "atoms-button".
	PatternPartial string
	// Name is the display name.
	Name string
	// RelPath is the source path relative to the patterns source folder,
	// e.g. "00-atoms/00-button.mustache".
	RelPath string
}

// FlatName is the output folder and file stem: RelPath without its extension
// and with path separators replaced by "-".
func (p *Pattern) FlatName() string {
	rel := filepath.ToSlash(p.RelPath)
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	return strings.ReplaceAll(rel, "/", "-")
}

// OutputPath is the full rendered page for the pattern.
func (p *Pattern) OutputPath(patternsDir string) string {
	flat := p.FlatName()
	return filepath.Join(patternsDir, flat, flat+".html")
}

// MarkupOnlyPath is the markup-only rendering used by the pattern viewer.
func (p *Pattern) MarkupOnlyPath(patternsDir string) string {
	flat := p.FlatName()
	return filepath.Join(patternsDir, flat, flat+".markup-only.html")
}
