// Package minify rewrites a pattern's rendered HTML files in place with
// whitespace, comments and redundant markup removed.
package minify

import (
	"os"
	"regexp"
	"sync"

	apperrors "github.com/leeforge/plminify/errors"
	"github.com/leeforge/plminify/plugin"
	"github.com/leeforge/plminify/utils"
	tdminify "github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"go.uber.org/zap"
)

const mediaHTML = "text/html"

var scriptTypes = regexp.MustCompile(`^(application|text)/(x-)?(java|ecma)script$`)

// Minifier minifies HTML documents, including inline styles and scripts
// when enabled.
type Minifier struct {
	opts Options
	m    *tdminify.M
}

// New creates a Minifier for the given options.
func New(opts Options) *Minifier {
	m := tdminify.New()
	m.Add(mediaHTML, &html.Minifier{
		KeepComments:        !opts.RemoveComments,
		KeepWhitespace:      !opts.CollapseWhitespace,
		KeepDocumentTags:    opts.KeepDocumentTags,
		KeepEndTags:         opts.KeepEndTags,
		KeepQuotes:          opts.KeepQuotes,
		KeepDefaultAttrVals: opts.KeepDefaultAttrVals,
	})
	if opts.MinifyCSS {
		m.AddFunc("text/css", css.Minify)
	}
	if opts.MinifyJS {
		m.AddFuncRegexp(scriptTypes, js.Minify)
	}
	return &Minifier{opts: opts, m: m}
}

// HTML minifies a single HTML document.
func (mn *Minifier) HTML(src []byte) ([]byte, error) {
	return mn.m.Bytes(mediaHTML, src)
}

// MinifyPattern rewrites the pattern's rendered page, and its markup-only
// rendering when present, in place.
func (mn *Minifier) MinifyPattern(host *plugin.HostState, p *plugin.Pattern) error {
	dir := host.PatternsDir()
	if err := mn.minifyFile(host, p.OutputPath(dir)); err != nil {
		return err
	}

	if !mn.opts.MarkupOnly {
		return nil
	}
	markupOnly := p.MarkupOnlyPath(dir)
	if !utils.IsFile(markupOnly) {
		return nil
	}
	return mn.minifyFile(host, markupOnly)
}

func (mn *Minifier) minifyFile(host *plugin.HostState, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewIO("read", path, err)
	}

	out, err := mn.HTML(src)
	if err != nil {
		return apperrors.NewDelegated("minify "+path, err).
			WithDetail(apperrors.DetailPath, path)
	}

	if err := utils.OutputFile(path, out); err != nil {
		return apperrors.NewIO("write", path, err)
	}

	host.Log().Debug("pattern minified",
		zap.String("path", path),
		zap.Int("before", len(src)),
		zap.Int("after", len(out)))
	return nil
}

// PatternFunc returns the pattern minification routine for the named
// plugin. Options are read from the host's record for that plugin on every
// call, and Minifiers are reused for identical options.
func PatternFunc(pluginName string) func(*plugin.HostState, *plugin.Pattern) error {
	var (
		mu    sync.Mutex
		cache = make(map[Options]*Minifier)
	)

	return func(host *plugin.HostState, p *plugin.Pattern) error {
		rec, _ := host.PluginRecord(pluginName)
		opts, err := OptionsFrom(rec.PluginOptions)
		if err != nil {
			host.Log().Warn("invalid minify options, using defaults",
				zap.String("plugin", pluginName), zap.Error(err))
		}

		mu.Lock()
		mn, ok := cache[opts]
		if !ok {
			mn = New(opts)
			cache[opts] = mn
		}
		mu.Unlock()

		return mn.MinifyPattern(host, p)
	}
}
