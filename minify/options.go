package minify

import (
	"github.com/creasty/defaults"
	"github.com/leeforge/plminify/plugin"
)

// Options controls pattern minification. They are read from the plugin's
// pluginOptions; keys absent there keep the defaults below.
type Options struct {
	RemoveComments      bool `json:"removeComments" default:"true"`
	CollapseWhitespace  bool `json:"collapseWhitespace" default:"true"`
	KeepDocumentTags    bool `json:"keepDocumentTags" default:"true"`
	KeepEndTags         bool `json:"keepEndTags" default:"true"`
	KeepQuotes          bool `json:"keepQuotes"`
	KeepDefaultAttrVals bool `json:"keepDefaultAttrVals"`
	MinifyCSS           bool `json:"minifyCSS" default:"true"`
	MinifyJS            bool `json:"minifyJS" default:"true"`
	// MarkupOnly also minifies the markup-only rendering when present.
	MarkupOnly bool `json:"markupOnly" default:"true"`
}

// DefaultOptions returns Options with every default applied.
func DefaultOptions() Options {
	var opts Options
	_ = defaults.Set(&opts)
	return opts
}

// OptionsFrom binds host-supplied plugin options onto Options.
func OptionsFrom(raw plugin.Options) (Options, error) {
	var opts Options
	if err := raw.Bind(&opts); err != nil {
		return DefaultOptions(), err
	}
	return opts, nil
}
