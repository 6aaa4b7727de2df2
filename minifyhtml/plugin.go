// Package minifyhtml is the pattern library plugin that minifies each
// pattern's HTML after the host writes it.
//
// On init it publishes its frontend descriptor and bundled assets into the
// public tree and attaches its pattern-write-end handler exactly once per
// host, no matter how often the host runs plugin setup.
package minifyhtml

import (
	"context"
	"io/fs"
	"os"

	"github.com/leeforge/plminify/assets"
	apperrors "github.com/leeforge/plminify/errors"
	"github.com/leeforge/plminify/minify"
	"github.com/leeforge/plminify/plugin"
	"go.uber.org/zap"
)

const (
	// PluginName is the plugin's key in the host's plugins configuration.
	PluginName = "plugin-node-minify-html"

	// Version is the plugin release.
	Version = "1.0.0"

	shortName = "pl-minify"
)

// Plugin implements plugin.Plugin.
type Plugin struct {
	assets fs.FS
	minify MinifyFunc
	logger *zap.Logger
	exit   func(code int)
	gate   *Gate
}

var (
	_ plugin.Plugin       = (*Plugin)(nil)
	_ plugin.Describer    = (*Plugin)(nil)
	_ plugin.Configurable = (*Plugin)(nil)
)

// Option configures a Plugin.
type Option func(*Plugin)

// WithAssets replaces the bundled asset tree. Files are expected under dist/.
func WithAssets(fsys fs.FS) Option {
	return func(p *Plugin) { p.assets = fsys }
}

// WithMinifier replaces the pattern minification routine.
func WithMinifier(fn MinifyFunc) Option {
	return func(p *Plugin) { p.minify = fn }
}

// WithLogger sets the logger used before a host is available.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Plugin) { p.logger = logger }
}

// WithExit replaces os.Exit for the missing host case.
func WithExit(exit func(code int)) Option {
	return func(p *Plugin) { p.exit = exit }
}

// New creates the plugin.
func New(opts ...Option) *Plugin {
	p := &Plugin{
		assets: assets.FS,
		minify: minify.PatternFunc(PluginName),
		logger: zap.NewNop(),
		exit:   os.Exit,
		gate:   NewGate(PluginName),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Plugin) Name() string    { return PluginName }
func (p *Plugin) Version() string { return Version }

// Descriptor returns the frontend descriptor without host options.
func (p *Plugin) Descriptor() plugin.Descriptor {
	return Frontend()
}

func (p *Plugin) PluginOptions() plugin.PluginOptions {
	return plugin.PluginOptions{
		Optional:    false,
		Description: "Minifies pattern HTML after each pattern is written",
	}
}

// Gate returns the plugin's registration gate.
func (p *Plugin) Gate() *Gate {
	return p.gate
}

// Init publishes the descriptor and assets, then registers the
// pattern-write-end handler if the host has not seen it yet. Only a missing
// host is fatal; write failures are logged and the remaining steps run.
func (p *Plugin) Init(ctx context.Context, host *plugin.HostState) error {
	if host == nil {
		err := apperrors.NewPrecondition("host state not provided to plugin init")
		p.logger.Error("plugin init aborted", zap.String("plugin", PluginName), zap.Error(err))
		p.exit(1)
		return err
	}
	logger := host.Log().With(zap.String("plugin", PluginName))

	rec, ok := host.PluginRecord(PluginName)
	var recp *plugin.PluginRecord
	if ok {
		recp = &rec
	}
	desc := Frontend().WithOptions(recp)

	if path, err := WriteConfig(host.Paths.PublicRoot, PluginName, desc); err != nil {
		logFailure(logger, "error occurred while writing plugin configuration", err)
	} else {
		logger.Debug("plugin configuration written", zap.String("path", path))
	}

	host.AddDescriptor(desc)

	if desc.Options.Truthy() {
		report := PublishAssets(p.assets, AssetRoot(host.Paths.PublicRoot, PluginName))
		for _, failure := range report.Failures.Errors() {
			logFailure(logger, "error occurred while copying plugin file", failure)
		}
		logger.Debug("plugin assets published",
			zap.Int("written", len(report.Written)),
			zap.Int("failed", report.Failures.Len()))
	}

	if p.gate.Register(host, NewHandler(p.minify)) {
		logger.Info("pattern handler registered", zap.String("event", plugin.EventPatternWriteEnd))
	}
	return nil
}

func logFailure(logger *zap.Logger, msg string, err error) {
	fields := []zap.Field{zap.Error(err)}
	if appErr := apperrors.FromError(err); appErr != nil {
		if path := appErr.Detail(apperrors.DetailPath); path != "" {
			fields = append(fields, zap.String("path", path))
		}
		if len(appErr.Stack) > 0 {
			fields = append(fields, zap.String("stack", appErr.StackTrace()))
		}
	}
	logger.Error(msg, fields...)
}
