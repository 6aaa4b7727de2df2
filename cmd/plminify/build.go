package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/leeforge/plminify/config"
	"github.com/leeforge/plminify/logging"
	"github.com/leeforge/plminify/minifyhtml"
	"github.com/leeforge/plminify/runtime"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// buildConfig holds configuration for the build command.
type buildConfig struct {
	watch bool
	only  string
}

func newBuildCmd(rc *rootConfig) *cobra.Command {
	cfg := &buildConfig{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Publish plugin files and minify written patterns",
		Long: `Run plugin setup against the configured public folder, then emit
pattern-write-end for every pattern found under the public patterns folder.
With --watch, setup and minification run again whenever the configuration
changes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runBuild(ctx, cmd, rc, cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.watch, "watch", false, "rebuild when the configuration changes")
	cmd.Flags().StringVar(&cfg.only, "only", "", "glob limiting which patterns are minified, e.g. 'atoms-*'")

	return cmd
}

func runBuild(ctx context.Context, cmd *cobra.Command, rc *rootConfig, cfg *buildConfig) error {
	loader, hc, err := rc.load()
	if err != nil {
		return err
	}

	var match glob.Glob
	if cfg.only != "" {
		if match, err = glob.Compile(cfg.only); err != nil {
			return fmt.Errorf("invalid --only pattern %q: %w", cfg.only, err)
		}
	}

	counter := logging.NewLevelCounter()
	logger, closeLogs := logging.New(hc.Logging, counter.Hook())
	defer closeLogs()

	rt := runtime.NewRuntime(hc.Runtime(loader.Dir(), logger))
	defer rt.Shutdown(context.Background())

	if err := rt.Register(minifyhtml.New(minifyhtml.WithLogger(logger))); err != nil {
		return err
	}

	b := &builder{
		rt:      rt,
		match:   match,
		counter: counter,
		logger:  logger,
		out:     cmd.OutOrStdout(),
	}

	err = b.run(ctx)
	if !cfg.watch {
		return err
	}
	if err != nil {
		logger.Error("build failed", zap.Error(err))
	}

	logger.Info("watching configuration", zap.Strings("files", loader.Files()))
	return loader.Watch(ctx, func(e fsnotify.Event) {
		var next config.HostConfig
		if err := loader.Bind(&next); err != nil {
			logger.Error("configuration reload failed", zap.Error(err))
			return
		}
		logger.Info("configuration changed, rebuilding", logging.Path(e.Name))

		rt.Reconfigure(next.Runtime(loader.Dir(), logger).Plugins)
		if err := b.run(ctx); err != nil {
			logger.Error("rebuild failed", zap.Error(err))
		}
	})
}

// builder runs one host pass: plugin setup, then one pattern-write-end per
// written pattern.
type builder struct {
	rt      *runtime.Runtime
	match   glob.Glob
	counter *logging.LevelCounter
	logger  *zap.Logger
	out     io.Writer
}

func (b *builder) run(ctx context.Context) error {
	start := time.Now()
	b.counter.Reset()

	if err := b.rt.Bootstrap(ctx); err != nil {
		return err
	}

	dir := b.rt.State().PatternsDir()
	patterns, err := runtime.DiscoverPatterns(dir, b.match)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		b.logger.Warn("no patterns folder, nothing to minify", logging.Path(dir))
	}

	err = b.rt.WritePatterns(ctx, patterns)

	fmt.Fprintf(b.out, "minified %d patterns in %s (%d errors logged)\n",
		len(patterns), time.Since(start).Round(time.Millisecond), b.counter.Count(zapcore.ErrorLevel))
	return err
}
