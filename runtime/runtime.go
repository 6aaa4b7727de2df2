package runtime

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/leeforge/plminify/errors"
	"github.com/leeforge/plminify/plugin"
	"go.uber.org/zap"
)

// Config holds configuration for creating a new Runtime.
type Config struct {
	Paths plugin.Paths
	// Plugins seeds the host's plugin configuration. A nil map leaves the
	// host without a plugins map, as a bare configuration file would.
	Plugins map[string]plugin.PluginRecord
	Logger  *zap.Logger
}

// Runtime is a minimal pattern library host: it owns the HostState, runs
// plugin entry points and emits pattern events.
type Runtime struct {
	logger *zap.Logger

	plugins map[string]plugin.Plugin
	mu      sync.Mutex

	state    *plugin.HostState
	eventBus *Bus
	runs     int
}

// NewRuntime creates a new runtime instance.
func NewRuntime(cfg Config) *Runtime {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	bus := NewEventBus(cfg.Logger)
	state := plugin.NewHostState(cfg.Paths, bus, cfg.Logger)
	if cfg.Plugins != nil {
		state.EnsurePlugins()
		for name, rec := range cfg.Plugins {
			state.SetPluginRecord(name, rec)
		}
	}

	return &Runtime{
		logger:   cfg.Logger,
		plugins:  make(map[string]plugin.Plugin),
		state:    state,
		eventBus: bus,
	}
}

// State returns the host state handed to plugins.
func (r *Runtime) State() *plugin.HostState {
	return r.state
}

// Events returns the host event bus.
func (r *Runtime) Events() plugin.EventBus {
	return r.eventBus
}

// Register adds a plugin. Must be called before Bootstrap.
func (r *Runtime) Register(p plugin.Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin %q already registered", name)
	}

	r.plugins[name] = p
	r.logger.Info("plugin registered", zap.String("name", name), zap.String("version", p.Version()))
	return nil
}

// Bootstrap calls every registered plugin's Init in name order. It may be
// called repeatedly; each call is one host run (e.g. a watch-mode rebuild).
func (r *Runtime) Bootstrap(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	startTime := time.Now()
	if ctx == nil {
		ctx = context.Background()
	}

	r.runs++
	runLogger := r.logger.With(zap.String("run_id", uuid.NewString()), zap.Int("run", r.runs))

	for _, name := range r.sortedNames() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("bootstrap canceled: %w", err)
		}
		if err := r.plugins[name].Init(ctx, r.state); err != nil {
			if abortErr := r.handlePluginError(runLogger, name, err); abortErr != nil {
				return abortErr
			}
		}
	}

	runLogger.Info("bootstrap completed",
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("plugins", len(r.plugins)),
	)
	return nil
}

// PatternWritten emits pattern-write-end for one pattern. Handler errors
// are returned to the caller unchanged.
func (r *Runtime) PatternWritten(ctx context.Context, p *plugin.Pattern) error {
	return r.eventBus.Publish(ctx, plugin.Event{
		Name:   plugin.EventPatternWriteEnd,
		Source: "host",
		Data:   plugin.PatternWritten{State: r.state, Pattern: p},
	})
}

// WritePatterns emits pattern-write-end for each pattern in order. A failing
// pattern does not stop the rest; failures are returned together.
func (r *Runtime) WritePatterns(ctx context.Context, patterns []*plugin.Pattern) error {
	chain := apperrors.NewErrorChain()
	for _, p := range patterns {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.PatternWritten(ctx, p); err != nil {
			r.logger.Error("pattern handler failed",
				zap.String("pattern", p.PatternPartial),
				zap.Error(err))
			chain.Add(err)
		}
	}
	return chain.Err()
}

// Publish sends an arbitrary event through the event bus.
func (r *Runtime) Publish(ctx context.Context, event plugin.Event) error {
	return r.eventBus.Publish(ctx, event)
}

// Runs returns how many times Bootstrap has been called.
func (r *Runtime) Runs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs
}

// Shutdown closes the event bus.
func (r *Runtime) Shutdown(ctx context.Context) error {
	r.eventBus.Close()
	r.logger.Info("shutdown completed")
	return nil
}

// --- Internal ---

func (r *Runtime) sortedNames() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names) // deterministic
	return names
}

func (r *Runtime) handlePluginError(logger *zap.Logger, name string, err error) error {
	opts := r.getPluginOptions(name)
	if opts.Optional {
		logger.Warn("optional plugin failed, continuing",
			zap.String("plugin", name), zap.Error(err))
		return nil
	}

	return fmt.Errorf("required plugin %q failed: %w", name, err)
}

func (r *Runtime) getPluginOptions(name string) plugin.PluginOptions {
	if p, ok := r.plugins[name].(plugin.Configurable); ok {
		return p.PluginOptions()
	}
	return plugin.PluginOptions{Optional: false}
}

// Reconfigure replaces the host's plugin records, as after a configuration
// reload. Initialized flags already set on the host are kept so handlers
// are not attached twice.
func (r *Runtime) Reconfigure(plugins map[string]plugin.PluginRecord) {
	if plugins == nil {
		return
	}
	r.state.EnsurePlugins()
	for name, rec := range plugins {
		if old, ok := r.state.PluginRecord(name); ok && old.Initialized {
			rec.Initialized = true
		}
		r.state.SetPluginRecord(name, rec)
	}
}
