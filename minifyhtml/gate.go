package minifyhtml

import (
	"context"
	"fmt"

	"github.com/leeforge/plminify/plugin"
)

// MinifyFunc rewrites one written pattern's output.
type MinifyFunc func(host *plugin.HostState, p *plugin.Pattern) error

// Gate attaches a plugin's pattern-write handler to the host at most once,
// tracked by the Initialized flag of the plugin's host record.
type Gate struct {
	name string
}

// NewGate creates a gate for the named plugin record.
func NewGate(name string) *Gate {
	return &Gate{name: name}
}

// Register subscribes handler to pattern-write-end when the plugin's record
// exists, is enabled and is not yet initialized, then marks it initialized.
// It reports whether a subscription was made. A host without a plugins map
// gets an empty one.
//
// The check and the subscribe are separate steps; callers must serialize
// Register calls for the same host, as Runtime.Bootstrap does.
func (g *Gate) Register(host *plugin.HostState, handler plugin.EventHandler) bool {
	host.EnsurePlugins()

	rec, ok := host.PluginRecord(g.name)
	if !ok || !rec.Enabled || rec.Initialized {
		return false
	}

	host.Events.Subscribe(plugin.EventPatternWriteEnd, handler)
	host.MarkInitialized(g.name)
	return true
}

// State reports the plugin's registration state on host.
func (g *Gate) State(host *plugin.HostState) plugin.RegistrationState {
	return host.RegistrationState(g.name)
}

// NewHandler returns the pattern-write-end handler. It passes the written
// pattern to minify and returns minify's error unchanged.
func NewHandler(minify MinifyFunc) plugin.EventHandler {
	return func(ctx context.Context, e plugin.Event) error {
		written, ok := e.Data.(plugin.PatternWritten)
		if !ok {
			return fmt.Errorf("%w: %T", plugin.ErrUnexpectedPayload, e.Data)
		}
		return minify(written.State, written.Pattern)
	}
}
