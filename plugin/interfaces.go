package plugin

import (
	"context"
)

// Plugin is the minimal interface every plugin must implement.
type Plugin interface {
	Name() string
	Version() string
	// Init is the plugin entry point. The host may call it more than once,
	// e.g. on every rebuild in watch mode.
	Init(ctx context.Context, host *HostState) error
}

// --- Optional Capability Interfaces ---
// Runtime detects these via type assertion: if p, ok := plugin.(Describer); ok { ... }

// Describer -- expose the frontend descriptor without running Init.
type Describer interface {
	Descriptor() Descriptor
}

// Configurable -- declare plugin options (optional flag, description).
type Configurable interface {
	PluginOptions() PluginOptions
}

// PluginOptions holds declarative metadata about a plugin.
type PluginOptions struct {
	Optional    bool   // If true, an Init error does not abort the build.
	Description string // Human-readable description.
}
