package plugin

import (
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Paths holds the host output locations a plugin may write to.
type Paths struct {
	PublicRoot     string
	PublicPatterns string // defaults to <PublicRoot>/patterns
}

// HostState is the host-owned context passed by reference to every plugin
// operation. Plugin state is only read and written through its accessors.
type HostState struct {
	Paths  Paths
	Events EventBus
	Logger *zap.Logger

	mu          sync.RWMutex
	plugins     map[string]*PluginRecord // nil until EnsurePlugins or SetPluginRecord
	descriptors []*Descriptor
}

// NewHostState creates a host context without a plugins map.
func NewHostState(paths Paths, events EventBus, logger *zap.Logger) *HostState {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HostState{
		Paths:  paths,
		Events: events,
		Logger: logger,
	}
}

// PatternsDir returns the folder patterns are written to.
func (h *HostState) PatternsDir() string {
	if h.Paths.PublicPatterns != "" {
		return h.Paths.PublicPatterns
	}
	return filepath.Join(h.Paths.PublicRoot, "patterns")
}

// Log returns the host logger, never nil.
func (h *HostState) Log() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

// HasPlugins reports whether the plugins map exists.
func (h *HostState) HasPlugins() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.plugins != nil
}

// EnsurePlugins creates an empty plugins map if none exists. Existing entries are kept.
func (h *HostState) EnsurePlugins() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.plugins == nil {
		h.plugins = make(map[string]*PluginRecord)
	}
}

// PluginRecord returns a copy of the named plugin's record.
func (h *HostState) PluginRecord(name string) (PluginRecord, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	rec, ok := h.plugins[name]
	if !ok || rec == nil {
		return PluginRecord{}, false
	}
	return *rec, true
}

// SetPluginRecord stores the named plugin's record, creating the plugins map if needed.
func (h *HostState) SetPluginRecord(name string, rec PluginRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.plugins == nil {
		h.plugins = make(map[string]*PluginRecord)
	}
	h.plugins[name] = &rec
}

// MarkInitialized sets the Initialized flag. Returns false if no record exists.
func (h *HostState) MarkInitialized(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	rec, ok := h.plugins[name]
	if !ok || rec == nil {
		return false
	}
	rec.Initialized = true
	return true
}

// RegistrationState reports the named plugin's registration state.
func (h *HostState) RegistrationState(name string) RegistrationState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.plugins[name].State()
}

// AddDescriptor appends a plugin descriptor to the host's list.
func (h *HostState) AddDescriptor(d *Descriptor) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.descriptors = append(h.descriptors, d)
}

// Descriptors returns a snapshot of the appended descriptors.
func (h *HostState) Descriptors() []*Descriptor {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]*Descriptor{}, h.descriptors...)
}
