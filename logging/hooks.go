package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Hook is called for each log entry that passes the level check.
type Hook func(entry zapcore.Entry) error

// hookCore wraps a zapcore.Core and calls hooks on each written entry.
type hookCore struct {
	zapcore.Core
	hooks []Hook
}

// Check implements zapcore.Core.
func (c *hookCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}
	return ce
}

// Write implements zapcore.Core. Hook errors never block the write.
func (c *hookCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	for _, hook := range c.hooks {
		_ = hook(entry)
	}
	return c.Core.Write(entry, fields)
}

// With implements zapcore.Core.
func (c *hookCore) With(fields []zapcore.Field) zapcore.Core {
	return &hookCore{
		Core:  c.Core.With(fields),
		hooks: c.hooks,
	}
}

// WithHooks returns a logger that runs hooks for every entry it writes.
func WithHooks(logger *zap.Logger, hooks ...Hook) *zap.Logger {
	if len(hooks) == 0 {
		return logger
	}
	return logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &hookCore{Core: core, hooks: hooks}
	}))
}

// LevelCounter counts written entries per level. The build command uses it
// to report how many failures were logged and skipped over.
type LevelCounter struct {
	mu     sync.Mutex
	counts map[zapcore.Level]int
}

// NewLevelCounter creates an empty counter.
func NewLevelCounter() *LevelCounter {
	return &LevelCounter{counts: make(map[zapcore.Level]int)}
}

// Hook returns the Hook that feeds the counter.
func (c *LevelCounter) Hook() Hook {
	return func(entry zapcore.Entry) error {
		c.mu.Lock()
		c.counts[entry.Level]++
		c.mu.Unlock()
		return nil
	}
}

// Count returns how many entries at level were written.
func (c *LevelCounter) Count(level zapcore.Level) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[level]
}

// Reset clears all counts.
func (c *LevelCounter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.counts)
}
