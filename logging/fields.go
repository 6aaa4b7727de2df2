package logging

import (
	"context"

	"go.uber.org/zap"
)

// Field keys shared across packages.
const (
	PluginKey  = "plugin"
	PatternKey = "pattern"
	PathKey    = "path"
	RequestKey = "request_id"
)

func Plugin(name string) zap.Field     { return zap.String(PluginKey, name) }
func Pattern(partial string) zap.Field { return zap.String(PatternKey, partial) }
func Path(path string) zap.Field       { return zap.String(PathKey, path) }

// loggerKey is the context key for storing a logger in context.
type loggerKey struct{}

// FromContext returns the logger stored in ctx, or zap's global logger.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
			return l
		}
	}
	return zap.L()
}

// ToContext stores the logger in the context.
func ToContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}
