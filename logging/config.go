package logging

import (
	"strings"

	"github.com/creasty/defaults"
	"go.uber.org/zap/zapcore"
)

// Config represents the logger configuration.
type Config struct {
	// Director is the directory where per-level log files are stored.
	Director string `mapstructure:"director" json:"director" default:"logs"`

	// Level is the minimum log level (debug, info, warn, error, dpanic, panic, fatal).
	Level string `mapstructure:"level" json:"level" default:"info"`

	// Format is the log format (json or console).
	Format string `mapstructure:"format" json:"format" default:"console"`

	// EncodeLevel is the level encoder type (LowercaseLevelEncoder, LowercaseColorLevelEncoder, CapitalLevelEncoder, CapitalColorLevelEncoder).
	EncodeLevel string `mapstructure:"encode-level" json:"encodeLevel" default:"CapitalColorLevelEncoder"`

	// TimeFormat is the time format string (uses Go time format).
	TimeFormat string `mapstructure:"time-format" json:"timeFormat" default:"2006/01/02 - 15:04:05"`

	// LogInTerminal writes entries to stderr.
	LogInTerminal bool `mapstructure:"log-in-terminal" json:"logInTerminal" default:"true"`

	// LogToFile writes entries to <Director>/<level>.log.
	LogToFile bool `mapstructure:"log-to-file" json:"logToFile"`

	MaxAge     int  `mapstructure:"max-age" json:"maxAge" default:"7"`
	MaxSize    int  `mapstructure:"max-size" json:"maxSize" default:"100"`
	MaxBackups int  `mapstructure:"max-backups" json:"maxBackups" default:"10"`
	Compress   bool `mapstructure:"compress" json:"compress" default:"true"`

	// ShowLineNumber enables adding caller information to log entries.
	ShowLineNumber bool `mapstructure:"show-line-number" json:"showLineNumber"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	var c Config
	_ = defaults.Set(&c)
	return c
}

// TransportLevel converts the string level to zapcore.Level. Unknown
// levels fall back to info.
func (c Config) TransportLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(strings.ToLower(c.Level))
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// ZapEncodeLevel returns the zapcore.LevelEncoder based on EncodeLevel.
func (c Config) ZapEncodeLevel() zapcore.LevelEncoder {
	switch c.EncodeLevel {
	case "LowercaseColorLevelEncoder":
		return zapcore.LowercaseColorLevelEncoder
	case "CapitalLevelEncoder":
		return zapcore.CapitalLevelEncoder
	case "CapitalColorLevelEncoder":
		return zapcore.CapitalColorLevelEncoder
	default:
		return zapcore.LowercaseLevelEncoder
	}
}
