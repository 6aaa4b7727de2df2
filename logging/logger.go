// Package logging builds the zap logger shared by the host and its plugins.
package logging

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logger from config. Terminal output goes to stderr; file
// output goes to one rotated file per level under config.Director. The
// returned func closes the log files.
func New(config Config, hooks ...Hook) (*zap.Logger, func() error) {
	var (
		cores []zapcore.Core
		files []*lumberjack.Logger
	)

	minLevel := config.TransportLevel()
	if config.LogInTerminal {
		enc := config
		enc.Format = "console"
		cores = append(cores, zapcore.NewCore(encoder(enc), zapcore.Lock(os.Stderr), minLevel))
	}
	if config.LogToFile {
		for level := minLevel; level <= zapcore.FatalLevel; level++ {
			w := levelFile(config, level)
			files = append(files, w)
			cores = append(cores, zapcore.NewCore(encoder(config), zapcore.AddSync(w), exactly(level)))
		}
	}

	closeFiles := func() error {
		var errs []error
		for _, f := range files {
			errs = append(errs, f.Close())
		}
		return errors.Join(errs...)
	}
	if len(cores) == 0 {
		return zap.NewNop(), closeFiles
	}

	logger := zap.New(zapcore.NewTee(cores...))
	if config.ShowLineNumber {
		logger = logger.WithOptions(zap.AddCaller())
	}
	return WithHooks(logger, hooks...), closeFiles
}

func encoder(config Config) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    config.ZapEncodeLevel(),
		EncodeTime:     zapcore.TimeEncoderOfLayout(config.TimeFormat),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	if config.Format == "json" {
		encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func levelFile(config Config, level zapcore.Level) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(config.Director, level.String()+".log"),
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
		LocalTime:  true,
	}
}

func exactly(level zapcore.Level) zap.LevelEnablerFunc {
	return func(l zapcore.Level) bool {
		return l == level
	}
}

// Since is shorthand for a duration field measured from start.
func Since(start time.Time) zap.Field {
	return zap.Duration("duration", time.Since(start))
}
