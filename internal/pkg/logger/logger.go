package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *slog.Logger

// ParseLevel maps a level name to a zap level. Unknown names fall back to info.
func ParseLevel(levelStr string) (zapcore.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return zapcore.DebugLevel, true
	case "", "INFO":
		return zapcore.InfoLevel, true
	case "WARN", "WARNING":
		return zapcore.WarnLevel, true
	case "ERROR":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// Init builds the zap logger for the process, routes the default slog logger into it
// and returns it for components that take a *zap.Logger directly.
// Logs go to stderr so that command output on stdout stays clean.
func Init(levelStr string) (*zap.Logger, error) {
	level, known := ParseLevel(levelStr)

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Encoding = "console"
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	zapCfg.DisableStacktrace = true

	zapLogger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}

	slogLevel := slog.LevelInfo
	switch level {
	case zapcore.DebugLevel:
		slogLevel = slog.LevelDebug
	case zapcore.WarnLevel:
		slogLevel = slog.LevelWarn
	case zapcore.ErrorLevel:
		slogLevel = slog.LevelError
	}

	handler := slogzap.Option{
		Level:  slogLevel,
		Logger: zapLogger,
	}.NewZapHandler()

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)

	if !known {
		Warn("Invalid log level string, defaulting to INFO", "input", levelStr)
	}
	return zapLogger, nil
}

func ensureInitialized() {
	if globalLogger == nil {
		globalLogger = slog.Default()
	}
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	ensureInitialized()
	if globalLogger.Enabled(context.Background(), slog.LevelDebug) {
		globalLogger.Debug(msg, args...)
	}
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	ensureInitialized()
	if globalLogger.Enabled(context.Background(), slog.LevelWarn) {
		globalLogger.Warn(msg, args...)
	}
}
