package logger

import (
	"context"
	"log/slog"

	"contract_cli/internal/app/port"
)

// slogAdapter implements port.Logger on top of slog. A nil base means the package-global logger.
type slogAdapter struct {
	base *slog.Logger
}

// NewSlogAdapter returns a port.Logger that writes through the package-global logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

// NewNopLogger returns a port.Logger that discards everything. Used by tests.
func NewNopLogger() port.Logger {
	return &slogAdapter{base: slog.New(discardHandler{})}
}

func (a *slogAdapter) logger() *slog.Logger {
	if a.base != nil {
		return a.base
	}
	ensureInitialized()
	return globalLogger
}

func (a *slogAdapter) Info(msg string, args ...any) {
	a.logger().Info(msg, args...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	a.logger().Debug(msg, args...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	a.logger().Warn(msg, args...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	a.logger().Error(msg, args...)
}

// With binds args to every record of the returned logger.
func (a *slogAdapter) With(args ...any) port.Logger {
	return &slogAdapter{base: a.logger().With(args...)}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
