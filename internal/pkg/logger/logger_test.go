package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  zapcore.Level
		known bool
	}{
		{in: "debug", want: zapcore.DebugLevel, known: true},
		{in: "", want: zapcore.InfoLevel, known: true},
		{in: "INFO", want: zapcore.InfoLevel, known: true},
		{in: "warning", want: zapcore.WarnLevel, known: true},
		{in: " warn ", want: zapcore.WarnLevel, known: true},
		{in: "error", want: zapcore.ErrorLevel, known: true},
		{in: "verbose", want: zapcore.InfoLevel, known: false},
	}
	for _, tt := range tests {
		got, known := ParseLevel(tt.in)
		require.Equal(t, tt.want, got, tt.in)
		require.Equal(t, tt.known, known, tt.in)
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	require.NotPanics(t, func() {
		l.Info("info", "k", "v")
		l.With("component", "test").Debug("debug")
		l.Warn("warn")
		l.Error("error", "err", "boom")
	})
}

func TestGlobalHelpersBeforeInit(t *testing.T) {
	require.NotPanics(t, func() {
		Debug("debug", "k", 1)
		Warn("warn", "k", 2)
		NewSlogAdapter().With("component", "test").Info("info")
	})
}
