package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"info", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"WARN", LevelWarn, false},
		{"error", LevelError, false},
		{"invalid", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "INFO", LevelInfo.String())
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(42).String())
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetLevel(LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	output := buf.String()
	require.NotContains(t, output, "debug message")
	require.NotContains(t, output, "info message")
	require.Contains(t, output, "warn message")
	require.Contains(t, output, "error message")
}

func TestLogger_LogFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetLevel(LevelDebug)

	l.Info("test message with %s", "formatting")

	output := buf.String()
	require.Contains(t, output, "[INFO]")
	require.Contains(t, output, "test message with formatting")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)

	l.With("product_id", "prod_1").Info("attached")

	output := buf.String()
	require.Contains(t, output, "attached")
	require.Contains(t, output, "prod_1")
}

func TestLogger_EnvVarLogLevel(t *testing.T) {
	t.Setenv("ATTACHR_LOG_LEVEL", "debug")

	l := New()
	require.Equal(t, LevelDebug, l.Level())
}

func TestLogger_EnvVarLogFile(t *testing.T) {
	tmpPath := filepath.Join(t.TempDir(), "attachr.log")
	t.Setenv("ATTACHR_LOG_FILE", tmpPath)

	l := New()
	l.Info("test message")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(tmpPath)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(content), "test message"))
}

func TestLogger_CloseWithoutFile(t *testing.T) {
	l := New()
	require.NoError(t, l.Close())
	// Logging after close must not panic.
	l.Info("after close")
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	Default.SetOutput(&buf)
	Default.SetLevel(LevelDebug)
	t.Cleanup(func() {
		Default.SetLevel(LevelInfo)
	})

	Debug("debug %s", "test")
	Info("info %s", "test")
	Warn("warn %s", "test")
	Error("error %s", "test")

	output := buf.String()
	require.Contains(t, output, "debug test")
	require.Contains(t, output, "info test")
	require.Contains(t, output, "warn test")
	require.Contains(t, output, "error test")
}
