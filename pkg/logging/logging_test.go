package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_JSONAttributes(t *testing.T) {
	t.Setenv(LevelEnv, "")
	var buf bytes.Buffer

	logger := New(Options{Module: "swnetcfg", Version: "v1.2.3", JSON: true, Writer: &buf})
	logger.Info("hello", slog.String("k", "v"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "swnetcfg", rec["module"])
	assert.Equal(t, "v1.2.3", rec["version"])
	assert.Equal(t, "v", rec["k"])
}

func TestNew_LevelFromEnv(t *testing.T) {
	t.Setenv(LevelEnv, "error")
	var buf bytes.Buffer

	logger := New(Options{Writer: &buf})
	logger.Warn("dropped")
	assert.Empty(t, buf.String())

	logger.Error("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_DebugOverridesEnv(t *testing.T) {
	t.Setenv(LevelEnv, "error")
	var buf bytes.Buffer

	New(Options{Debug: true, Writer: &buf}).Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestSetDefaultStructuredLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	SetDefaultStructuredLogger(Options{Module: "m", Writer: &buf})
	slog.Info("via default")
	assert.Contains(t, buf.String(), "module=m")
}
