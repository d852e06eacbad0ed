package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewJSONWritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Format: "json", Level: "info", Output: &buf})

	logger.Named("collector").Info("RAM #1", zap.Int("index", 1), zap.String("FormFactor", "DIMM"))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "RAM #1", entry["msg"])
	assert.Equal(t, "collector", entry["logger"])
	assert.Equal(t, float64(1), entry["index"])
	assert.Equal(t, "DIMM", entry["FormFactor"])
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Format: "console", Level: "warn", Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"), out)
	assert.True(t, strings.Contains(out, "shown"), out)
	assert.True(t, strings.Contains(out, "WARN"), out)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"trace":   zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
