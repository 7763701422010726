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
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNewJSONLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLoggerTo(&buf, "tds-renamer", "warn")

	logger.Info("dropped")
	logger.Warn("kept", "file", "a.pdf")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "tds-renamer", line["service"])
	assert.Equal(t, "a.pdf", line["file"])
}
