package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpuslabs/ragstore/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, parseLevel("INFO"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.Info("store written", "entries", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "store written", record["msg"])
	assert.Equal(t, float64(3), record["entries"])
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LogFormatJSON, "WARN")

	logger.Info("should be dropped")
	logger.Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should be dropped")
	assert.Contains(t, out, "should appear")
}

func TestTerminalHandler_Output(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LogFormatPretty, "DEBUG")

	logger.Info("search completed", "k", 5, "path", "some path")

	out := buf.String()
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "search completed")
	assert.Contains(t, out, "k=")
	// Values containing spaces are quoted.
	assert.Contains(t, out, `"some path"`)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestTerminalHandler_LevelTags(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LogFormatPretty, "DEBUG")

	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e")

	out := buf.String()
	assert.Contains(t, out, "DBG")
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "ERR")
}

func TestTerminalHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LogFormatPretty, "INFO")

	logger.With("component", "ingest").WithGroup("store").Info("written", "entries", 2)

	out := buf.String()
	assert.Contains(t, out, "component=")
	assert.Contains(t, out, "ingest")
	assert.Contains(t, out, "store.entries=")
}

func TestNew_FormatSelection(t *testing.T) {
	pretty := New(config.NewAppConfig(config.WithLogFormat(config.LogFormatPretty)))
	jsonLogger := New(config.NewAppConfig(config.WithLogFormat(config.LogFormatJSON)))

	_, isTerminal := pretty.Handler().(*terminalHandler)
	assert.True(t, isTerminal)
	_, isJSON := jsonLogger.Handler().(*slog.JSONHandler)
	assert.True(t, isJSON)
}
