package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, LevelError, ParseLogLevel("error"))
	assert.Equal(t, LevelInfo, ParseLogLevel("nonsense"))
	assert.Equal(t, "WARN", LevelWarn.String())
}

func TestNewLoggerRequiresOutput(t *testing.T) {
	_, err := NewLogger(LoggerOptions{Level: "info"})
	assert.Error(t, err)
}

func TestLoggerTextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{level: LevelInfo, fields: map[string]interface{}{}}
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	logger.Debug("hidden")
	logger.With(F("reason", "alarm")).Info("rendered", F("groups", 2))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] rendered groups=2 reason=alarm")
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{level: LevelDebug, fields: map[string]interface{}{}}
	logger.AddOutput(NewConsoleOutput(&buf, FormatJSON))

	logger.Warnf("threshold %d", 1000)

	var entry LogEntry
	require.NoError(t, sonic.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, "threshold 1000", entry.Message)
}

func TestLoggerFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := NewLogger(LoggerOptions{Level: "debug", File: path})
	require.NoError(t, err)

	logger.Debugf("value=%d", 7)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] value=7")
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{level: LevelDebug, fields: map[string]interface{}{}}
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))
	SetLogger(logger)
	defer SetLogger(nil)

	LogDebugf("debug %s", "line")
	LogError("failure")
	LogErrorf("failure %d", 2)

	assert.Contains(t, buf.String(), "[DEBUG] debug line")
	assert.Contains(t, buf.String(), "[ERROR] failure")
	assert.Contains(t, buf.String(), "[ERROR] failure 2")
}
