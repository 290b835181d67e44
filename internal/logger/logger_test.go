package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry LogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line %q is not JSON", line)
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: DEBUG, Format: JSONFormat, Output: &buf, Component: "test"})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message", nil)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 4)
	assert.Equal(t, "DEBUG", entries[0].Level)
	assert.Equal(t, "ERROR", entries[3].Level)
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: WARN, Format: JSONFormat, Output: &buf, Component: "test"})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message", nil)

	assert.Len(t, decodeLines(t, &buf), 2)
}

func TestSetLevelAppliesToChildren(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: INFO, Format: JSONFormat, Output: &buf})
	child := base.WithComponent("child")

	base.SetLevel(ERROR)
	child.Info("dropped")
	child.Error("kept", nil)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Message)
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: JSONFormat, Output: &buf, Component: "test-component"})

	log.Info("test message", map[string]interface{}{"key1": "value1", "key2": 42})

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "test message", entry.Message)
	assert.Equal(t, "test-component", entry.Component)
	assert.Equal(t, "value1", entry.Fields["key1"])
	assert.Equal(t, float64(42), entry.Fields["key2"])
	assert.NotEmpty(t, entry.Timestamp)
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: TextFormat, Output: &buf, Component: "test-component"})

	log.Info("test message", map[string]interface{}{"key1": "value1"})

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "[test-component]")
	assert.Contains(t, out, "test message")
	assert.Contains(t, out, `"key1": "value1"`)
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: INFO, Format: JSONFormat, Output: &buf, Component: "base"})

	base.WithComponent("specific-component").Info("test message")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "specific-component", entries[0].Component)
}

func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: ERROR, Format: JSONFormat, Output: &buf})

	log.Error("operation failed", errors.New("test error"), map[string]interface{}{"operation": "test_op"})

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "test error", entries[0].Error)
	assert.Equal(t, "test_op", entries[0].Fields["operation"])
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	original := GetGlobalLogger()
	t.Cleanup(func() { SetGlobalLogger(original) })

	SetGlobalLogger(New(Config{Level: DEBUG, Format: JSONFormat, Output: &buf, Component: "global-test"}))
	Debug("global debug message")
	Info("global info message")
	Warn("global warn message")
	Error("global error message", errors.New("boom"))
	Component("loader").Info("scoped message")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 5)
	assert.Equal(t, "DEBUG", entries[0].Level)
	assert.Equal(t, "INFO", entries[1].Level)
	assert.Equal(t, "global info message", entries[1].Message)
	assert.Equal(t, "WARN", entries[2].Level)
	assert.Equal(t, "boom", entries[3].Error)
	assert.Equal(t, "loader", entries[4].Component)
}

func TestConfigureSwitchesLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	original := GetGlobalLogger()
	t.Cleanup(func() { SetGlobalLogger(original) })

	SetGlobalLogger(New(Config{Level: INFO, Format: JSONFormat, Output: &buf, Component: "cfg"}))
	Configure("warn", "text")
	Info("dropped")
	Warn("kept", map[string]interface{}{"route": "/tiempo"})

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "[cfg]")
	assert.Contains(t, out, `"route": "/tiempo"`)
	assert.False(t, strings.HasPrefix(strings.TrimSpace(out), "{"))

	buf.Reset()
	Configure("", "")
	Info("still filtered")
	assert.Empty(t, buf.String())
}

func TestNewDefaultAndSync(t *testing.T) {
	log := NewDefault()
	require.NotNil(t, log)
	assert.Equal(t, JSONFormat, log.format)

	var buf bytes.Buffer
	buffered := New(Config{Level: INFO, Format: JSONFormat, Output: &buf})
	buffered.Info("flushed")
	assert.NoError(t, buffered.Sync())
	assert.Contains(t, buf.String(), "flushed")
}

func TestFormattedLogging(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: JSONFormat, Output: &buf})

	log.Infof("surface %s rendered in %d ms", "sales-by-region-chart", 12)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "surface sales-by-region-chart rendered in 12 ms", entries[0].Message)
}

func TestParseLevelAndFormat(t *testing.T) {
	assert.Equal(t, DEBUG, parseLogLevel("debug"))
	assert.Equal(t, WARN, parseLogLevel("WARNING"))
	assert.Equal(t, LogLevel(-1), parseLogLevel("chatty"))
	assert.Equal(t, TextFormat, parseLogFormat("text"))
	assert.Equal(t, JSONFormat, parseLogFormat("JSON"))
	assert.Equal(t, LogFormat(-1), parseLogFormat("xml"))
}

func TestLogLevelString(t *testing.T) {
	for level, want := range map[LogLevel]string{
		DEBUG: "DEBUG", INFO: "INFO", WARN: "WARN", ERROR: "ERROR", FATAL: "FATAL", LogLevel(42): "UNKNOWN",
	} {
		assert.Equal(t, want, level.String())
	}
}

func BenchmarkJSONLogging(b *testing.B) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: JSONFormat, Output: &buf})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Info("benchmark message", map[string]interface{}{"iteration": i})
	}
}
