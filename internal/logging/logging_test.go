package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/homegrid/internal/config"
)

func TestNewLogger_CachedPerComponent(t *testing.T) {
	a := NewLogger("store")
	b := NewLogger("store")
	c := NewLogger("drag")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, "store", a.Data["component"])
}

func TestNewLogger_WritesThroughStandardLogger(t *testing.T) {
	var buf bytes.Buffer
	std := logrus.StandardLogger()
	prevOut, prevFmt, prevLevel := std.Out, std.Formatter, std.GetLevel()
	t.Cleanup(func() {
		std.SetOutput(prevOut)
		std.SetFormatter(prevFmt)
		std.SetLevel(prevLevel)
	})

	std.SetOutput(&buf)
	std.SetFormatter(&logrus.JSONFormatter{})
	std.SetLevel(logrus.InfoLevel)

	NewLogger("writer").WithField("id", "app-1").Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "writer", entry["component"])
	assert.Equal(t, "app-1", entry["id"])
	assert.Equal(t, "hello", entry["msg"])
}

func TestConfigure_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "homegrid.log")
	closeLog, err := Configure(config.LogConfig{Level: "warn", Format: "text", File: path}, false)
	require.NoError(t, err)

	NewLogger("test").Info("dropped")
	NewLogger("test").Warn("kept")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
	assert.True(t, strings.Contains(string(data), "component=test"))
}

func TestConfigure_EnvLevelWins(t *testing.T) {
	t.Setenv("HOMEGRID_LOG_LEVEL", "error")
	closeLog, err := Configure(config.LogConfig{Level: "debug", Format: "json"}, false)
	require.NoError(t, err)
	defer func() { _ = closeLog() }()

	assert.Equal(t, logrus.ErrorLevel, logrus.GetLevel())
}

func TestConfigure_Debug(t *testing.T) {
	t.Chdir(t.TempDir())

	closeLog, err := Configure(config.LogConfig{Level: "info", Format: "text"}, true)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	NewLogger("tui").Debug("traced")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(DebugLogPath)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "traced", entry["msg"])
}
