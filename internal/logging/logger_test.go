package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/phambaophuc/image-thumb/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud", Format: "json"})
	require.Error(t, err)
}

func TestNew_WritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "server.log")

	logger, err := New(config.LogConfig{
		Level:      "info",
		Format:     "console",
		File:       logFile,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	})
	require.NoError(t, err)

	logger.Info("thumbnail generated")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"thumbnail generated"`)
}

func TestNew_DebugFilteredAtInfo(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "server.log")

	logger, err := New(config.LogConfig{Level: "info", Format: "json", File: logFile, MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("visible")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "visible")
}
