package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/plan-analytics/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ConsoleOnly(t *testing.T) {
	// Given
	var buf bytes.Buffer

	// When
	logger, closer, err := New(config.LogConfig{Level: "warn"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info().Msg("hidden")
	logger.Warn().Str("calculator", "npv").Msg("shown")

	// Then
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "calculator=npv")
	assert.NotContains(t, buf.String(), "\x1b[", "no colour when not a terminal")
}

func TestNew_RotatingFile(t *testing.T) {
	// Given
	path := filepath.Join(t.TempDir(), "logs", "analytics.log")
	var buf bytes.Buffer

	// When
	logger, closer, err := New(config.LogConfig{Level: "debug", File: path, MaxSizeMB: 1, MaxBackups: 1}, &buf)
	require.NoError(t, err)
	logger.Debug().Msg("to both sinks")
	require.NoError(t, closer.Close())

	// Then
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"to both sinks"`)
	assert.Contains(t, buf.String(), "to both sinks")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "loud"}, nil)
	assert.Error(t, err)
}
