package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoFile_UsesDefaults(t *testing.T) {
	// When
	cfg, err := Load("")

	// Then
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 0.10, cfg.Engine.IRR.InitialGuess)
	assert.Equal(t, 1000, cfg.Engine.IRR.MaxIterations)
	assert.Equal(t, 1e-6, cfg.Engine.IRR.Tolerance)
	assert.Equal(t, 1.0, cfg.Engine.IRR.ResidualThreshold)
	assert.Equal(t, 0.10, cfg.Engine.NPV.DefaultDiscountRate)
	assert.Equal(t, 10000, cfg.Engine.MonteCarlo.DefaultIterations)
	assert.Equal(t, 50000, cfg.Engine.MonteCarlo.MaxIterations)
	assert.Equal(t, 20, cfg.Engine.MonteCarlo.HistogramBins)
	assert.Equal(t, 10, cfg.Engine.Attribution.MaxChannels)
	assert.Equal(t, 10.0, cfg.Engine.Prioritization.EffortScale)
}

func TestLoad_ValidYAML_OverridesDefaults(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "analytics.yaml")
	content := `server:
  port: 9090
  shutdown_timeout: 30s
  cors_origins:
    - "https://planner.example.com"
log:
  level: debug
engine:
  monte_carlo:
    max_iterations: 20000
    workers: 2
  attribution:
    max_channels: 6
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// When
	cfg, err := Load(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"https://planner.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 20000, cfg.Engine.MonteCarlo.MaxIterations)
	assert.Equal(t, 2, cfg.Engine.MonteCarlo.Workers)
	assert.Equal(t, 10000, cfg.Engine.MonteCarlo.DefaultIterations, "unset keys keep defaults")
	assert.Equal(t, 6, cfg.Engine.Attribution.MaxChannels)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "analytics.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644))
	t.Setenv("ANALYTICS_SERVER_PORT", "7070")
	t.Setenv("ANALYTICS_LOG_LEVEL", "warn")

	// When
	cfg, err := Load(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingFile_ReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: port: : bad"), 0o644))

	// When
	_, err := Load(path)

	// Then
	assert.Error(t, err)
}

func TestLoad_InvalidValues_ReturnsError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"PortOutOfRange", "server:\n  port: 70000\n"},
		{"ZeroMaxIterations", "engine:\n  monte_carlo:\n    max_iterations: 0\n"},
		{"MaxIterationsAboveCap", "engine:\n  monte_carlo:\n    max_iterations: 80000\n"},
		{"ZeroHistogramBins", "engine:\n  monte_carlo:\n    histogram_bins: 0\n"},
		{"ZeroWorkers", "engine:\n  monte_carlo:\n    workers: 0\n"},
		{"ZeroChunkSize", "engine:\n  monte_carlo:\n    chunk_size: 0\n"},
		{"ZeroEffortScale", "engine:\n  prioritization:\n    effort_scale: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvCannotLiftIterationCap(t *testing.T) {
	t.Setenv("ANALYTICS_ENGINE_MONTE_CARLO_MAX_ITERATIONS", "80000")

	_, err := Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_iterations")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestDefault_IgnoresEnvironment(t *testing.T) {
	// Given an environment that would fail validation
	t.Setenv("ANALYTICS_SERVER_PORT", "70000")
	t.Setenv("ANALYTICS_ENGINE_MONTE_CARLO_MAX_ITERATIONS", "80000")

	// When
	var cfg *Config
	require.NotPanics(t, func() { cfg = Default() })

	// Then
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 50000, cfg.Engine.MonteCarlo.MaxIterations)
}
