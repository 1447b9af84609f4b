package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turnovercli/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "dir", cfg.Source.Mode)
	assert.Equal(t, "data/turnover", cfg.Source.Dir)
	assert.Equal(t, 4.0, cfg.Source.RequestsPerSecond)
	assert.Equal(t, 60*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "data/master", cfg.Output.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
	assert.False(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Pipeline.Prefetch)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TURNOVER_SOURCE_MODE", "http")
	t.Setenv("TURNOVER_SOURCE_BASE_URL", "https://data.example.com/turnover")
	t.Setenv("TURNOVER_OUTPUT_DIR", "/tmp/master")
	t.Setenv("TURNOVER_PIPELINE_PREFETCH", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http", cfg.Source.Mode)
	assert.Equal(t, "https://data.example.com/turnover", cfg.Source.BaseURL)
	assert.Equal(t, "/tmp/master", cfg.Output.Dir)
	assert.True(t, cfg.Pipeline.Prefetch)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
source:
  mode: dir
  dir: /srv/turnover
output:
  dir: /srv/master
  prefix: master_
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/turnover", cfg.Source.Dir)
	assert.Equal(t, "/srv/master", cfg.Output.Dir)
	assert.Equal(t, "master_", cfg.Output.Prefix)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source:\n  dir: /from/file\n"), 0644))

	t.Setenv("TURNOVER_SOURCE_DIR", "/from/env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Source.Dir)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "invalid source mode",
			env:  map[string]string{"TURNOVER_SOURCE_MODE": "ftp"},
		},
		{
			name: "invalid log level",
			env:  map[string]string{"TURNOVER_LOGGING_LEVEL": "verbose"},
		},
		{
			name: "http mode without base url",
			env:  map[string]string{"TURNOVER_SOURCE_MODE": "http"},
		},
		{
			name: "malformed base url",
			env: map[string]string{
				"TURNOVER_SOURCE_MODE":     "http",
				"TURNOVER_SOURCE_BASE_URL": "not a url",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
}
