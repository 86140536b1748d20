package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, 4, cfg.WorkerConcurrency)
	assert.Equal(t, 300, cfg.DefaultDPI)
	assert.Equal(t, "eng", cfg.OCRLanguage)
	assert.Equal(t, "pdftoppm", cfg.PdftoppmPath)
	assert.False(t, cfg.Debug)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("WORKER_CONCURRENCY", "8")
	t.Setenv("DEFAULT_DPI", "150")
	t.Setenv("DEBUG", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 8, cfg.WorkerConcurrency)
	assert.Equal(t, 150, cfg.DefaultDPI)
	assert.True(t, cfg.Debug)
}

func TestLoadConfigIgnoresMalformedInt(t *testing.T) {
	t.Setenv("WORKER_CONCURRENCY", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.WorkerConcurrency)
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"concurrency too low", func(c *Config) { c.WorkerConcurrency = 0 }},
		{"concurrency too high", func(c *Config) { c.WorkerConcurrency = 500 }},
		{"dpi too low", func(c *Config) { c.DefaultDPI = 50 }},
		{"dpi too high", func(c *Config) { c.DefaultDPI = 1200 }},
		{"file size too small", func(c *Config) { c.MaxFileSize = 10 }},
		{"timeout too short", func(c *Config) { c.ProcessingTimeout = 10 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadConfig()
			require.NoError(t, err)
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
