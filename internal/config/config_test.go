package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patent_rag/internal/chunker"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.ChunkSize)
	assert.Equal(t, 200, cfg.ChunkOverlap)
	assert.Equal(t, "cl100k_base", cfg.ChunkEncoding)
	assert.Equal(t, "tokens", cfg.ChunkStrategy)
	assert.Equal(t, 100, cfg.ChunkMinSize)
	assert.False(t, cfg.ChunkOptimize)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, chunker.DefaultConfig(), cfg.Chunking())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "512")
	t.Setenv("CHUNK_OVERLAP", "64")
	t.Setenv("CHUNK_STRATEGY", "paragraphs")
	t.Setenv("CHUNK_OPTIMIZE", "true")
	t.Setenv("API_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.ChunkSize)
	assert.Equal(t, 64, cfg.ChunkOverlap)
	assert.Equal(t, "paragraphs", cfg.ChunkStrategy)
	assert.True(t, cfg.ChunkOptimize)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
}

func TestLoad_RejectsOverlapNotBelowSize(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "100")
	t.Setenv("CHUNK_OVERLAP", "100")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, chunker.ErrInvalidConfig))
}

func TestLoad_RejectsUnknownStrategy(t *testing.T) {
	t.Setenv("CHUNK_STRATEGY", "chapters")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, chunker.ErrUnknownStrategy))
	assert.Contains(t, err.Error(), "chapters")
}

func TestLoad_RejectsMalformedNumber(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "lots")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ChunkSize:      10,
			ChunkOverlap:   2,
			ChunkStrategy:  "sections",
			ChunkMinSize:   1,
			MaxConcurrency: 1,
			APITimeout:     time.Second,
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }},
		{"zero min size", func(c *Config) { c.ChunkMinSize = 0 }},
		{"zero concurrency", func(c *Config) { c.MaxConcurrency = 0 }},
		{"zero timeout", func(c *Config) { c.APITimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "DEBUG"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warn"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "verbose"}).SlogLevel())
}
