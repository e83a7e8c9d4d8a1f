package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"patent_rag/internal/chunker"
)

type Config struct {
	ChunkSize      int           `env:"CHUNK_SIZE" envDefault:"1000"`
	ChunkOverlap   int           `env:"CHUNK_OVERLAP" envDefault:"200"`
	ChunkEncoding  string        `env:"CHUNK_ENCODING" envDefault:"cl100k_base"`
	ChunkStrategy  string        `env:"CHUNK_STRATEGY" envDefault:"tokens"`
	ChunkMinSize   int           `env:"CHUNK_MIN_SIZE" envDefault:"100"`
	ChunkOptimize  bool          `env:"CHUNK_OPTIMIZE" envDefault:"false"`
	MaxConcurrency int           `env:"MAX_CONCURRENCY" envDefault:"4"`
	APITimeout     time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	OutputDir      string        `env:"OUTPUT_DIR" envDefault:"./output"`
}

func Init(cfg interface{}) error {
	return env.Parse(cfg)
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := Init(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Chunking returns the chunker budgets.
func (c *Config) Chunking() chunker.Config {
	return chunker.Config{
		ChunkSize: c.ChunkSize,
		Overlap:   c.ChunkOverlap,
		MinSize:   c.ChunkMinSize,
	}
}

// Validate checks everything that would otherwise fail later inside a run.
func (c *Config) Validate() error {
	if err := c.Chunking().Validate(); err != nil {
		return err
	}
	if c.ChunkMinSize <= 0 {
		return fmt.Errorf("%w: min size must be positive, got %d", chunker.ErrInvalidConfig, c.ChunkMinSize)
	}
	if _, err := chunker.ParseStrategy(c.ChunkStrategy); err != nil {
		return err
	}
	if c.MaxConcurrency <= 0 {
		return fmt.Errorf("max concurrency must be positive, got %d", c.MaxConcurrency)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("api timeout must be positive, got %s", c.APITimeout)
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
