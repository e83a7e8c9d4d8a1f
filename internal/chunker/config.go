package chunker

import (
	"fmt"
	"strings"
)

// Strategy selects how a document is split.
type Strategy string

const (
	StrategyTokens     Strategy = "tokens"
	StrategySections   Strategy = "sections"
	StrategyParagraphs Strategy = "paragraphs"
)

// Strategies lists the recognized strategies.
var Strategies = []Strategy{StrategyTokens, StrategySections, StrategyParagraphs}

// ParseStrategy maps a configuration value onto a Strategy. Matching is
// case-insensitive and an empty value selects StrategyTokens.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	if s == "" {
		return StrategyTokens, nil
	}
	for _, known := range Strategies {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Config holds token budgets shared by all strategies.
type Config struct {
	// ChunkSize is the maximum number of tokens per chunk.
	ChunkSize int

	// Overlap is the number of tokens repeated between consecutive windows.
	Overlap int

	// MinSize is the optimizer's minimum chunk size in tokens.
	MinSize int
}

// DefaultConfig returns the stock budgets.
func DefaultConfig() Config {
	return Config{
		ChunkSize: 1000,
		Overlap:   200,
		MinSize:   100,
	}
}

// Validate rejects budgets that would stall the token window.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, c.ChunkSize)
	}
	if c.Overlap < 0 {
		return fmt.Errorf("%w: overlap must not be negative, got %d", ErrInvalidConfig, c.Overlap)
	}
	if c.Overlap >= c.ChunkSize {
		return fmt.Errorf("%w: overlap (%d) must be less than chunk size (%d)", ErrInvalidConfig, c.Overlap, c.ChunkSize)
	}
	if c.MinSize < 0 {
		return fmt.Errorf("%w: min size must not be negative, got %d", ErrInvalidConfig, c.MinSize)
	}
	return nil
}
