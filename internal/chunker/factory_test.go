package chunker

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"tokens", StrategyTokens},
		{"", StrategyTokens},
		{"Sections", StrategySections},
		{" paragraphs ", StrategyParagraphs},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseStrategy("sentences")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
	assert.Contains(t, err.Error(), "sentences")
}

func TestNewFactory_Validation(t *testing.T) {
	_, err := NewFactory(Config{ChunkSize: 100, Overlap: 100}, runeTokenizer{})
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewFactory(DefaultConfig(), nil)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	f, err := NewFactory(DefaultConfig(), runeTokenizer{})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), f.Config())
}

func TestFactory_GetChunker(t *testing.T) {
	f, err := NewFactory(cfg(20, 5), runeTokenizer{})
	require.NoError(t, err)

	for _, s := range Strategies {
		c, err := f.GetChunker(string(s))
		require.NoError(t, err)
		assert.Equal(t, string(s), c.Name())
	}

	c, err := f.GetChunker("")
	require.NoError(t, err)
	assert.IsType(t, &TokenChunker{}, c)

	_, err = f.GetChunker("bogus")
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
}

func TestFactory_ChunkDocument(t *testing.T) {
	f, err := NewFactory(Config{ChunkSize: 20, Overlap: 5, MinSize: 18}, runeTokenizer{})
	require.NoError(t, err)

	text := strings.Repeat("A", 50)
	chunks, err := f.ChunkDocument(text, "doc1", "tokens", false)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	// Every window holds 20 tokens, above MinSize, so nothing merges.
	optimized, err := f.ChunkDocument(text, "doc1", "tokens", true)
	require.NoError(t, err)
	assert.Equal(t, chunks, optimized)

	_, err = f.ChunkDocument(text, "doc1", "words", false)
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
}

func TestFactory_ChunkDocumentOptimizes(t *testing.T) {
	f, err := NewFactory(Config{ChunkSize: 100, Overlap: 0, MinSize: 10}, runeTokenizer{})
	require.NoError(t, err)

	chunks, err := f.ChunkDocument("Abstract\nA lamp.\nClaims\n1. A lamp that glows.", "d", "sections", true)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "d_abstract_combined", chunks[0].ID)
	assert.Equal(t, "A lamp.\n\n1. A lamp that glows.", chunks[0].Content)
}
