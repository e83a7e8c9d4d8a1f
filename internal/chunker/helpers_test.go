package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// runeTokenizer maps every rune to one token so budgets are exact.
type runeTokenizer struct{}

func (runeTokenizer) Encode(text string) []int {
	runes := []rune(text)
	out := make([]int, len(runes))
	for i, r := range runes {
		out[i] = int(r)
	}
	return out
}

func (runeTokenizer) Decode(tokens []int) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteRune(rune(t))
	}
	return b.String()
}

func (runeTokenizer) Count(text string) int {
	return len([]rune(text))
}

func cfg(size, overlap int) Config {
	return Config{ChunkSize: size, Overlap: overlap, MinSize: 1}
}

func mustTokenChunker(t *testing.T, c Config) *TokenChunker {
	t.Helper()
	tc, err := NewTokenChunker(c, runeTokenizer{})
	require.NoError(t, err)
	return tc
}
