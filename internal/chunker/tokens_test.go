package chunker

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenChunker_Windows(t *testing.T) {
	c := mustTokenChunker(t, cfg(20, 5))

	text := strings.Repeat("A", 50)
	chunks := c.Chunk(text, "doc1")
	require.Len(t, chunks, 3)

	wantSpans := [][2]int{{0, 20}, {15, 35}, {30, 50}}
	for i, ch := range chunks {
		assert.Equal(t, wantSpans[i][0], ch.StartIndex, "chunk %d start", i)
		assert.Equal(t, wantSpans[i][1], ch.EndIndex, "chunk %d end", i)
		assert.Equal(t, i, ch.Metadata[KeyChunkNumber])
		assert.Equal(t, wantSpans[i][1]-wantSpans[i][0], ch.Metadata[KeyTokenCount])
		assert.Equal(t, "doc1", ch.Metadata[KeyDocumentID])
		assert.Equal(t, text[ch.StartIndex:ch.EndIndex], ch.Content)
	}
	assert.Equal(t, "doc1_chunk_0", chunks[0].ID)
	assert.Equal(t, "doc1_chunk_2", chunks[2].ID)
}

func TestTokenChunker_OverlapIsShared(t *testing.T) {
	c := mustTokenChunker(t, cfg(10, 3))

	text := "abcdefghijklmnopqrstuvwxyz0123456789"
	chunks := c.Chunk(text, "d")
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		assert.Equal(t, 3, prev.EndIndex-cur.StartIndex)
		assert.True(t, strings.HasPrefix(cur.Content, prev.Content[len(prev.Content)-3:]))
		assert.GreaterOrEqual(t, cur.StartIndex, prev.StartIndex)
	}
	assert.Equal(t, len(text), chunks[len(chunks)-1].EndIndex)

	total := 0
	for _, ch := range chunks {
		total += ch.Metadata[KeyTokenCount].(int)
	}
	assert.GreaterOrEqual(t, total, len(text))
}

func TestTokenChunker_NoOverlapIsContiguous(t *testing.T) {
	c := mustTokenChunker(t, cfg(4, 0))

	chunks := c.Chunk("aaaabbbbcc", "")
	require.Len(t, chunks, 3)
	assert.Equal(t, []string{"aaaa", "bbbb", "cc"}, []string{chunks[0].Content, chunks[1].Content, chunks[2].Content})
	for i := 1; i < len(chunks); i++ {
		assert.Equal(t, chunks[i-1].EndIndex, chunks[i].StartIndex)
	}
	assert.Equal(t, "chunk_0", chunks[0].ID, "no document id prefix")
}

func TestTokenChunker_SingleWindow(t *testing.T) {
	c := mustTokenChunker(t, cfg(100, 10))

	chunks := c.Chunk("  A short abstract.\n", "doc")
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short abstract.", chunks[0].Content)
	assert.Equal(t, 0, chunks[0].StartIndex)
	assert.Equal(t, 20, chunks[0].EndIndex)
}

func TestTokenChunker_EmptyInput(t *testing.T) {
	c := mustTokenChunker(t, cfg(20, 5))

	assert.Empty(t, c.Chunk("", "doc1"))
	assert.Empty(t, c.Chunk(" \n\t ", "doc1"))
}

func TestTokenChunker_DropsBlankWindows(t *testing.T) {
	c := mustTokenChunker(t, cfg(3, 0))

	chunks := c.Chunk("abc      def", "d")
	require.Len(t, chunks, 2)
	assert.Equal(t, "abc", chunks[0].Content)
	assert.Equal(t, "def", chunks[1].Content)
	assert.Equal(t, "d_chunk_1", chunks[1].ID)
	assert.Equal(t, 1, chunks[1].Metadata[KeyChunkNumber])
	assert.Equal(t, 9, chunks[1].StartIndex)
}

func TestTokenChunker_ByteOffsets(t *testing.T) {
	c := mustTokenChunker(t, cfg(2, 0))

	text := "éa¶b"
	chunks := c.Chunk(text, "")
	require.Len(t, chunks, 2)
	assert.Equal(t, "éa", text[chunks[0].StartIndex:chunks[0].EndIndex])
	assert.Equal(t, "¶b", text[chunks[1].StartIndex:chunks[1].EndIndex])
	assert.Equal(t, len(text), chunks[1].EndIndex)
}

func TestNewTokenChunker_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero size", Config{ChunkSize: 0}},
		{"negative overlap", Config{ChunkSize: 10, Overlap: -1}},
		{"overlap equals size", Config{ChunkSize: 10, Overlap: 10}},
		{"overlap exceeds size", Config{ChunkSize: 10, Overlap: 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenChunker(tt.cfg, runeTokenizer{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}

	_, err := NewTokenChunker(cfg(10, 2), nil)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
