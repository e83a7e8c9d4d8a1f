package chunker

import (
	"fmt"
	"strings"

	"patent_rag/internal/tokenizer"
)

// TokenChunker slides a fixed token window with overlap over a document.
type TokenChunker struct {
	config Config
	tok    tokenizer.Tokenizer
}

// NewTokenChunker validates the budgets up front so a bad overlap can never
// produce a window that does not advance.
func NewTokenChunker(config Config, tok tokenizer.Tokenizer) (*TokenChunker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, fmt.Errorf("%w: tokenizer is required", ErrInvalidConfig)
	}
	return &TokenChunker{config: config, tok: tok}, nil
}

func (c *TokenChunker) Name() string {
	return string(StrategyTokens)
}

// Chunk encodes text once and emits windows [start, start+ChunkSize), each
// starting Overlap tokens before the previous one ended. Offsets come from
// the decoded token prefix, so the last chunk ends at len(text).
func (c *TokenChunker) Chunk(text, documentID string) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	tokens := c.tok.Encode(text)
	offs := prefixOffsets(c.tok, tokens)

	var chunks []Chunk
	for start := 0; start < len(tokens); {
		end := min(start+c.config.ChunkSize, len(tokens))

		content := cleanContent(c.tok.Decode(tokens[start:end]))
		if content != "" {
			n := len(chunks)
			chunks = append(chunks, Chunk{
				Content:    content,
				StartIndex: offs[start],
				EndIndex:   offs[end],
				ID:         ordinalID(documentID, "chunk", n),
				Metadata: Metadata{
					KeyTokenCount:  end - start,
					KeyChunkNumber: n,
					KeyDocumentID:  documentID,
				},
			})
		}

		if end == len(tokens) {
			break
		}
		start = end - c.config.Overlap
	}

	return chunks
}
