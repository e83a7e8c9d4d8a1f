package chunker

import (
	"fmt"

	"patent_rag/internal/tokenizer"
)

// Optimizer merges undersized chunks so embeddings are not computed over
// fragments.
type Optimizer struct {
	chunkSize int
	tok       tokenizer.Tokenizer
}

// NewOptimizer bounds merged chunks by config.ChunkSize.
func NewOptimizer(config Config, tok tokenizer.Tokenizer) (*Optimizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, fmt.Errorf("%w: tokenizer is required", ErrInvalidConfig)
	}
	return &Optimizer{chunkSize: config.ChunkSize, tok: tok}, nil
}

// Optimize makes one left-to-right pass. A chunk under minTokens is merged
// with its successor when the joined text fits the chunk size; the merged
// chunk is not examined again. An undersized chunk that cannot be merged is
// dropped.
func (o *Optimizer) Optimize(chunks []Chunk, minTokens int) []Chunk {
	var out []Chunk

	for i := 0; i < len(chunks); i++ {
		cur := chunks[i]
		tokens := o.tok.Count(cur.Content)

		if tokens < minTokens && i+1 < len(chunks) {
			next := chunks[i+1]
			combined := cur.Content + "\n\n" + next.Content
			combinedTokens := o.tok.Count(combined)
			if combinedTokens <= o.chunkSize {
				out = append(out, Chunk{
					Content:    combined,
					StartIndex: cur.StartIndex,
					EndIndex:   next.EndIndex,
					ID:         cur.ID + "_combined",
					Metadata: Metadata{
						KeyTokenCount:   combinedTokens,
						KeyCombinedFrom: []string{cur.ID, next.ID},
						KeyChunkType:    TypeOptimizedCombined,
					},
				})
				i++
				continue
			}
		}

		if tokens >= minTokens {
			out = append(out, cur)
		}
	}

	return out
}
