package chunker

import (
	"fmt"

	"patent_rag/internal/tokenizer"
)

// Factory builds chunkers that share one config and tokenizer.
type Factory struct {
	config Config
	tok    tokenizer.Tokenizer
}

// NewFactory fails on invalid budgets so no chunker is ever built from them.
func NewFactory(config Config, tok tokenizer.Tokenizer) (*Factory, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, fmt.Errorf("%w: tokenizer is required", ErrInvalidConfig)
	}
	return &Factory{config: config, tok: tok}, nil
}

// Config returns the budgets the factory was built with.
func (f *Factory) Config() Config {
	return f.config
}

// GetChunker returns the chunker for a strategy name.
func (f *Factory) GetChunker(strategy string) (Chunker, error) {
	s, err := ParseStrategy(strategy)
	if err != nil {
		return nil, err
	}
	switch s {
	case StrategySections:
		return NewSectionChunker(f.config, f.tok)
	case StrategyParagraphs:
		return NewParagraphChunker(f.config, f.tok)
	default:
		return NewTokenChunker(f.config, f.tok)
	}
}

// Optimizer returns an optimizer bounded by the factory's chunk size.
func (f *Factory) Optimizer() *Optimizer {
	return &Optimizer{chunkSize: f.config.ChunkSize, tok: f.tok}
}

// ChunkDocument chunks text with the named strategy. With optimize set the
// result is passed through the optimizer using the configured MinSize.
func (f *Factory) ChunkDocument(text, documentID, strategy string, optimize bool) ([]Chunk, error) {
	c, err := f.GetChunker(strategy)
	if err != nil {
		return nil, err
	}
	chunks := c.Chunk(text, documentID)
	if optimize {
		chunks = f.Optimizer().Optimize(chunks, f.config.MinSize)
	}
	return chunks, nil
}
