package chunker

// Chunk is a bounded segment of document text with its provenance.
//
// StartIndex and EndIndex are byte offsets, half-open, into the text the
// chunker was given. Token-window and paragraph offsets are document-global;
// section offsets are relative to the extracted section, so chunks produced
// by different strategies do not share an offset space.
type Chunk struct {
	Content    string   `json:"content"`
	StartIndex int      `json:"start_index"`
	EndIndex   int      `json:"end_index"`
	ID         string   `json:"chunk_id"`
	Metadata   Metadata `json:"metadata"`
}

// Metadata carries strategy-specific annotations. It is never nil on a
// chunk produced by this package.
type Metadata map[string]any

// Metadata keys.
const (
	KeyTokenCount   = "token_count"
	KeyChunkNumber  = "chunk_number"
	KeySectionType  = "section_type"
	KeyDocumentID   = "document_id"
	KeyCombinedFrom = "combined_from"
	KeyChunkType    = "chunk_type"
)

// Chunk types recorded under KeyChunkType.
const (
	TypeParagraphBased    = "paragraph_based"
	TypeOptimizedCombined = "optimized_combined"
)

// Chunker turns one document into an ordered sequence of chunks.
type Chunker interface {
	Chunk(text, documentID string) []Chunk

	// Name returns the strategy name for logging.
	Name() string
}

// with returns a copy of c whose metadata has key set to value. The
// receiver's metadata map is left untouched.
func (c Chunk) with(key string, value any) Chunk {
	meta := make(Metadata, len(c.Metadata)+1)
	for k, v := range c.Metadata {
		meta[k] = v
	}
	meta[key] = value
	c.Metadata = meta
	return c
}

// shift moves the chunk's offsets by delta.
func (c Chunk) shift(delta int) Chunk {
	c.StartIndex += delta
	c.EndIndex += delta
	return c
}
