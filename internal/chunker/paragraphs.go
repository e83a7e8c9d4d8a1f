package chunker

import (
	"fmt"
	"strings"

	"patent_rag/internal/tokenizer"
)

// ParagraphChunker greedily packs blank-line separated paragraphs into
// chunks of at most ChunkSize tokens. An accumulation that still exceeds the
// budget, such as a single oversized paragraph, is split by a TokenChunker.
//
// Offsets are a running total of emitted content length. They are
// approximate: the blank lines between paragraphs in the source are not
// counted, so they drift from true source positions.
type ParagraphChunker struct {
	config Config
	tok    tokenizer.Tokenizer
	window *TokenChunker
}

func NewParagraphChunker(config Config, tok tokenizer.Tokenizer) (*ParagraphChunker, error) {
	window, err := NewTokenChunker(config, tok)
	if err != nil {
		return nil, fmt.Errorf("paragraph chunker: %w", err)
	}
	return &ParagraphChunker{config: config, tok: tok, window: window}, nil
}

func (c *ParagraphChunker) Name() string {
	return string(StrategyParagraphs)
}

func (c *ParagraphChunker) Chunk(text, documentID string) []Chunk {
	run := &paragraphRun{c: c, documentID: documentID}
	for _, para := range SplitByParagraphs(text) {
		run.feed(para)
	}
	if run.acc != "" {
		run.emit()
	}
	return run.chunks
}

type paragraphPhase int

const (
	phaseIdle paragraphPhase = iota
	phaseAccumulating
	phaseFlushing
	phaseOverflowing
)

// paragraphRun is the state of one Chunk call.
type paragraphRun struct {
	c          *ParagraphChunker
	documentID string
	chunks     []Chunk

	acc       string
	accTokens int
	cursor    int
	ordinal   int
}

// feed drives one paragraph through the phases until the run is idle.
func (r *paragraphRun) feed(para string) {
	paraTokens := r.c.tok.Count(para)

	phase := phaseAccumulating
	if r.acc != "" && r.accTokens+paraTokens > r.c.config.ChunkSize {
		phase = phaseFlushing
	}
	for phase != phaseIdle {
		phase = r.step(phase, para, paraTokens)
	}
}

func (r *paragraphRun) step(phase paragraphPhase, para string, paraTokens int) paragraphPhase {
	switch phase {
	case phaseFlushing:
		r.emit()
		r.acc, r.accTokens = para, paraTokens
		return r.settle()
	case phaseAccumulating:
		if r.acc == "" {
			r.acc = para
		} else {
			r.acc += "\n\n" + para
		}
		r.accTokens = r.c.tok.Count(r.acc)
		return r.settle()
	case phaseOverflowing:
		r.overflow()
	}
	return phaseIdle
}

func (r *paragraphRun) settle() paragraphPhase {
	if r.accTokens > r.c.config.ChunkSize {
		return phaseOverflowing
	}
	return phaseIdle
}

// emit flushes the accumulator as one paragraph chunk.
func (r *paragraphRun) emit() {
	content := strings.TrimSpace(r.acc)
	r.chunks = append(r.chunks, Chunk{
		Content:    content,
		StartIndex: r.cursor,
		EndIndex:   r.cursor + len(r.acc),
		ID:         ordinalID(r.documentID, "para", r.ordinal),
		Metadata: Metadata{
			KeyTokenCount:  r.accTokens,
			KeyChunkNumber: r.ordinal,
			KeyDocumentID:  r.documentID,
			KeyChunkType:   TypeParagraphBased,
		},
	})
	r.cursor += len(content)
	r.ordinal++
	r.acc, r.accTokens = "", 0
}

// overflow splits the oversized accumulator into token windows placed at
// the current cursor.
func (r *paragraphRun) overflow() {
	scope := ordinalID(r.documentID, "large_para", r.ordinal)
	subs := r.c.window.Chunk(r.acc, scope)
	for _, sub := range subs {
		r.chunks = append(r.chunks, sub.shift(r.cursor))
	}
	r.cursor += len(r.acc)
	r.ordinal += len(subs)
	r.acc, r.accTokens = "", 0
}
