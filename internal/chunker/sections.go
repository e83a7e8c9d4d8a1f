package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"patent_rag/internal/tokenizer"
)

// Section names a logical region of a patent document.
type Section string

const (
	SectionAbstract    Section = "abstract"
	SectionBackground  Section = "background"
	SectionSummary     Section = "summary"
	SectionDescription Section = "description"
	SectionClaims      Section = "claims"
	SectionOther       Section = "other"
)

// SectionOrder is the declaration order of the section map. The section
// chunker emits sections in this order, not in document order.
var SectionOrder = []Section{
	SectionAbstract,
	SectionBackground,
	SectionSummary,
	SectionDescription,
	SectionClaims,
	SectionOther,
}

// SectionMap holds the extracted text of every section, "" when absent.
type SectionMap map[Section]string

// sectionRule claims a labeled heading and the content that follows it, up
// to the next boundary heading or the end of the text.
type sectionRule struct {
	section  Section
	heading  *regexp.Regexp
	boundary *regexp.Regexp // nil runs to the end of the text
}

// sectionRules are applied in this order; each rule only sees text the
// earlier rules left unclaimed.
var sectionRules = []sectionRule{
	{
		section: SectionAbstract,
		heading: headingPattern("abstract", "summary of the invention"),
		boundary: boundaryPattern("background", "field", "technical field", "summary",
			"brief description", "detailed description", "claims", "what is claimed"),
	},
	{
		section:  SectionBackground,
		heading:  headingPattern("background", "field of the invention", "technical field"),
		boundary: boundaryPattern("summary", "brief description", "detailed description", "claims", "abstract"),
	},
	{
		section:  SectionSummary,
		heading:  headingPattern("summary", "brief summary", "summary of the invention"),
		boundary: boundaryPattern("brief description", "detailed description", "claims", "background"),
	},
	{
		section: SectionDescription,
		heading: headingPattern("detailed description", "description of the preferred embodiment",
			"description of embodiments"),
		boundary: boundaryPattern("claims", "what is claimed"),
	},
	{
		section: SectionClaims,
		heading: headingPattern("claims", "what is claimed"),
	},
}

func headingPattern(labels ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:` + alternation(labels) + `)[\s\v\p{Z}]*`)
}

func boundaryPattern(labels ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\n(?:` + alternation(labels) + `)`)
}

func alternation(labels []string) string {
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = regexp.QuoteMeta(l)
	}
	return strings.Join(quoted, "|")
}

// span locates the first heading at or after from. Content runs from the
// end of the heading to the first boundary after it.
func (r sectionRule) span(text string, from int) (start, contentStart, end int, ok bool) {
	loc := r.heading.FindStringIndex(text[from:])
	if loc == nil {
		return 0, 0, 0, false
	}
	start, contentStart, end = from+loc[0], from+loc[1], len(text)
	if r.boundary != nil {
		if b := r.boundary.FindStringIndex(text[contentStart:]); b != nil {
			end = contentStart + b[0]
		}
	}
	return start, contentStart, end, true
}

// claim returns the trimmed content of the first match and the text left
// once every non-overlapping match has been cut out.
func (r sectionRule) claim(text string) (content, rest string, ok bool) {
	var kept strings.Builder
	pos := 0
	for pos <= len(text) {
		start, contentStart, end, found := r.span(text, pos)
		if !found {
			break
		}
		if !ok {
			content, ok = strings.TrimSpace(text[contentStart:end]), true
		}
		kept.WriteString(text[pos:start])
		pos = end
	}
	if !ok {
		return "", text, false
	}
	kept.WriteString(text[pos:])
	return content, kept.String(), true
}

// ExtractSections splits patent text into its named sections. It folds the
// ordered rules over the unclaimed remainder; whatever no rule claims is
// stored under SectionOther. The result is deterministic but heuristic:
// heading labels are matched anywhere, not only at line starts.
func ExtractSections(text string) SectionMap {
	sections := make(SectionMap, len(SectionOrder))
	for _, s := range SectionOrder {
		sections[s] = ""
	}

	remaining := text
	for _, rule := range sectionRules {
		content, rest, ok := rule.claim(remaining)
		if ok {
			sections[rule.section] = content
		}
		remaining = rest
	}
	sections[SectionOther] = strings.TrimSpace(remaining)

	return sections
}

// SectionChunker emits one chunk per section, splitting sections that
// exceed the token budget with a TokenChunker.
type SectionChunker struct {
	config Config
	tok    tokenizer.Tokenizer
	window *TokenChunker
}

func NewSectionChunker(config Config, tok tokenizer.Tokenizer) (*SectionChunker, error) {
	window, err := NewTokenChunker(config, tok)
	if err != nil {
		return nil, fmt.Errorf("section chunker: %w", err)
	}
	return &SectionChunker{config: config, tok: tok, window: window}, nil
}

func (c *SectionChunker) Name() string {
	return string(StrategySections)
}

// Chunk offsets are relative to each section's text.
func (c *SectionChunker) Chunk(text, documentID string) []Chunk {
	sections := ExtractSections(text)

	var chunks []Chunk
	for _, name := range SectionOrder {
		body := sections[name]
		if strings.TrimSpace(body) == "" {
			continue
		}

		scoped := chunkID(documentID, string(name))
		count := c.tok.Count(body)
		if count <= c.config.ChunkSize {
			chunks = append(chunks, Chunk{
				Content:    strings.TrimSpace(body),
				StartIndex: 0,
				EndIndex:   len(body),
				ID:         scoped,
				Metadata: Metadata{
					KeySectionType: string(name),
					KeyTokenCount:  count,
					KeyDocumentID:  documentID,
				},
			})
			continue
		}

		for _, ch := range c.window.Chunk(body, scoped) {
			chunks = append(chunks, ch.with(KeySectionType, string(name)))
		}
	}

	return chunks
}
