package chunker

import (
	"regexp"
	"strconv"
	"strings"

	"patent_rag/internal/tokenizer"
)

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// SplitByParagraphs splits text on blank lines and drops empty paragraphs.
// Each returned paragraph is trimmed.
func SplitByParagraphs(text string) []string {
	var result []string
	for _, p := range paragraphBreak.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// chunkID joins parts with underscores, prefixed by the document id when
// there is one.
func chunkID(documentID string, parts ...string) string {
	id := strings.Join(parts, "_")
	if documentID == "" {
		return id
	}
	return documentID + "_" + id
}

func ordinalID(documentID, kind string, n int) string {
	return chunkID(documentID, kind, strconv.Itoa(n))
}

// prefixOffsets returns offs where offs[k] is the byte length of the
// decoding of tokens[:k].
func prefixOffsets(tok tokenizer.Tokenizer, tokens []int) []int {
	offs := make([]int, len(tokens)+1)
	for i := range tokens {
		offs[i+1] = offs[i] + len(tok.Decode(tokens[i:i+1]))
	}
	return offs
}

// cleanContent trims a decoded window. A window edge may split a multi-byte
// character; the broken bytes become U+FFFD.
func cleanContent(decoded string) string {
	return strings.TrimSpace(strings.ToValidUTF8(decoded, "\uFFFD"))
}
