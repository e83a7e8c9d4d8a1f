// Package tokenizer adapts a BPE token scheme to the counting, encoding and
// decoding operations the chunkers need.
package tokenizer

import (
	"errors"
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the ~100k vocabulary byte-pair scheme.
const DefaultEncoding = "cl100k_base"

// ErrUnknownEncoding is returned when the token scheme cannot be loaded.
var ErrUnknownEncoding = errors.New("unknown token encoding")

// Tokenizer is the capability the chunkers are built on.
//
// Decode must be concatenative: decoding a token sequence yields the same
// bytes as decoding each token on its own and joining the results. Byte-level
// BPE schemes satisfy this, and the token-window chunker relies on it to
// derive character offsets without re-decoding prefixes.
type Tokenizer interface {
	Encode(text string) []int
	Decode(tokens []int) string
	Count(text string) int
}

// TikToken is a Tokenizer backed by tiktoken-go.
type TikToken struct {
	name     string
	encoding *tiktoken.Tiktoken
}

// New loads the named encoding. An empty name selects DefaultEncoding.
func New(encoding string) (*TikToken, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownEncoding, encoding, err)
	}
	return &TikToken{name: encoding, encoding: enc}, nil
}

// Name returns the encoding identifier.
func (t *TikToken) Name() string {
	return t.name
}

// Encode treats special-token text as ordinary text.
func (t *TikToken) Encode(text string) []int {
	return t.encoding.Encode(text, nil, nil)
}

func (t *TikToken) Decode(tokens []int) string {
	return t.encoding.Decode(tokens)
}

func (t *TikToken) Count(text string) int {
	return len(t.Encode(text))
}
