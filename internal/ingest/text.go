package ingest

import (
	"fmt"
	"strings"
)

// Text composes the chunkable document. Parts are separated by blank lines
// and carry the headings the section extractor recognizes.
func (p Patent) Text() string {
	var parts []string
	if p.Title != "" {
		parts = append(parts, p.Title)
	}
	if p.Abstract != "" {
		parts = append(parts, "Abstract\n"+p.Abstract)
	}
	if p.Description != "" {
		parts = append(parts, "Detailed Description\n"+p.Description)
	}
	if len(p.Claims) > 0 {
		claims := make([]string, len(p.Claims))
		for i, c := range p.Claims {
			claims[i] = fmt.Sprintf("%d. %s", i+1, c)
		}
		parts = append(parts, "Claims\n"+strings.Join(claims, "\n"))
	}
	return strings.Join(parts, "\n\n")
}
