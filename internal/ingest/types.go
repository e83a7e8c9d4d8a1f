// Package ingest reads patent records from CSV, JSON, HTTP API and PDF
// sources and normalizes them into Patent values.
package ingest

import "time"

// SourceType names where a batch of records comes from.
type SourceType string

const (
	SourceCSV  SourceType = "csv"
	SourceJSON SourceType = "json"
	SourceAPI  SourceType = "api"
	SourcePDF  SourceType = "pdf"
)

// Source is one entry of a sources file.
type Source struct {
	Type    SourceType        `yaml:"type" json:"type"`
	Path    string            `yaml:"path,omitempty" json:"path,omitempty"`
	URL     string            `yaml:"url,omitempty" json:"url,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`

	// Markdown marks abstract and description fields as markdown to be
	// flattened to plain text before cleaning.
	Markdown bool `yaml:"markdown,omitempty" json:"markdown,omitempty"`
}

// Location is the path or URL the source reads from.
func (s Source) Location() string {
	if s.Path != "" {
		return s.Path
	}
	return s.URL
}

// Record is a raw, source-shaped patent before cleaning. A nil Record
// stands for an array element that was not an object.
type Record map[string]any

// Patent is the normalized record.
type Patent struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Abstract            string    `json:"abstract"`
	Inventors           []string  `json:"inventors"`
	Assignee            string    `json:"assignee"`
	PublicationDate     *string   `json:"publication_date"`
	PatentNumber        string    `json:"patent_number"`
	ClassificationCodes []string  `json:"classification_codes"`
	Claims              []string  `json:"claims"`
	Description         string    `json:"description,omitempty"`
	IngestedAt          time.Time `json:"ingested_at"`
}
