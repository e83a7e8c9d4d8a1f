package ingest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order; month-first wins over day-first.
var dateLayouts = []string{
	"2006-1-2",
	"1/2/2006",
	"2/1/2006",
	"2006-1-2 15:04:05",
}

// Cleaner normalizes raw records into patents.
type Cleaner struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger, now: time.Now}
}

// Clean normalizes every record, skipping those without an id or title.
func (c *Cleaner) Clean(records []Record) []Patent {
	patents := make([]Patent, 0, len(records))

	for i, rec := range records {
		if rec == nil {
			c.logger.Warn("Skipping record that is not an object", slog.Int("index", i))
			continue
		}
		p := c.cleanRecord(rec)
		if p.ID == "" || p.Title == "" {
			c.logger.Warn("Skipping patent with missing required fields",
				slog.Int("index", i), slog.String("id", p.ID), slog.String("title", p.Title))
			continue
		}
		patents = append(patents, p)
	}

	c.logger.Info("Cleaned patents", slog.Int("kept", len(patents)), slog.Int("raw", len(records)))
	return patents
}

func (c *Cleaner) cleanRecord(rec Record) Patent {
	description := stringValue(rec["description"])
	if description == "" {
		description = stringValue(rec["full_text"])
	}

	return Patent{
		ID:                  stringValue(rec["id"]),
		Title:               stringValue(rec["title"]),
		Abstract:            stringValue(rec["abstract"]),
		Inventors:           cleanList(rec["inventors"], ""),
		Assignee:            stringValue(rec["assignee"]),
		PublicationDate:     cleanDate(rec["publication_date"]),
		PatentNumber:        stringValue(rec["patent_number"]),
		ClassificationCodes: cleanList(rec["classification_codes"], ";"),
		Claims:              cleanList(rec["claims"], ""),
		Description:         description,
		IngestedAt:          c.now().UTC(),
	}
}

// stringValue renders scalars as trimmed strings; anything else is "".
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// cleanList accepts a single string or a list and returns trimmed,
// non-empty entries. A non-empty sep splits a single string value.
func cleanList(v any, sep string) []string {
	var raw []string
	switch t := v.(type) {
	case string:
		if sep != "" {
			raw = strings.Split(t, sep)
		} else {
			raw = []string{t}
		}
	case []string:
		raw = t
	case []any:
		for _, el := range t {
			raw = append(raw, stringValue(el))
		}
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// cleanDate normalizes recognized dates to YYYY-MM-DD. Unrecognized
// non-empty values are kept as given; empty values become nil.
func cleanDate(v any) *string {
	var s string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s = strings.TrimSpace(t)
	default:
		s = strings.TrimSpace(fmt.Sprint(t))
	}
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			out := parsed.Format("2006-01-02")
			return &out
		}
	}
	return &s
}
