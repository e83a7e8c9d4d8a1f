package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ReadPDF turns one PDF into a single record. The file name without its
// extension serves as id and title; the page text becomes the description.
func ReadPDF(path string) ([]Record, error) {
	text, err := PDFText(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return []Record{{
		"id":          name,
		"title":       name,
		"description": text,
	}}, nil
}

// PDFText extracts the plain text of every page, pages separated by a blank
// line. Pages that fail to decode are skipped.
func PDFText(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: pdf file %s", ErrSourceNotFound, path)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strings.TrimSpace(text))
	}

	return b.String(), nil
}
