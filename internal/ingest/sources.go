package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads a YAML sources file:
//
//	sources:
//	  - type: json
//	    path: data/sample_patents.json
//	  - type: api
//	    url: https://example.org/patents
//	    headers: {Authorization: "Bearer ..."}
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources %s: %w", path, err)
	}

	var f sourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse sources %s: %w", path, err)
	}
	for i, s := range f.Sources {
		if s.Type == "" {
			return nil, fmt.Errorf("source %d: type is required", i)
		}
		if s.Location() == "" {
			return nil, fmt.Errorf("source %d (%s): path or url is required", i, s.Type)
		}
	}
	return f.Sources, nil
}

// SaveJSON writes v as indented JSON, creating parent directories.
func SaveJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// LoadPatents reads a file written by SaveJSON.
func LoadPatents(path string) ([]Patent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patents %s: %w", path, err)
	}
	var patents []Patent
	if err := json.Unmarshal(data, &patents); err != nil {
		return nil, fmt.Errorf("decode patents %s: %w", path, err)
	}
	return patents, nil
}
