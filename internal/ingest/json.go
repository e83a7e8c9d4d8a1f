package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ReadJSON reads a file holding one patent object or an array of them.
func ReadJSON(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: json file %s", ErrSourceNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read json %s: %w", path, err)
	}
	return DecodeRecords(data)
}

// DecodeRecords accepts a JSON object or array. Array elements that are not
// objects come back as nil records so the cleaner can report and skip them.
func DecodeRecords(data []byte) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	switch t := v.(type) {
	case map[string]any:
		return []Record{t}, nil
	case []any:
		records := make([]Record, len(t))
		for i, el := range t {
			if obj, ok := el.(map[string]any); ok {
				records[i] = obj
			}
		}
		return records, nil
	default:
		return nil, ErrInvalidPayload
	}
}
