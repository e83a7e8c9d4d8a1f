package ingest

import "errors"

var (
	ErrUnsupportedSource = errors.New("unsupported source type")
	ErrSourceNotFound    = errors.New("source not found")
	ErrInvalidPayload    = errors.New("payload must be an object or an array of objects")
)
