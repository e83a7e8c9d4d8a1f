package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"patent_rag/internal/chunker"
	"patent_rag/internal/ingest"
)

var ErrUnsupportedFormat = errors.New("unsupported input format")

// Document is one chunkable text.
type Document struct {
	ID   string
	Text string
}

// ChunkOptions selects the strategy and whether the optimizer runs.
type ChunkOptions struct {
	Strategy string
	Optimize bool
	Force    bool
}

// DocumentChunks is the result of chunking one document.
type DocumentChunks struct {
	DocumentID string          `json:"document_id"`
	Chunks     []chunker.Chunk `json:"chunks"`
}

// LoadDocuments reads an input file. JSON files hold patent records and
// yield one document per patent; PDF pages are extracted; markdown is
// flattened; .txt is taken as is. docID names the single document of a
// non-JSON file and defaults to the file name without extension.
func (a *App) LoadDocuments(path, docID string) ([]Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if docID == "" {
		docID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	switch ext {
	case ".json":
		records, err := ingest.ReadJSON(path)
		if err != nil {
			return nil, err
		}
		patents := ingest.NewCleaner(a.logger).Clean(records)
		docs := make([]Document, len(patents))
		for i, p := range patents {
			docs[i] = Document{ID: p.ID, Text: p.Text()}
		}
		return docs, nil
	case ".pdf":
		text, err := ingest.PDFText(path)
		if err != nil {
			return nil, err
		}
		return []Document{{ID: docID, Text: text}}, nil
	case ".md", ".txt":
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		text := string(content)
		if ext == ".md" {
			text = ingest.PlainText(text)
		}
		return []Document{{ID: docID, Text: text}}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ChunkText chunks a single raw document.
func (a *App) ChunkText(text, docID string, opts ChunkOptions) ([]chunker.Chunk, error) {
	return a.factory.ChunkDocument(text, docID, opts.Strategy, opts.Optimize)
}

// ChunkPatents chunks the composed text of every patent.
func (a *App) ChunkPatents(ctx context.Context, patents []ingest.Patent, opts ChunkOptions) ([]DocumentChunks, error) {
	docs := make([]Document, len(patents))
	for i, p := range patents {
		docs[i] = Document{ID: p.ID, Text: p.Text()}
	}
	return a.ChunkDocuments(ctx, docs, opts)
}

// ChunkDocuments chunks documents concurrently, bounded by MaxConcurrency.
// Results keep the input order.
func (a *App) ChunkDocuments(ctx context.Context, docs []Document, opts ChunkOptions) ([]DocumentChunks, error) {
	c, err := a.factory.GetChunker(opts.Strategy)
	if err != nil {
		return nil, err
	}
	optimizer := a.factory.Optimizer()
	minSize := a.factory.Config().MinSize

	limit := a.cfg.MaxConcurrency
	if limit <= 0 {
		limit = 1
	}
	sem := make(chan struct{}, limit)
	results := make([]DocumentChunks, len(docs))
	var wg sync.WaitGroup

	for i, doc := range docs {
		wg.Add(1)
		go func(idx int, d Document) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			chunks := c.Chunk(d.Text, d.ID)
			if opts.Optimize {
				chunks = optimizer.Optimize(chunks, minSize)
			}
			results[idx] = DocumentChunks{DocumentID: d.ID, Chunks: chunks}
			a.logger.Debug("Chunked document",
				slog.String("document_id", d.ID), slog.Int("chunks", len(chunks)))
		}(i, doc)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r.Chunks)
	}
	a.logger.Info("Chunking summary",
		slog.String("strategy", c.Name()),
		slog.Bool("optimized", opts.Optimize),
		slog.Int("documents", len(docs)),
		slog.Int("chunks", total))

	return results, nil
}

// ChunkFile loads, chunks and saves one input file, returning the output
// path. A file already chunked in its current state with the same options is
// skipped unless opts.Force is set; the returned path is then empty.
func (a *App) ChunkFile(ctx context.Context, path, docID, output string, opts ChunkOptions) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	if err := a.loadManifest(); err != nil {
		a.logger.Warn("Ignoring unreadable manifest", slog.String("error", err.Error()))
	}
	if !opts.Force && a.unchanged(path, info, opts) {
		a.logger.Info("Skipping unchanged file", slog.String("path", path))
		return "", nil
	}

	docs, err := a.LoadDocuments(path, docID)
	if err != nil {
		return "", err
	}
	a.logger.Info("File loaded", slog.String("path", path), slog.Int("documents", len(docs)))

	results, err := a.ChunkDocuments(ctx, docs, opts)
	if err != nil {
		return "", err
	}

	chunks := flatten(results)
	if output == "" {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		output = filepath.Join(a.cfg.OutputDir, stem+"_chunks.json")
	}
	if err := ingest.SaveJSON(output, chunks); err != nil {
		return "", fmt.Errorf("save chunks: %w", err)
	}

	a.manifest.Files[path] = FileInfo{
		Path:         path,
		LastModified: info.ModTime(),
		Size:         info.Size(),
		Strategy:     opts.Strategy,
		Optimized:    opts.Optimize,
		Documents:    len(docs),
		Chunks:       len(chunks),
		Output:       output,
	}
	if err := a.saveManifest(); err != nil {
		a.logger.Warn("Failed to save manifest", slog.String("error", err.Error()))
	}

	a.logger.Info("Chunks saved", slog.String("output", output), slog.Int("chunks", len(chunks)))
	return output, nil
}

func flatten(results []DocumentChunks) []chunker.Chunk {
	var all []chunker.Chunk
	for _, r := range results {
		all = append(all, r.Chunks...)
	}
	if all == nil {
		all = []chunker.Chunk{}
	}
	return all
}
