package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Ingestor reads and cleans a batch of sources.
type Ingestor struct {
	client      *APIClient
	cleaner     *Cleaner
	logger      *slog.Logger
	concurrency int
}

func NewIngestor(client *APIClient, logger *slog.Logger, concurrency int) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	if client == nil {
		client = NewAPIClient(30 * time.Second)
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Ingestor{
		client:      client,
		cleaner:     NewCleaner(logger),
		logger:      logger,
		concurrency: concurrency,
	}
}

// Read returns the raw records of one source.
func (i *Ingestor) Read(ctx context.Context, src Source) ([]Record, error) {
	switch src.Type {
	case SourceCSV:
		return ReadCSV(src.Path)
	case SourceJSON:
		return ReadJSON(src.Path)
	case SourceAPI:
		return i.client.Fetch(ctx, src.URL, src.Headers)
	case SourcePDF:
		return ReadPDF(src.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, src.Type)
	}
}

// Ingest reads every source concurrently. A source that fails is logged and
// contributes nothing; the rest of the batch continues. Patents are
// returned in source order.
func (i *Ingestor) Ingest(ctx context.Context, sources []Source) ([]Patent, error) {
	results := make([][]Patent, len(sources))
	sem := make(chan struct{}, i.concurrency)
	var wg sync.WaitGroup

	for idx, src := range sources {
		wg.Add(1)
		go func(idx int, src Source) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			results[idx] = i.ingestSource(ctx, src)
		}(idx, src)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []Patent
	for _, r := range results {
		all = append(all, r...)
	}
	i.logger.Info("Total patents ingested", slog.Int("count", len(all)), slog.Int("sources", len(sources)))
	return all, nil
}

func (i *Ingestor) ingestSource(ctx context.Context, src Source) []Patent {
	log := i.logger.With(slog.String("type", string(src.Type)), slog.String("source", src.Location()))
	log.Info("Processing source")

	records, err := i.Read(ctx, src)
	if err != nil {
		log.Error("Source ingestion failed", slog.String("error", err.Error()))
		return nil
	}
	log.Info("Ingested records", slog.Int("count", len(records)))

	if src.Markdown {
		flattenMarkdown(records)
	}
	return i.cleaner.Clean(records)
}

func flattenMarkdown(records []Record) {
	for _, rec := range records {
		for _, field := range []string{"abstract", "description", "full_text"} {
			if s, ok := rec[field].(string); ok {
				rec[field] = PlainText(s)
			}
		}
	}
}
