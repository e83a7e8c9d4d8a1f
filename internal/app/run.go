package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Run reads one input path per line and chunks each file into the output
// directory. A failing file is logged and the loop continues.
func (a *App) Run(ctx context.Context, in io.Reader, opts ChunkOptions) error {
	a.logger.Info("Enter file paths to chunk (one per line). Ctrl+C to exit.")

	scanner := bufio.NewScanner(in)

	const maxLineSize = 1024 * 1024
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, maxLineSize)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Shutting down")
			return nil
		default:
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("stdin error: %w", err)
				}
				a.logger.Debug("stdin closed")
				return nil
			}

			path := strings.TrimSpace(scanner.Text())
			if path == "" {
				continue
			}

			if _, err := a.ChunkFile(ctx, path, "", "", opts); err != nil {
				a.logger.Error("Processing failed", slog.String("path", path), slog.String("error", err.Error()))
			}
		}
	}
}
