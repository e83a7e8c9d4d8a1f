package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"patent_rag/internal/chunker"
	"patent_rag/internal/config"
	"patent_rag/internal/ingest"
	"patent_rag/internal/tokenizer"
)

const manifestName = "manifest.json"

type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	factory  *chunker.Factory
	manifest *Manifest
}

// Manifest records which input files have been chunked and how, so unchanged
// files can be skipped on the next run.
type Manifest struct {
	Files map[string]FileInfo `json:"files"`
}

type FileInfo struct {
	Path         string    `json:"path"`
	LastModified time.Time `json:"last_modified"`
	Size         int64     `json:"size"`
	Strategy     string    `json:"strategy"`
	Optimized    bool      `json:"optimized"`
	Documents    int       `json:"documents"`
	Chunks       int       `json:"chunks"`
	Output       string    `json:"output"`
}

func New(cfg *config.Config, tok tokenizer.Tokenizer, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	factory, err := chunker.NewFactory(cfg.Chunking(), tok)
	if err != nil {
		return nil, fmt.Errorf("create chunker factory: %w", err)
	}

	return &App{
		cfg:      cfg,
		logger:   logger,
		factory:  factory,
		manifest: &Manifest{Files: make(map[string]FileInfo)},
	}, nil
}

// DefaultOptions returns the chunking options the configuration asks for.
func (a *App) DefaultOptions() ChunkOptions {
	return ChunkOptions{
		Strategy: a.cfg.ChunkStrategy,
		Optimize: a.cfg.ChunkOptimize,
	}
}

func (a *App) manifestPath() string {
	return filepath.Join(a.cfg.OutputDir, manifestName)
}

func (a *App) loadManifest() error {
	f, err := os.Open(a.manifestPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	defer f.Close()

	m := &Manifest{}
	if err := json.NewDecoder(f).Decode(m); err != nil {
		return fmt.Errorf("decode manifest: %w", err)
	}
	if m.Files == nil {
		m.Files = make(map[string]FileInfo)
	}
	a.manifest = m
	return nil
}

func (a *App) saveManifest() error {
	return ingest.SaveJSON(a.manifestPath(), a.manifest)
}

// unchanged reports whether path was already chunked in its current state
// with the same options.
func (a *App) unchanged(path string, info os.FileInfo, opts ChunkOptions) bool {
	prev, ok := a.manifest.Files[path]
	if !ok {
		return false
	}
	return prev.LastModified.Equal(info.ModTime()) &&
		prev.Size == info.Size() &&
		prev.Strategy == opts.Strategy &&
		prev.Optimized == opts.Optimize
}
