// Package main provides the patent_rag binary: patent ingestion and
// token-bounded chunking for retrieval pipelines.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"patent_rag/internal/app"
	"patent_rag/internal/config"
	"patent_rag/internal/ingest"
	"patent_rag/internal/tokenizer"
)

const (
	Version = "0.1.0"
	appName = "patent_rag"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globals struct {
	envFile  string
	logLevel string
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Patent ingestion and chunking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&g.envFile, "env-file", ".env", "Dotenv file loaded before the environment is parsed")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	cmd.AddCommand(ingestCmd(g), chunkCmd(g), &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

// loadConfig reads the dotenv file and the environment. A missing dotenv file
// is only an error when --env-file was given explicitly.
func (g *globals) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := godotenv.Load(g.envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || cmd.Flags().Changed("env-file") {
			return nil, fmt.Errorf("load %s: %w", g.envFile, err)
		}
	}

	cfg := &config.Config{}
	if err := config.Init(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})).
		With(slog.String("run_id", uuid.NewString()))
	slog.SetDefault(logger)
	return logger
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func ingestCmd(g *globals) *cobra.Command {
	var (
		sourcesPath string
		output      string
		chunk       bool
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Read patent sources, clean them and save the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			logger := newLogger(cfg)

			sources, err := ingest.LoadSources(sourcesPath)
			if err != nil {
				return err
			}

			ctx, stop := signalContext()
			defer stop()

			ingestor := ingest.NewIngestor(ingest.NewAPIClient(cfg.APITimeout), logger, cfg.MaxConcurrency)
			patents, err := ingestor.Ingest(ctx, sources)
			if err != nil {
				return err
			}

			if output == "" {
				output = filepath.Join(cfg.OutputDir, "patents.json")
			}
			if err := ingest.SaveJSON(output, patents); err != nil {
				return err
			}
			logger.Info("Patents saved", slog.String("output", output), slog.Int("count", len(patents)))

			if !chunk {
				return nil
			}

			tok, err := tokenizer.New(cfg.ChunkEncoding)
			if err != nil {
				return err
			}
			a, err := app.New(cfg, tok, logger)
			if err != nil {
				return err
			}
			results, err := a.ChunkPatents(ctx, patents, a.DefaultOptions())
			if err != nil {
				return err
			}
			chunksPath := filepath.Join(cfg.OutputDir, "patent_chunks.json")
			if err := ingest.SaveJSON(chunksPath, results); err != nil {
				return err
			}
			logger.Info("Chunks saved", slog.String("output", chunksPath))
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcesPath, "sources", "sources.yaml", "YAML file listing the sources to ingest")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output JSON file (default <OUTPUT_DIR>/patents.json)")
	cmd.Flags().BoolVar(&chunk, "chunk", false, "Also chunk the ingested patents with the configured strategy")

	return cmd
}

func chunkCmd(g *globals) *cobra.Command {
	var (
		input     string
		docID     string
		strategy  string
		chunkSize int
		overlap   int
		minSize   int
		optimize  bool
		force     bool
		output    string
	)

	cmd := &cobra.Command{
		Use:   "chunk",
		Short: "Chunk a document file; reads file paths from stdin when --input is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("strategy") {
				cfg.ChunkStrategy = strategy
			}
			if flags.Changed("chunk-size") {
				cfg.ChunkSize = chunkSize
			}
			if flags.Changed("overlap") {
				cfg.ChunkOverlap = overlap
			}
			if flags.Changed("min-size") {
				cfg.ChunkMinSize = minSize
			}
			if flags.Changed("optimize") {
				cfg.ChunkOptimize = optimize
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			logger := newLogger(cfg)

			tok, err := tokenizer.New(cfg.ChunkEncoding)
			if err != nil {
				return err
			}
			a, err := app.New(cfg, tok, logger)
			if err != nil {
				return err
			}

			ctx, stop := signalContext()
			defer stop()

			opts := a.DefaultOptions()
			opts.Force = force

			if input == "" {
				return a.Run(ctx, os.Stdin, opts)
			}

			out, err := a.ChunkFile(ctx, input, docID, output, opts)
			if err != nil {
				return err
			}
			if out != "" {
				fmt.Println(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file (.json, .pdf, .md or .txt)")
	cmd.Flags().StringVar(&docID, "doc-id", "", "Document id for a single-document input (default: file name)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Chunking strategy (tokens, sections, paragraphs)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Maximum tokens per chunk")
	cmd.Flags().IntVar(&overlap, "overlap", 0, "Tokens shared by consecutive windows")
	cmd.Flags().IntVar(&minSize, "min-size", 0, "Optimizer threshold for undersized chunks")
	cmd.Flags().BoolVar(&optimize, "optimize", false, "Merge undersized chunks after chunking")
	cmd.Flags().BoolVar(&force, "force", false, "Re-chunk files the manifest records as unchanged")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output JSON file (default <OUTPUT_DIR>/<name>_chunks.json)")

	return cmd
}
