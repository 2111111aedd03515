// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Engine construction and content loading used by ask, topics, and quiz
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/cucobaby/studyengine/internal/assistant"
	"github.com/cucobaby/studyengine/internal/config"
	"github.com/cucobaby/studyengine/internal/llm"
	"github.com/cucobaby/studyengine/internal/storage/sqlite"
	"github.com/cucobaby/studyengine/internal/vectorstore/memory"
)

// newEngine builds an assistant from the environment. The LLM client is
// optional; without an API key, answers degrade to template synthesis.
func newEngine() (*assistant.Assistant, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}

	var completer llm.Completer
	var opts []assistant.Option
	if cfg.OpenAIAPIKey != "" {
		client, err := llm.NewOpenAIClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("initializing OpenAI client: %w", err)
		}
		completer = client

		analysis, err := llm.NewAnalysisClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("initializing analysis client: %w", err)
		}
		opts = append(opts, assistant.WithAnalysisCompleter(analysis))
	} else if verbose {
		fmt.Fprintln(os.Stderr, "Warning: OPENAI_API_KEY not set - using template answers only")
	}

	if path := analyticsDBPath(); path != "" {
		db, err := sqlite.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening analytics database: %w", err)
		}
		opts = append(opts, assistant.WithAnalyticsStore(sqlite.NewAnalyticsStore(db)))
	}

	return assistant.New(cfg, memory.New(), completer, opts...)
}

// analyticsDBPath resolves the analytics database location, preferring the
// environment override.
func analyticsDBPath() string {
	if path := os.Getenv("STUDYENGINE_DB_PATH"); path != "" {
		return path
	}
	return sqlite.DefaultDBPath()
}

// ingestFiles loads each file into the engine, using the file name (without
// extension) as the document title.
func ingestFiles(ctx context.Context, engine *assistant.Assistant, paths []string) (int, error) {
	total := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return total, fmt.Errorf("reading %s: %w", path, err)
		}

		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		ids, err := engine.Ingest(ctx, title, string(data))
		if err != nil {
			return total, fmt.Errorf("ingesting %s: %w", path, err)
		}
		total += len(ids)
	}
	return total, nil
}

// printJSON writes the value as indented JSON.
func printJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// jsonOutput reports whether the user asked for machine-readable output.
func jsonOutput() bool {
	return outputFormat == "json"
}
