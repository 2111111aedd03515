// ABOUTME: Main entry point for the study engine MCP server with stdio transport
// ABOUTME: Initializes the content store, assistant, and MCP server with all tools
package main

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cucobaby/studyengine/internal/assistant"
	"github.com/cucobaby/studyengine/internal/config"
	"github.com/cucobaby/studyengine/internal/llm"
	"github.com/cucobaby/studyengine/internal/mcp"
	"github.com/cucobaby/studyengine/internal/storage/sqlite"
	"github.com/cucobaby/studyengine/internal/vectorstore/memory"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var completer llm.Completer
	var opts []assistant.Option
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - answers fall back to templates and quizzes are unavailable")
	} else {
		client, err := llm.NewOpenAIClient(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize OpenAI client: %v", err)
		}
		completer = client

		analysis, err := llm.NewAnalysisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize analysis client: %v", err)
		}
		opts = append(opts, assistant.WithAnalysisCompleter(analysis))
	}

	if cfg.DatabasePath != "" {
		db, err := sqlite.Open(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to open analytics database: %v", err)
		}
		defer db.Close()
		opts = append(opts, assistant.WithAnalyticsStore(sqlite.NewAnalyticsStore(db)))
	}

	engine, err := assistant.New(cfg, memory.New(), completer, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize engine: %v", err)
	}

	server := mcpserver.NewMCPServer(
		"Study Engine",
		"0.1.0",
	)
	mcp.RegisterTools(server, engine)

	log.Println("Study engine MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
