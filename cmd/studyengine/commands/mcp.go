// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to use the study engine via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cucobaby/studyengine/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the study engine as an MCP (Model Context Protocol) server,
exposing content ingestion, question answering, and the quiz protocol
as tools over stdio.`,
		RunE: runMCPServer,
		Example: `  # Start MCP server (typically called by an MCP client)
  studyengine mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "studyengine": {
  #       "command": "studyengine",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCPServer starts the MCP server with graceful shutdown
func runMCPServer(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return fmt.Errorf("initializing engine: %w", err)
	}

	server := mcpserver.NewMCPServer(
		"Study Engine",
		"0.1.0",
	)
	mcp.RegisterTools(server, engine)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Study engine MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
