// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to query the pediatric reference via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/pedbot/nelsonref/internal/config"
	"github.com/pedbot/nelsonref/internal/mcp"
	"github.com/pedbot/nelsonref/internal/storage"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the pediatric reference as an MCP (Model Context Protocol)
server, exposing drug dosing, protocol, milestone, growth chart,
and symptom tools over stdio.

Configure in Claude Desktop's config file to enable the tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  nelsonref mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "nelsonref": {
  #       "command": "nelsonref",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.Open(cfg.DBPath, cfg.VectorDimension)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Nelson Pediatric Reference",
		"0.1.0",
	)

	mcp.RegisterTools(server, store, cfg.SearchLimit)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("nelsonref MCP server starting on stdio...")
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}

		if err := store.Close(); err != nil {
			log.Printf("Warning: Error closing storage: %v", err)
		}

		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
