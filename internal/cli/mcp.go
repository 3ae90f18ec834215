//go:build sqlite_fts5

// ABOUTME: MCP subcommand for running the daybook MCP server
// ABOUTME: Handles stdio transport initialization and server lifecycle
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marlow/daybook/internal/config"
	"github.com/marlow/daybook/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the daybook MCP server",
	Long:  `Start the Model Context Protocol server for AI assistants to interact with daybook over stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := os.Getenv("DAYBOOK_DB_PATH")
		if dbPath == "" {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			dbPath = cfg.DBPath()
		}

		server := mcp.NewServer(dbPath)
		return server.Run(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
