// ABOUTME: Root command definition and CLI setup
// ABOUTME: Handles store opening shared by all subcommands
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marlow/daybook/internal/config"
	"github.com/marlow/daybook/internal/db"
)

var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "Local store for events, tasks, and messages",
	Long:  `Daybook keeps calendar events, tasks, and messages in a local SQLite database with full-text search, tags, and content-addressed attachments.`,
}

func Execute() error {
	return rootCmd.Execute()
}

// openStore resolves the database path from config (or DAYBOOK_DB_PATH) and
// opens the store. Callers own the Close.
func openStore() (*db.Store, error) {
	dbPath := os.Getenv("DAYBOOK_DB_PATH")
	if dbPath == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		dbPath = cfg.DBPath()
	}

	store, err := db.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

func closeStore(store *db.Store) {
	if err := store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
	}
}
