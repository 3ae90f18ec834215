// ABOUTME: Search command for full-text queries across all entities
// ABOUTME: Queries events, tasks, and messages and groups results by kind
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marlow/daybook/internal/db"
)

var (
	searchKind       string
	searchJSONOutput bool
)

type searchResults struct {
	Events   []db.CalendarEvent `json:"events,omitempty"`
	Tasks    []db.Task          `json:"tasks,omitempty"`
	Messages []db.Message       `json:"messages,omitempty"`
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search",
	Long:  `Search events, tasks, and messages with an FTS5 match expression.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		query := args[0]
		var results searchResults

		if searchKind == "" || searchKind == "events" {
			if results.Events, err = store.SearchEvents(query); err != nil {
				return fmt.Errorf("failed to search events: %w", err)
			}
		}
		if searchKind == "" || searchKind == "tasks" {
			if results.Tasks, err = store.SearchTasks(query); err != nil {
				return fmt.Errorf("failed to search tasks: %w", err)
			}
		}
		if searchKind == "" || searchKind == "messages" {
			if results.Messages, err = store.SearchMessages(query); err != nil {
				return fmt.Errorf("failed to search messages: %w", err)
			}
		}

		if searchJSONOutput {
			data, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if len(results.Events) > 0 {
			fmt.Println("Events:")
			for _, e := range results.Events {
				fmt.Printf("  %s  %s\n", e.ID, e.Summary)
			}
		}
		if len(results.Tasks) > 0 {
			fmt.Println("Tasks:")
			for _, t := range results.Tasks {
				fmt.Printf("  %s  %s\n", t.ID, t.Title)
			}
		}
		if len(results.Messages) > 0 {
			fmt.Println("Messages:")
			for _, m := range results.Messages {
				fmt.Printf("  %s  %s\n", m.ID, m.Subject)
			}
		}
		if len(results.Events)+len(results.Tasks)+len(results.Messages) == 0 {
			fmt.Println("No matches.")
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchKind, "kind", "k", "", "Limit to one kind (events, tasks, messages)")
	searchCmd.Flags().BoolVar(&searchJSONOutput, "json", false, "Output as JSON")
	rootCmd.AddCommand(searchCmd)
}
