// ABOUTME: Agenda command for listing events in a date range
// ABOUTME: Supports natural-language bounds, JSON output, and digest export
package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/marlow/daybook/internal/config"
	"github.com/marlow/daybook/internal/db"
	"github.com/marlow/daybook/internal/logging"
)

var (
	agendaSince      string
	agendaUntil      string
	agendaJSONOutput bool
	agendaExport     bool
)

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Show events in a date range",
	Long:  `List calendar events between --since and --until (default: today), optionally exporting a daily digest file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		// Default window: today, midnight to midnight UTC
		now := time.Now().UTC()
		since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		until := since.AddDate(0, 0, 1)

		if agendaSince != "" {
			if since, err = dateparse.ParseAny(agendaSince); err != nil {
				return fmt.Errorf("invalid --since date: %w", err)
			}
		}
		if agendaUntil != "" {
			if until, err = dateparse.ParseAny(agendaUntil); err != nil {
				return fmt.Errorf("invalid --until date: %w", err)
			}
		}

		events, err := store.EventsInRange(since, until)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}

		if agendaExport {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			digestDir := cfg.DigestDir
			if digestDir == "" {
				return fmt.Errorf("no digest_dir configured")
			}
			tasks, err := store.TasksByStatus(db.TaskPending)
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}
			if err := logging.WriteDigest(digestDir, cfg.DigestFormat, since, events, tasks); err != nil {
				return fmt.Errorf("failed to write digest: %w", err)
			}
			fmt.Printf("Digest written: %s\n", digestDir)
		}

		if agendaJSONOutput {
			data, err := json.MarshalIndent(events, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		for _, e := range events {
			line := e.Summary
			if e.Start != nil && e.Start.DateTime != "" {
				if t, err := time.Parse(time.RFC3339, e.Start.DateTime); err == nil {
					line = fmt.Sprintf("%s  %s", t.UTC().Format("2006-01-02 15:04"), e.Summary)
				}
			} else if e.Start != nil && e.Start.Date != "" {
				line = fmt.Sprintf("%s  %s (all day)", e.Start.Date, e.Summary)
			}
			if e.Location != "" {
				line += fmt.Sprintf(" @ %s", e.Location)
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	agendaCmd.Flags().StringVar(&agendaSince, "since", "", "Start date (natural language or ISO)")
	agendaCmd.Flags().StringVar(&agendaUntil, "until", "", "End date (natural language or ISO)")
	agendaCmd.Flags().BoolVar(&agendaJSONOutput, "json", false, "Output as JSON")
	agendaCmd.Flags().BoolVar(&agendaExport, "export", false, "Write a digest file for the day")
	rootCmd.AddCommand(agendaCmd)
}
