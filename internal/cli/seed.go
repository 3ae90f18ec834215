// ABOUTME: Seed command for populating sample data
// ABOUTME: Fills the store with a demo working week
package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marlow/daybook/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the store with sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		if err := seed.Populate(store, time.Now()); err != nil {
			return fmt.Errorf("failed to seed data: %w", err)
		}

		color.Green("Sample week created")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
