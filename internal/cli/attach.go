// ABOUTME: Attachment subcommands for the content-addressed blob store
// ABOUTME: Stores files by SHA-256 and retrieves them by hash
package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var attachOut string

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Manage attachments",
}

var attachStoreCmd = &cobra.Command{
	Use:   "store [file]",
	Short: "Store a file and print its content hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		name := filepath.Base(args[0])
		mimeType := mime.TypeByExtension(filepath.Ext(name))
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}

		hash, err := store.StoreAttachment(data, name, mimeType)
		if err != nil {
			return fmt.Errorf("failed to store attachment: %w", err)
		}

		fmt.Println(hash)
		return nil
	},
}

var attachGetCmd = &cobra.Command{
	Use:   "get [hash]",
	Short: "Retrieve an attachment by content hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		data, name, _, err := store.RetrieveAttachment(args[0])
		if err != nil {
			return fmt.Errorf("failed to retrieve attachment: %w", err)
		}

		out := attachOut
		if out == "" {
			out = name
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", out, len(data))
		return nil
	},
}

var attachListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored attachments",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		attachments, err := store.Attachments()
		if err != nil {
			return fmt.Errorf("failed to list attachments: %w", err)
		}
		for _, a := range attachments {
			fmt.Printf("%s  %8d  %s\n", a.Hash[:12], a.FileSize, a.OriginalFilename)
		}
		return nil
	},
}

func init() {
	attachGetCmd.Flags().StringVarP(&attachOut, "out", "o", "", "Output path (default: original filename)")

	attachCmd.AddCommand(attachStoreCmd)
	attachCmd.AddCommand(attachGetCmd)
	attachCmd.AddCommand(attachListCmd)
	rootCmd.AddCommand(attachCmd)
}
