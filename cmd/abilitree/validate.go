package main

import (
	"fmt"
	"os"

	"github.com/aretw0/abilitree/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [catalog]",
	Short: "Check the catalog for consistency",
	Long:  `Loads every class and reports schema errors, bad drafts and names that resolve to nothing.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.Validate(os.Stdout, catalogPath(cmd, args)); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Println("Catalog is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
