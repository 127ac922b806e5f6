package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "abilitree",
	Short: "Abilitree is a dependency engine for game ability trees",
	Long: `Abilitree loads ability catalogs (YAML, JSON, TOML or a directory of
Markdown documents) and lets you enable abilities on a grid, cascading
the changes to every dependent ability.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("catalog", "c", "catalog.yaml", "Catalog file or directory")
	rootCmd.PersistentFlags().Int("budget", 0, "Override the point budget of every class")
}

// catalogPath reads --catalog, letting a positional argument stand in for it.
func catalogPath(cmd *cobra.Command, args []string) string {
	path, _ := cmd.Flags().GetString("catalog")
	if !cmd.Flags().Changed("catalog") && len(args) > 0 {
		path = args[0]
	}
	return path
}

func budget(cmd *cobra.Command) int {
	b, _ := cmd.Flags().GetInt("budget")
	return b
}
