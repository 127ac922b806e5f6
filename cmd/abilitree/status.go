package main

import (
	"os"

	"github.com/aretw0/abilitree/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var statusCmd = &cobra.Command{
	Use:   "status [catalog]",
	Short: "Show the state of every ability of a class",
	Long: `Prints one class as a table, a Markdown report or JSON. Use --click to
preview a build without starting a session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		class, _ := cmd.Flags().GetString("class")
		clicks, _ := cmd.Flags().GetStringSlice("click")
		format, _ := cmd.Flags().GetString("format")

		return cli.Status(os.Stdout, cli.ReportOptions{
			CatalogPath: catalogPath(cmd, args),
			Class:       class,
			Budget:      budget(cmd),
			Clicks:      clicks,
			Format:      format,
			Color:       term.IsTerminal(int(os.Stdout.Fd())),
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().String("class", "", "Class to show (defaults to the first one)")
	statusCmd.Flags().StringSlice("click", nil, "Abilities to click before reporting, in order")
	statusCmd.Flags().StringP("format", "f", cli.FormatTable, "Output format: table, markdown or json")
}
