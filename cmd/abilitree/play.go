package main

import (
	"github.com/aretw0/abilitree/internal/cli"
	"github.com/spf13/cobra"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play [catalog]",
	Short: "Enable and disable abilities interactively",
	Long: `Starts an interactive session on one class. Type an ability name to
toggle it, 'status' for a summary, 'reset' to start over and 'exit' to quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		class, _ := cmd.Flags().GetString("class")
		headless, _ := cmd.Flags().GetBool("headless")
		watch, _ := cmd.Flags().GetBool("watch")
		debug, _ := cmd.Flags().GetBool("debug")
		metrics, _ := cmd.Flags().GetString("metrics-addr")

		return cli.Execute(cli.RunOptions{
			CatalogPath: catalogPath(cmd, args),
			Class:       class,
			Headless:    headless,
			Watch:       watch,
			Debug:       debug,
			Budget:      budget(cmd),
			MetricsAddr: metrics,
		})
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().String("class", "", "Class to play (defaults to the first one)")
	playCmd.Flags().Bool("headless", false, "Run in headless mode (no banner, prompts or board)")
	playCmd.Flags().BoolP("watch", "w", false, "Reload the catalog when it changes on disk")
	playCmd.Flags().Bool("debug", false, "Log engine events to stderr")
	playCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	// Make 'play' the default if no command is provided
	rootCmd.RunE = playCmd.RunE
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
}
