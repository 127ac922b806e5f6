package main

import (
	"os"

	"github.com/aretw0/abilitree/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [catalog]",
	Short: "Export the ability graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of one class: exports, requirements and mutual exclusions.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		class, _ := cmd.Flags().GetString("class")
		clicks, _ := cmd.Flags().GetStringSlice("click")
		overlay, _ := cmd.Flags().GetBool("overlay")

		return cli.Graph(os.Stdout, cli.ReportOptions{
			CatalogPath: catalogPath(cmd, args),
			Class:       class,
			Budget:      budget(cmd),
			Clicks:      clicks,
		}, overlay || len(clicks) > 0)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("class", "", "Class to draw (defaults to the first one)")
	graphCmd.Flags().StringSlice("click", nil, "Abilities to click before drawing, in order")
	graphCmd.Flags().Bool("overlay", false, "Color nodes by state")
}
