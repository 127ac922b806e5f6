package main

import (
	"fmt"

	"github.com/aretw0/abilitree/internal/cli"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [catalog] --out DIR",
	Short: "Write a catalog as a directory of Markdown documents",
	Long: `Converts a catalog file into the directory layout: one folder per class,
a _class.md with its settings and one Markdown document per ability.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		n, err := cli.Export(cmd.Context(), catalogPath(cmd, args), out)
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d abilities to %s\n", n, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("out", "o", "", "Target directory")
	_ = exportCmd.MarkFlagRequired("out")
}
