package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/abilitree"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of abilitree",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("abilitree version %s\n", strings.TrimSpace(abilitree.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
