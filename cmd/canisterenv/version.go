package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/icpkit/canisterenv"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of canisterenv",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("canisterenv version %s\n", canisterenv.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
