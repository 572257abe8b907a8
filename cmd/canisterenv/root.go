package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "canisterenv",
	Short: "Canisterenv synthesizes build env vars from dfx deployment metadata",
	Long:  `Canisterenv resolves canister IDs from local dfx deployment metadata and emits the environment variables a frontend build consumes.`,
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
	rootCmd.PersistentFlags().String("dir", ".", "dfx project directory")
	rootCmd.PersistentFlags().String("network", "", "dfx network (default from canisterenv.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
}
