package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <canister>",
	Short: "Print one canister's ID on the selected network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tool, cfg, err := setup(cmd)
		if err != nil {
			return err
		}

		mapping, err := tool.Resolve(cmd.Context(), cfg.Network)
		if err != nil {
			return fmt.Errorf("resolution failed: %w", err)
		}

		id, ok := mapping[args[0]]
		if !ok {
			return fmt.Errorf("canister %q is not deployed on network %q", args[0], cfg.Network)
		}

		fmt.Println(id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
