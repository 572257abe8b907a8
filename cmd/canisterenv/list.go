package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List resolved canisters for the selected network",
	RunE: func(cmd *cobra.Command, args []string) error {
		tool, cfg, err := setup(cmd)
		if err != nil {
			return err
		}

		mapping, err := tool.Resolve(cmd.Context(), cfg.Network)
		if err != nil {
			return fmt.Errorf("resolution failed: %w", err)
		}

		if len(mapping) == 0 {
			fmt.Printf("No canisters resolved on network %q\n", cfg.Network)
			return nil
		}

		names := make([]string, 0, len(mapping))
		for name := range mapping {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CANISTER\tID")
		for _, name := range names {
			fmt.Fprintf(w, "%s\t%s\n", name, mapping[name])
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
