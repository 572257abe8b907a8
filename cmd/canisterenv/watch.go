package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/icpkit/canisterenv/internal/cli"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the env file whenever deployment metadata changes",
	Long:  `Watches dfx.json and the canister ID registries for the selected network and rewrites the env file on every change. Useful next to 'dfx deploy' during development.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tool, cfg, err := setup(cmd)
		if err != nil {
			return err
		}

		debug, _ := cmd.Flags().GetBool("debug")
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = cfg.Output
		}
		if output != "-" && !filepath.IsAbs(output) {
			output = filepath.Join(tool.Dir(), output)
		}

		return cli.RunWatch(cmd.Context(), cli.WatchOptions{
			Tool:    tool,
			Network: cfg.Network,
			Output:  output,
			Debug:   debug,
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringP("output", "o", "", "output file ('-' for stdout)")
}
