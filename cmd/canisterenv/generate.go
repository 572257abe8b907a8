package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/icpkit/canisterenv/internal/envsynth"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Resolve canister IDs and emit environment variables",
	Long:  `Resolves every canister visible in the project for the selected network and renders the synthesized environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tool, cfg, err := setup(cmd)
		if err != nil {
			return err
		}

		vars, err := tool.Generate(cmd.Context(), cfg.Network)
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}

		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		rendered, err := render(vars, format)
		if err != nil {
			return err
		}

		// Without an explicit --output, dotenv goes to the configured
		// env file and the other formats go to stdout.
		if output == "" {
			if format != "dotenv" {
				fmt.Print(rendered)
				return nil
			}
			output = cfg.Output
		}

		if output == "-" {
			fmt.Print(rendered)
			return nil
		}

		path := output
		if !filepath.IsAbs(path) {
			path = filepath.Join(tool.Dir(), path)
		}
		if err := envsynth.WriteString(path, rendered); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "Wrote %d variables to %s\n", len(vars), path)
		return nil
	},
}

func render(vars envsynth.Vars, format string) (string, error) {
	switch format {
	case "dotenv":
		return vars.Dotenv(), nil
	case "export":
		return vars.Exports(), nil
	case "json":
		data, err := json.MarshalIndent(vars, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode vars: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unknown format %q (want dotenv, export, or json)", format)
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("format", "f", "dotenv", "output format: dotenv, export, or json")
	generateCmd.Flags().StringP("output", "o", "", "output file for dotenv format ('-' for stdout)")
}
