package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scheme-finder/internal/catalog"
	"scheme-finder/pkg/registry"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the built-in catalog as a registry file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, _ := cmd.Flags().GetString("out")
		version, _ := cmd.Flags().GetString("version")

		schemes := catalog.Default()
		if err := registry.SaveRegistry(out, registry.New(version, schemes)); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d schemes to %s\n", len(schemes), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("out", "o", "configs/scheme-registry.json", "registry file to write")
	exportCmd.Flags().String("version", "1.0.0", "registry version")
}
