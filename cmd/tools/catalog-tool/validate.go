package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"scheme-finder/pkg/registry"
)

var validateCmd = &cobra.Command{
	Use:   "validate <registry.json>",
	Short: "Check a registry file against the catalog schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.LoadRegistry(args[0])
		if err != nil {
			var verr *registry.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprintln(cmd.ErrOrStderr(), "❌ Registry is invalid:")
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Registry %s is valid (version %s, %d schemes)\n", args[0], reg.Version, len(reg.Schemes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
