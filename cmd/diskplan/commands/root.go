// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the diskplan CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diskplan",
		Short: "Plan and apply block-device provisioning, locally or over SSH",
	}

	// Core commands
	cmd.AddCommand(Plan())
	cmd.AddCommand(Inventory())
	cmd.AddCommand(Init())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
