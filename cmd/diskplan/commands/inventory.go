package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/diskplan/cmd/diskplan/handlers"
)

// Inventory returns the command listing disk-type block devices and
// flagging unpartitioned ones as provisioning candidates.
//
// The listing is informational: any disk with zero partitions is a
// candidate regardless of size, and a failed query degrades to an empty
// listing with a warning instead of an error.
func Inventory() *cobra.Command {
	var opts handlers.InventoryOptions

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "List block devices and flag provisioning candidates",
		Long: `List disk-type block devices on the target host and flag those with
zero partitions as provisioning candidates.

Disks below 50 GiB are marked, but the mark is advisory only; partition
count is the sole classification rule.

Examples:
  # Local inventory
  diskplan inventory

  # Remote inventory as JSON
  diskplan inventory --host 10.0.0.5 --user root --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Inventory(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the inventory as JSON")
	addRemoteFlags(cmd, &opts.Remote)

	return cmd
}
