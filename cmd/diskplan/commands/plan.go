package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/diskplan/cmd/diskplan/handlers"
)

// Plan returns the command that builds and optionally applies a
// provisioning plan for one block device.
//
// The plan is always printed. Without --apply nothing is executed; with
// --apply the steps run sequentially and stop at the first failure. --wipe
// adds signature-erase steps to the plan but they too only ever run under
// --apply.
func Plan() *cobra.Command {
	var opts handlers.PlanOptions

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build and optionally apply a provisioning plan for a device",
		Long: `Build an ordered, idempotent provisioning plan for one block device
and print it. The plan reaches from an optional signature wipe through LVM
setup, filesystem creation, mounting, and the persisted fstab entry.

Nothing is executed unless --apply is given; dry-run is the default. Steps
are individually idempotent, so re-running after a failure is safe.

Examples:
  # Dry-run: plain xfs filesystem on /dev/sdb, mounted at /mnt/sdb
  diskplan plan --device /dev/sdb

  # LVM layout on a remote host, applied
  diskplan plan --device /dev/sdc --volume-group data \
    --logical-volume data01 --size 100G \
    --host 10.0.0.5 --user root --ssh-key ~/.ssh/id_ed25519 --apply

  # Wipe existing signatures first (destructive, needs --apply to run)
  diskplan plan --device /dev/sdb --wipe --apply`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Device, "device", "", "Target block device, e.g. /dev/sdb")
	cmd.Flags().StringVar(&opts.VolumeGroup, "volume-group", "", "LVM volume group to create or extend")
	cmd.Flags().StringVar(&opts.LogicalVolume, "logical-volume", "", "Logical volume name (requires --size)")
	cmd.Flags().StringVar(&opts.Size, "size", "", "Logical volume size, e.g. 100G")
	cmd.Flags().StringVar(&opts.MountPoint, "mount-point", "", "Mount point (default /mnt/<lv> or /mnt/<device>)")
	cmd.Flags().StringVar(&opts.FSType, "fs-type", "", "Filesystem type: xfs or ext4 (default xfs)")
	cmd.Flags().BoolVar(&opts.Wipe, "wipe", false, "Erase partition-table and filesystem signatures first (destructive)")
	cmd.Flags().BoolVar(&opts.Apply, "apply", false, "Execute the plan (default is dry-run)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to a diskplan.yaml (flags override file values)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the plan as JSON")

	addRemoteFlags(cmd, &opts.Remote)

	return cmd
}
