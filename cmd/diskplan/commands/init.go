package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/diskplan/cmd/diskplan/handlers"
)

// Init returns the command for interactively creating a diskplan
// configuration file.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a diskplan configuration",
		Long: `Interactively create a diskplan configuration file.

The wizard asks about:

  - The target block device and filesystem type
  - An optional LVM layer (volume group, logical volume, size)
  - Mount point and signature wiping
  - An optional remote SSH target

The resulting file can be used with 'diskplan plan -c <file>'; individual
flags still override file values.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "diskplan.yaml", "Output file path")

	return cmd
}
