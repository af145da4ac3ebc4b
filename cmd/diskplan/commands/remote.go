package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/diskplan/cmd/diskplan/handlers"
)

// addRemoteFlags binds the shared SSH target flags. Leaving --host unset
// selects local execution.
func addRemoteFlags(cmd *cobra.Command, opts *handlers.RemoteOptions) {
	cmd.Flags().StringVar(&opts.Host, "host", "", "Remote host to provision over SSH (default: run locally)")
	cmd.Flags().StringVar(&opts.User, "user", "", "SSH user")
	cmd.Flags().StringVar(&opts.SSHKey, "ssh-key", "", "Path to the SSH private key (default: SSH agent)")
	cmd.Flags().IntVar(&opts.Port, "port", 0, "SSH port (default 22)")
}
