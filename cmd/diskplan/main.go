// Package main is the entry point for the diskplan CLI.
//
// diskplan is a storage-provisioning planner: it inspects block devices on
// a local or remote host, builds an ordered, idempotent command plan for a
// desired storage layout (plain filesystem or LVM-backed volume), always
// prints the plan, and executes it only under an explicit --apply flag.
//
// Commands: plan, inventory, init, version, completion.
//
// For detailed usage information, run:
//
//	diskplan --help
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/imamik/diskplan/cmd/diskplan/commands"
	"github.com/imamik/diskplan/internal/config"
	"github.com/imamik/diskplan/internal/plan"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const exitValidation = 2

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps errors to the documented exit codes: 2 for configuration
// mistakes, the failing step's own exit code when a plan was being applied,
// 1 otherwise.
func exitCode(err error) int {
	var verr *config.ValidationError
	if errors.As(err, &verr) {
		return exitValidation
	}

	var stepErr *plan.StepError
	if errors.As(err, &stepErr) && stepErr.ExitCode > 0 {
		return stepErr.ExitCode
	}
	return 1
}
