// Package runner provides the execution context for provisioning commands.
//
// A Runner executes exactly one shell command at a time, either directly on
// the local host or on a remote host over SSH, and reports the combined
// output together with the command's exit code. Every component above this
// package depends only on the Runner interface and never branches on
// local versus remote execution.
package runner

import "context"

// Runner executes a single shell command on the target host.
type Runner interface {
	// Run executes command and returns its combined stdout/stderr and exit
	// code. A non-zero exit code is not an error; err is reserved for
	// transport failures (process could not be spawned, host unreachable).
	Run(ctx context.Context, command string) (output string, exitCode int, err error)
}
