package runner

import (
	"context"
	"errors"
	"os/exec"
)

// Local runs commands on the local host via /bin/sh.
type Local struct{}

// NewLocal creates a Runner for the local host.
func NewLocal() *Local {
	return &Local{}
}

// Run implements Runner.
func (l *Local) Run(ctx context.Context, command string) (string, int, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(output), exitErr.ExitCode(), nil
		}
		// The shell could not be spawned at all.
		return string(output), -1, err
	}
	return string(output), 0, nil
}
