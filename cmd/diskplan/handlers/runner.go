package handlers

import (
	"github.com/imamik/diskplan/internal/config"
	"github.com/imamik/diskplan/internal/runner"
)

// newRunner builds the execution context for the configured target. The
// returned closer tears down the SSH connection for remote targets; it is a
// no-op for local execution. Replaced in tests.
var newRunner = func(cfg *config.Config) (runner.Runner, func(), error) {
	if !cfg.Remote.IsSet() {
		return runner.NewLocal(), func() {}, nil
	}

	s, err := runner.NewSSH(runner.SSHConfig{
		Host:    cfg.Remote.Host,
		Port:    cfg.Remote.Port,
		User:    cfg.Remote.User,
		KeyPath: cfg.Remote.KeyPath,
	})
	if err != nil {
		return nil, nil, err
	}
	return s, func() { _ = s.Close() }, nil
}
