// Package handlers implements the CLI command handlers. Commands bind
// flags and delegate here; handlers resolve configuration, construct the
// execution context, and drive the planner.
package handlers

import (
	"fmt"
	"os"

	"github.com/imamik/diskplan/internal/config"
)

// RemoteOptions are the shared SSH target flags. An empty Host means local
// execution.
type RemoteOptions struct {
	Host   string
	User   string
	SSHKey string
	Port   int
}

// PlanOptions carries every flag of the plan command.
type PlanOptions struct {
	ConfigPath    string
	Device        string
	VolumeGroup   string
	LogicalVolume string
	Size          string
	MountPoint    string
	FSType        string
	Wipe          bool
	Apply         bool
	JSON          bool
	Remote        RemoteOptions
}

// InventoryOptions carries the flags of the inventory command.
type InventoryOptions struct {
	JSON   bool
	Remote RemoteOptions
}

// resolveConfig builds the one immutable Config for this invocation: file
// values first (explicit --config, or diskplan.yaml when present), then
// flag overrides, then defaults.
func resolveConfig(opts PlanOptions) (*config.Config, error) {
	cfg := &config.Config{}

	path := opts.ConfigPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFileName); err == nil {
			path = config.DefaultFileName
		}
	}
	if path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.Device != "" {
		cfg.Device = opts.Device
	}
	if opts.VolumeGroup != "" {
		cfg.VolumeGroup = opts.VolumeGroup
	}
	if opts.LogicalVolume != "" {
		cfg.LogicalVolume = opts.LogicalVolume
	}
	if opts.Size != "" {
		cfg.Size = opts.Size
	}
	if opts.MountPoint != "" {
		cfg.MountPoint = opts.MountPoint
	}
	if opts.FSType != "" {
		cfg.FSType = config.FSType(opts.FSType)
	}
	if opts.Wipe {
		cfg.Wipe = true
	}
	cfg.Apply = opts.Apply
	applyRemoteOptions(&cfg.Remote, opts.Remote)

	cfg.Finalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveRemote builds a Config carrying only the execution target, for
// commands that take no desired state.
func resolveRemote(opts RemoteOptions) (*config.Config, error) {
	cfg := &config.Config{}
	applyRemoteOptions(&cfg.Remote, opts)
	cfg.Finalize()

	if cfg.Remote.IsSet() && cfg.Remote.User == "" {
		return nil, fmt.Errorf("remote execution requires --user")
	}
	return cfg, nil
}

func applyRemoteOptions(r *config.Remote, opts RemoteOptions) {
	if opts.Host != "" {
		r.Host = opts.Host
	}
	if opts.User != "" {
		r.User = opts.User
	}
	if opts.SSHKey != "" {
		r.KeyPath = opts.SSHKey
	}
	if opts.Port != 0 {
		r.Port = opts.Port
	}
}
