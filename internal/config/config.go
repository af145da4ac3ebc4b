// Package config defines the desired storage configuration and the target
// host it applies to. One immutable Config value is constructed at
// invocation start (from an optional YAML file plus flag overrides) and
// passed explicitly to every component.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FSType is the filesystem created on the provisioned target.
type FSType string

const (
	// FSXFS is the default filesystem type.
	FSXFS FSType = "xfs"
	// FSExt4 is the alternative filesystem type.
	FSExt4 FSType = "ext4"
)

// IsValid reports whether the filesystem type is supported.
func (t FSType) IsValid() bool {
	switch t {
	case FSXFS, FSExt4:
		return true
	default:
		return false
	}
}

// Remote describes the SSH target. A zero Remote means local execution.
type Remote struct {
	Host    string `yaml:"host,omitempty"`
	User    string `yaml:"user,omitempty"`
	KeyPath string `yaml:"ssh_key,omitempty"`
	Port    int    `yaml:"port,omitempty"`
}

// IsSet reports whether a remote host was configured.
func (r Remote) IsSet() bool {
	return r.Host != ""
}

// Config is the full desired state for one invocation: a single block
// device provisioned to a single mount point, with an optional LVM layer.
type Config struct {
	// Device is the target block device, e.g. /dev/sdb.
	Device string `yaml:"device"`

	// VolumeGroup, when set, puts the device under LVM.
	VolumeGroup string `yaml:"volume_group,omitempty"`

	// LogicalVolume names the LV carved from VolumeGroup.
	// Requires Size.
	LogicalVolume string `yaml:"logical_volume,omitempty"`

	// Size is the LV size in lvcreate notation, e.g. 100G.
	Size string `yaml:"size,omitempty"`

	// FSType defaults to xfs.
	FSType FSType `yaml:"fs_type,omitempty"`

	// MountPoint defaults to /mnt/<lv> for LVM targets and
	// /mnt/<basename(device)> otherwise.
	MountPoint string `yaml:"mount_point,omitempty"`

	// Wipe erases partition-table and filesystem signatures first.
	// Destructive; only ever executed together with Apply.
	Wipe bool `yaml:"wipe,omitempty"`

	// Remote selects SSH execution when its host is set.
	Remote Remote `yaml:"remote,omitempty"`

	// Apply executes the plan instead of only printing it.
	// Never read from a file; dry-run is always the default.
	Apply bool `yaml:"-"`
}

// ValidationError reports an invalid configuration field. It is mapped to
// exit code 2 before any plan is built.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// Finalize fills in defaults. It must be called once, after file values and
// flag overrides are merged and before the Config is handed to any component.
func (c *Config) Finalize() {
	if c.FSType == "" {
		c.FSType = FSXFS
	}
	if c.MountPoint == "" {
		if c.LogicalVolume != "" {
			c.MountPoint = "/mnt/" + c.LogicalVolume
		} else if c.Device != "" {
			c.MountPoint = "/mnt/" + filepath.Base(c.Device)
		}
	}
	if c.Remote.IsSet() && c.Remote.Port == 0 {
		c.Remote.Port = 22
	}
}

// Validate checks the configuration. It returns a *ValidationError so the
// caller can distinguish operator mistakes from runtime failures.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Device) == "" {
		return &ValidationError{Field: "device", Message: "target block device is required"}
	}
	if c.LogicalVolume != "" && c.Size == "" {
		return &ValidationError{Field: "size", Message: "a logical volume name requires a size"}
	}
	if c.LogicalVolume != "" && c.VolumeGroup == "" {
		return &ValidationError{Field: "volume-group", Message: "a logical volume requires a volume group"}
	}
	if !c.FSType.IsValid() {
		return &ValidationError{Field: "fs-type", Message: fmt.Sprintf("unsupported filesystem type %q (want xfs or ext4)", c.FSType)}
	}
	if c.Remote.IsSet() && c.Remote.User == "" {
		return &ValidationError{Field: "user", Message: "remote execution requires a user"}
	}
	return nil
}
