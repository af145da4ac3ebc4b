// Package plan turns a desired storage configuration into an ordered list
// of idempotent provisioning steps and executes them behind an explicit
// apply gate.
//
// Steps are typed: each carries a kind plus the parameters it needs, and is
// rendered to a shell command only at the execution boundary. The builder
// performs a single live-state read (volume-group existence); everything
// else is a pure derivation from the configuration.
package plan

import "fmt"

// StepKind identifies one provisioning action.
type StepKind string

const (
	// StepWipeTable erases partition-table signatures on the device.
	StepWipeTable StepKind = "wipe-partition-table"
	// StepWipeSignatures erases filesystem signatures on the device.
	StepWipeSignatures StepKind = "wipe-signatures"
	// StepCreatePV initializes the device as an LVM physical volume.
	StepCreatePV StepKind = "create-pv"
	// StepCreateVG creates a new volume group on the device.
	StepCreateVG StepKind = "create-vg"
	// StepExtendVG adds the device to an existing volume group.
	StepExtendVG StepKind = "extend-vg"
	// StepCreateLV carves a logical volume out of the volume group.
	StepCreateLV StepKind = "create-lv"
	// StepMakeFS creates the filesystem on the target node.
	StepMakeFS StepKind = "mkfs"
	// StepMount creates the mount point and mounts the target.
	StepMount StepKind = "mount"
	// StepFstab appends the persisted mount-table entry.
	StepFstab StepKind = "fstab"
)

// Step is one idempotent provisioning action.
type Step struct {
	Kind StepKind `json:"kind"`

	Device        string `json:"device,omitempty"`
	VolumeGroup   string `json:"volumeGroup,omitempty"`
	LogicalVolume string `json:"logicalVolume,omitempty"`
	Size          string `json:"size,omitempty"`

	// Target is the device node the filesystem lands on: the LV node for
	// LVM layouts, the raw device otherwise.
	Target     string `json:"target,omitempty"`
	FSType     string `json:"fsType,omitempty"`
	MountPoint string `json:"mountPoint,omitempty"`
}

// Description returns the human-readable form printed for every step.
func (s Step) Description() string {
	switch s.Kind {
	case StepWipeTable:
		return fmt.Sprintf("erase partition-table signatures on %s", s.Device)
	case StepWipeSignatures:
		return fmt.Sprintf("erase filesystem signatures on %s", s.Device)
	case StepCreatePV:
		return fmt.Sprintf("create physical volume on %s", s.Device)
	case StepCreateVG:
		return fmt.Sprintf("create volume group %s on %s", s.VolumeGroup, s.Device)
	case StepExtendVG:
		return fmt.Sprintf("extend volume group %s with %s", s.VolumeGroup, s.Device)
	case StepCreateLV:
		return fmt.Sprintf("create logical volume %s of size %s in group %s", s.LogicalVolume, s.Size, s.VolumeGroup)
	case StepMakeFS:
		return fmt.Sprintf("create %s filesystem on %s", s.FSType, s.Target)
	case StepMount:
		return fmt.Sprintf("create %s and mount %s", s.MountPoint, s.Target)
	case StepFstab:
		return fmt.Sprintf("append %s to /etc/fstab", s.MountPoint)
	default:
		return string(s.Kind)
	}
}

// Command renders the step to the shell command the execution context runs.
// Each command is safe to repeat: wipe and mkfs force, mkdir -p and the
// guarded fstab append are no-ops the second time.
func (s Step) Command() string {
	switch s.Kind {
	case StepWipeTable:
		return fmt.Sprintf("sgdisk --zap-all %s", s.Device)
	case StepWipeSignatures:
		return fmt.Sprintf("wipefs --all %s", s.Device)
	case StepCreatePV:
		return fmt.Sprintf("pvcreate -y %s", s.Device)
	case StepCreateVG:
		return fmt.Sprintf("vgcreate %s %s", s.VolumeGroup, s.Device)
	case StepExtendVG:
		return fmt.Sprintf("vgextend %s %s", s.VolumeGroup, s.Device)
	case StepCreateLV:
		return fmt.Sprintf("lvcreate --yes --name %s --size %s %s", s.LogicalVolume, s.Size, s.VolumeGroup)
	case StepMakeFS:
		if s.FSType == "ext4" {
			return fmt.Sprintf("mkfs.ext4 -F %s", s.Target)
		}
		return fmt.Sprintf("mkfs.xfs -f %s", s.Target)
	case StepMount:
		return fmt.Sprintf("mkdir -p %s && mount %s %s", s.MountPoint, s.Target, s.MountPoint)
	case StepFstab:
		entry := fmt.Sprintf("%s %s %s defaults,nofail 0 2", s.Target, s.MountPoint, s.FSType)
		return fmt.Sprintf("grep -q '^%s ' /etc/fstab || echo '%s' >> /etc/fstab", s.Target, entry)
	default:
		return ""
	}
}
