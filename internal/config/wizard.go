package config

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// fsTypeOptions are the selectable filesystem types.
var fsTypeOptions = []huh.Option[string]{
	huh.NewOption("xfs (recommended)", string(FSXFS)),
	huh.NewOption("ext4", string(FSExt4)),
}

// RunWizard interactively builds a Config. It asks for the target device,
// the optional LVM layer, the filesystem, and the execution target.
func RunWizard(ctx context.Context) (*Config, error) {
	cfg := &Config{}
	var (
		useLVM    bool
		useRemote bool
		fsType    string
		port      string
	)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target Device").
				Description("Block device to provision, e.g. /dev/sdb").
				Placeholder("/dev/sdb").
				Value(&cfg.Device).
				Validate(validateDevice),
			huh.NewSelect[string]().
				Title("Filesystem").
				Options(fsTypeOptions...).
				Value(&fsType),
			huh.NewConfirm().
				Title("Use LVM?").
				Description("Put the device under a volume group with a logical volume").
				Value(&useLVM),
		).Title("Storage Target"),
	).RunWithContext(ctx)
	if err != nil {
		return nil, err
	}
	cfg.FSType = FSType(fsType)

	if useLVM {
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Volume Group").
					Placeholder("data").
					Value(&cfg.VolumeGroup).
					Validate(required("volume group name")),
				huh.NewInput().
					Title("Logical Volume").
					Placeholder("data01").
					Value(&cfg.LogicalVolume).
					Validate(required("logical volume name")),
				huh.NewInput().
					Title("Size").
					Description("lvcreate notation, e.g. 100G").
					Placeholder("100G").
					Value(&cfg.Size).
					Validate(required("size")),
			).Title("LVM Layout"),
		).RunWithContext(ctx)
		if err != nil {
			return nil, err
		}
	}

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Mount Point (optional)").
				Description("Leave empty for the default under /mnt").
				Value(&cfg.MountPoint),
			huh.NewConfirm().
				Title("Wipe existing signatures?").
				Description("Destructive; still gated behind --apply at run time").
				Value(&cfg.Wipe),
			huh.NewConfirm().
				Title("Provision a remote host over SSH?").
				Value(&useRemote),
		).Title("Options"),
	).RunWithContext(ctx)
	if err != nil {
		return nil, err
	}

	if useRemote {
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Host").
					Placeholder("10.0.0.5").
					Value(&cfg.Remote.Host).
					Validate(required("host")),
				huh.NewInput().
					Title("User").
					Placeholder("root").
					Value(&cfg.Remote.User).
					Validate(required("user")),
				huh.NewInput().
					Title("SSH Key Path (optional)").
					Description("Leave empty to use the SSH agent").
					Value(&cfg.Remote.KeyPath),
				huh.NewInput().
					Title("Port").
					Placeholder("22").
					Value(&port).
					Validate(validatePort),
			).Title("Remote Target"),
		).RunWithContext(ctx)
		if err != nil {
			return nil, err
		}
		if port != "" {
			cfg.Remote.Port, _ = strconv.Atoi(port)
		}
	}

	cfg.Finalize()
	return cfg, nil
}

func validateDevice(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("device is required")
	}
	if !strings.HasPrefix(s, "/dev/") {
		return errors.New("device must be a /dev path")
	}
	return nil
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(what + " is required")
		}
		return nil
	}
}

func validatePort(s string) error {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return errors.New("port must be a number between 1 and 65535")
	}
	return nil
}
