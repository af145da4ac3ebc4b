package plan

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/imamik/diskplan/internal/config"
	"github.com/imamik/diskplan/internal/runner"
)

// Plan is the ordered, immutable step sequence for one invocation.
// It is rebuilt fresh every run; nothing persists across invocations.
type Plan struct {
	Device string `json:"device"`
	Steps  []Step `json:"steps"`
}

// VolumeGroupLister is the single live-state read the builder performs.
// The production implementation queries vgs through the execution context;
// tests stub it.
type VolumeGroupLister interface {
	VolumeGroups(ctx context.Context) ([]string, error)
}

// VGQuery lists volume groups through a Runner.
type VGQuery struct {
	Runner runner.Runner
}

// VolumeGroups implements VolumeGroupLister.
func (q VGQuery) VolumeGroups(ctx context.Context) ([]string, error) {
	output, code, err := q.Runner.Run(ctx, "vgs --noheadings -o vg_name")
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return nil, fmt.Errorf("vgs exited %d: %s", code, strings.TrimSpace(output))
	}

	var groups []string
	for _, line := range strings.Split(output, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			groups = append(groups, name)
		}
	}
	return groups, nil
}

// Build derives the provisioning plan from cfg. Except for the
// volume-group existence read it performs no execution.
//
// A failed volume-group listing degrades to the create path: dry-run must
// stay usable against hosts where LVM tooling is absent or unreadable, and
// the true state surfaces as soon as a step is actually applied.
func Build(ctx context.Context, cfg *config.Config, vgs VolumeGroupLister) (*Plan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var steps []Step

	if cfg.Wipe {
		steps = append(steps,
			Step{Kind: StepWipeTable, Device: cfg.Device},
			Step{Kind: StepWipeSignatures, Device: cfg.Device},
		)
	}

	steps = append(steps, Step{Kind: StepCreatePV, Device: cfg.Device})

	target := cfg.Device
	if cfg.VolumeGroup != "" {
		kind := StepCreateVG
		if existing, err := vgs.VolumeGroups(ctx); err == nil && slices.Contains(existing, cfg.VolumeGroup) {
			kind = StepExtendVG
		}
		steps = append(steps, Step{Kind: kind, VolumeGroup: cfg.VolumeGroup, Device: cfg.Device})

		if cfg.LogicalVolume != "" {
			steps = append(steps, Step{
				Kind:          StepCreateLV,
				VolumeGroup:   cfg.VolumeGroup,
				LogicalVolume: cfg.LogicalVolume,
				Size:          cfg.Size,
			})
			target = fmt.Sprintf("/dev/%s/%s", cfg.VolumeGroup, cfg.LogicalVolume)
		}
	}

	steps = append(steps,
		Step{Kind: StepMakeFS, Target: target, FSType: string(cfg.FSType)},
		Step{Kind: StepMount, Target: target, MountPoint: cfg.MountPoint},
		Step{Kind: StepFstab, Target: target, MountPoint: cfg.MountPoint, FSType: string(cfg.FSType)},
	)

	return &Plan{Device: cfg.Device, Steps: steps}, nil
}
