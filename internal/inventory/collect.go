package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/imamik/diskplan/internal/runner"
)

const lsblkColumns = "NAME,PATH,SIZE,TYPE,MOUNTPOINT"

// Collect gathers disk-type block devices from the target host. Partitions,
// loop and optical devices are excluded. The partition count of each disk is
// resolved with a secondary per-device query.
//
// Any failure (tool missing, permission denied, host unreachable) is
// returned to the caller, who treats it as "no candidates" rather than
// aborting the overall flow.
func Collect(ctx context.Context, r runner.Runner) ([]BlockDevice, error) {
	command := fmt.Sprintf("lsblk --bytes --json -o %s", lsblkColumns)
	output, code, err := r.Run(ctx, command)
	if err != nil {
		return nil, fmt.Errorf("lsblk: %w", err)
	}
	if code != 0 {
		return nil, fmt.Errorf("lsblk exited %d: %s", code, strings.TrimSpace(output))
	}

	var tree rawTree
	if err := json.Unmarshal([]byte(output), &tree); err != nil {
		return nil, fmt.Errorf("lsblk json: %w", err)
	}

	devices := make([]BlockDevice, 0, len(tree.Blockdevices))
	for _, raw := range tree.Blockdevices {
		if raw.Type != "disk" {
			continue
		}
		dev := BlockDevice{
			Name:      raw.Name,
			Path:      firstNonEmpty(raw.Path, "/dev/"+raw.Name),
			SizeBytes: normalizeSize(raw.Size),
			Type:      raw.Type,
		}
		if raw.Mountpoint != nil {
			dev.Mountpoint = *raw.Mountpoint
		}

		count, err := partitionCount(ctx, r, dev.Path)
		if err != nil {
			return nil, err
		}
		dev.Partitions = count

		devices = append(devices, dev)
	}
	return devices, nil
}

// partitionCount queries one device for the number of partition rows
// lsblk reports beneath it.
func partitionCount(ctx context.Context, r runner.Runner, path string) (int, error) {
	output, code, err := r.Run(ctx, fmt.Sprintf("lsblk --noheadings -o TYPE %s", path))
	if err != nil {
		return 0, fmt.Errorf("lsblk %s: %w", path, err)
	}
	if code != 0 {
		return 0, fmt.Errorf("lsblk %s exited %d: %s", path, code, strings.TrimSpace(output))
	}

	count := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "part" {
			count++
		}
	}
	return count, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
