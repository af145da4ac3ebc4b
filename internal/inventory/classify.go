package inventory

// Candidates returns the subset of devices with no partitions.
//
// This is a pure filter: size is reported alongside each device but never
// excludes one. Small disks are only flagged for the operator (see
// BlockDevice.BelowAdvisorySize); enforcing a size threshold here would
// silently change behavior the operator relies on.
func Candidates(devices []BlockDevice) []BlockDevice {
	out := make([]BlockDevice, 0, len(devices))
	for _, d := range devices {
		if d.Partitions == 0 {
			out = append(out, d)
		}
	}
	return out
}
