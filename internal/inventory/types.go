// Package inventory collects block-device topology from a target host and
// classifies unpartitioned disks as provisioning candidates.
package inventory

import "encoding/json"

// BlockDevice is the normalized view of one disk-type device.
type BlockDevice struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	SizeBytes  uint64 `json:"sizeBytes"`
	Type       string `json:"type"`
	Mountpoint string `json:"mountpoint,omitempty"`
	Partitions int    `json:"partitions"`
}

// advisoryMinSize is the size below which a disk is flagged as small in
// operator-facing output. It is advisory only and never filters candidates.
const advisoryMinSize = 50 * 1024 * 1024 * 1024

// BelowAdvisorySize reports whether the disk is smaller than the advisory
// candidate size.
func (d BlockDevice) BelowAdvisorySize() bool {
	return d.SizeBytes < advisoryMinSize
}

// Raw JSON representation from lsblk --bytes --json.
type rawTree struct {
	Blockdevices []rawDevice `json:"blockdevices"`
}

type rawDevice struct {
	Name       string  `json:"name"`
	Path       string  `json:"path"`
	Size       any     `json:"size"` // number (bytes) with --bytes, string otherwise
	Type       string  `json:"type"`
	Mountpoint *string `json:"mountpoint,omitempty"`
}

// normalizeSize copes with lsblk emitting size as either a JSON number or a
// decimal string depending on version.
func normalizeSize(v any) uint64 {
	switch t := v.(type) {
	case float64:
		if t < 0 {
			return 0
		}
		return uint64(t)
	case int64:
		if t < 0 {
			return 0
		}
		return uint64(t)
	case json.Number:
		n, _ := t.Int64()
		if n < 0 {
			return 0
		}
		return uint64(n)
	case string:
		var n uint64
		for _, c := range t {
			if c < '0' || c > '9' {
				return 0
			}
			n = n*10 + uint64(c-'0')
		}
		return n
	default:
		return 0
	}
}
