package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/diskplan/internal/inventory"
	"github.com/imamik/diskplan/internal/plan"
)

// Renderer formats terminal output. With color disabled (non-tty or JSON
// pipelines) all styles degrade to plain text.
type Renderer struct {
	color bool
}

// NewRenderer creates a Renderer. Pass color=false when stdout is not a
// terminal.
func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Plan renders the full step listing. Wipe steps are highlighted as
// destructive so the operator sees them before ever reaching for --apply.
func (r *Renderer) Plan(p *plan.Plan, apply bool) string {
	var b strings.Builder

	b.WriteString(r.style(titleStyle, fmt.Sprintf("Plan for %s", p.Device)))
	b.WriteString(r.style(dimStyle, fmt.Sprintf(" (%d steps)", len(p.Steps))))
	b.WriteString("\n")

	for i, step := range p.Steps {
		line := fmt.Sprintf("  %d. %s", i+1, step.Description())
		switch step.Kind {
		case plan.StepWipeTable, plan.StepWipeSignatures:
			b.WriteString(r.style(destructiveStyle, line+"  (destructive)"))
		default:
			b.WriteString(r.style(stepStyle, line))
		}
		b.WriteString("\n")
	}

	if !apply {
		b.WriteString("\n")
		b.WriteString(r.style(warningStyle, "Dry-run: no commands were executed. Re-run with --apply to provision."))
		b.WriteString("\n")
	}
	return b.String()
}

// Inventory renders the device listing with candidate classification.
func (r *Renderer) Inventory(devices, candidates []inventory.BlockDevice) string {
	var b strings.Builder

	b.WriteString(r.style(sectionStyle, "Block Devices"))
	b.WriteString("\n")

	if len(devices) == 0 {
		b.WriteString(r.style(dimStyle, "  no disk-type devices found"))
		b.WriteString("\n")
		return b.String()
	}

	candidate := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		candidate[c.Path] = true
	}

	for _, d := range devices {
		mark, style := inUseMark, dimStyle
		note := fmt.Sprintf("%d partition(s)", d.Partitions)
		if candidate[d.Path] {
			mark, style = candidateMark, okStyle
			note = "candidate"
			if d.BelowAdvisorySize() {
				mark, style = warnMark, warningStyle
				note = "candidate (below 50 GiB advisory size)"
			}
		}
		if d.Mountpoint != "" {
			note += ", mounted at " + d.Mountpoint
		}

		line := fmt.Sprintf("  %s %-12s %8s  %s", mark, d.Path, FormatSize(d.SizeBytes), note)
		b.WriteString(r.style(style, line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(r.style(dimStyle, fmt.Sprintf("%d of %d device(s) are provisioning candidates", len(candidates), len(devices))))
	b.WriteString("\n")
	return b.String()
}

// FormatSize renders a byte count in binary units.
func FormatSize(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
