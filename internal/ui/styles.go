// Package ui renders plans and inventory listings for the terminal.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	stepStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	destructiveStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

const (
	candidateMark = "[OK]"
	inUseMark     = "[--]"
	warnMark      = "[??]"
)
