package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Box drawing characters
const (
	TopLeft     = "╭"
	TopRight    = "╮"
	BottomLeft  = "╰"
	BottomRight = "╯"
	Horizontal  = "─"
	Vertical    = "│"
	LeftT       = "├"
	RightT      = "┤"
)

// Color palette
const (
	ColorBorder  = "240"
	ColorHeader  = "252"
	ColorKey     = "81"
	ColorUpdated = "82"
	ColorSkipped = "245"
	ColorDryRun  = "214"
	ColorError   = "196"
	ColorMuted   = "240"
	ColorHint    = "245"
)

// Shared styles
var (
	BorderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorHeader))
	KeyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorKey))
	UpdatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorUpdated))
	SkippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSkipped))
	DryRunStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDryRun))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	HintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHint))
)

// padRight pads a string to the specified display width using runewidth
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-sw)
}
