package tui

import (
	"github.com/charmbracelet/lipgloss"

	"proteinflip/internal/domain"
)

var (
	colorText   = lipgloss.Color("#f2f2f2")
	colorMuted  = lipgloss.Color("#7a8699")
	colorAccent = lipgloss.Color("#2196F3")
	colorHit    = lipgloss.Color("#8BC34A")
	colorNear   = lipgloss.Color("#FF9800")
	colorLow    = lipgloss.Color("#e53935")
	colorCard   = lipgloss.Color("#1a2536")
)

// Styles holds the lipgloss styles used by every screen.
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Help    lipgloss.Style
	Warning lipgloss.Style
	Accent  lipgloss.Style
	Digit   lipgloss.Style
	Flap    lipgloss.Style
	Cell    lipgloss.Style
	Cursor  lipgloss.Style
	Tab     lipgloss.Style
	TabOn   lipgloss.Style
}

// DefaultStyles returns the dark palette.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colorText).MarginBottom(1),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Help:    lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
		Warning: lipgloss.NewStyle().Foreground(colorLow).Bold(true),
		Accent:  lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Digit: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Background(colorCard).
			Padding(0, 1),
		Flap: lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorCard).
			Padding(0, 1),
		Cell:   lipgloss.NewStyle().Width(6).Align(lipgloss.Center),
		Cursor: lipgloss.NewStyle().Width(6).Align(lipgloss.Center).Reverse(true),
		Tab:    lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1),
		TabOn:  lipgloss.NewStyle().Foreground(colorText).Bold(true).Underline(true).Padding(0, 1),
	}
}

// StatusColor maps a status tier to its display colour.
func StatusColor(s domain.Status) lipgloss.Color {
	switch s {
	case domain.StatusHit:
		return colorHit
	case domain.StatusNear:
		return colorNear
	case domain.StatusLow:
		return colorLow
	default:
		return colorMuted
	}
}
