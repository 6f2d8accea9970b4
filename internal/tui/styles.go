package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/starmatch/internal/config"
	"github.com/lox/starmatch/internal/game"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	HelpTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	StarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	TimerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

// NumberStyles maps each number status to its button style.
type NumberStyles map[game.NumberStatus]lipgloss.Style

// NewNumberStyles builds button styles from a theme.
func NewNumberStyles(theme config.Theme) NumberStyles {
	button := func(colour string) lipgloss.Style {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color(colour)).
			Padding(0, 2).
			Bold(true)
	}
	return NumberStyles{
		game.Available: button(theme.Available),
		game.Used:      button(theme.Used),
		game.Wrong:     button(theme.Wrong),
		game.Candidate: button(theme.Candidate),
	}
}
