package terminal

import "github.com/charmbracelet/lipgloss"

// Colors adapt to light and dark terminal backgrounds
var (
	removedColor = lipgloss.AdaptiveColor{Light: "#B42318", Dark: "#F97066"}
	addedColor   = lipgloss.AdaptiveColor{Light: "#067647", Dark: "#47CD89"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#667085", Dark: "#98A2B3"}
)

var (
	removedStyle = lipgloss.NewStyle().Foreground(removedColor)
	addedStyle   = lipgloss.NewStyle().Foreground(addedColor)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
)
