package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme and styling
type Theme struct {
	Name string

	// Background colors
	Background lipgloss.Color
	Foreground lipgloss.Color

	// UI elements
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
	Selection     lipgloss.Color
	Cursor        lipgloss.Color

	// Status colors
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Tree colors
	Current  lipgloss.Color // active page
	Parent   lipgloss.Color // section labels
	External lipgloss.Color // ↗ affordance
	Icon     lipgloss.Color
	Metadata lipgloss.Color

	// Filter colors
	Match   lipgloss.Color
	Related lipgloss.Color
}

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMochaTheme()
	case "default":
		return DefaultTheme()
	default:
		return DefaultTheme()
	}
}

// Names lists the selectable theme names
func Names() []string {
	return []string{"default", "catppuccin-mocha"}
}
