package theme

import "github.com/charmbracelet/lipgloss"

// CatppuccinMochaTheme maps the Catppuccin Mocha palette onto the tree roles
func CatppuccinMochaTheme() Theme {
	return Theme{
		Name: "catppuccin-mocha",

		// Background colors
		Background: lipgloss.Color("#1e1e2e"), // Base
		Foreground: lipgloss.Color("#cdd6f4"), // Text

		// UI elements
		Border:        lipgloss.Color("#45475a"), // Surface1
		BorderFocused: lipgloss.Color("#89b4fa"), // Blue
		Selection:     lipgloss.Color("#313244"), // Surface0
		Cursor:        lipgloss.Color("#f5e0dc"), // Rosewater

		// Status colors
		Warning: lipgloss.Color("#f9e2af"), // Yellow
		Error:   lipgloss.Color("#f38ba8"), // Red
		Info:    lipgloss.Color("#89dceb"), // Sky

		// Tree colors
		Current:  lipgloss.Color("#a6e3a1"), // Green - active page
		Parent:   lipgloss.Color("#89b4fa"), // Blue - section label
		External: lipgloss.Color("#fab387"), // Peach - external link
		Icon:     lipgloss.Color("#a6adc8"), // Subtext0 - expand icons
		Metadata: lipgloss.Color("#6c7086"), // Overlay0 - metadata text

		// Filter colors
		Match:   lipgloss.Color("#f9e2af"), // Yellow - matched label
		Related: lipgloss.Color("#94e2d5"), // Teal - ancestor or descendant of a match
	}
}

