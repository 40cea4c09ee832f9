package theme

import "github.com/charmbracelet/lipgloss"

// DefaultTheme returns the default dark theme
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		// Background colors
		Background: lipgloss.Color("235"),
		Foreground: lipgloss.Color("252"),

		// UI elements
		Border:        lipgloss.Color("240"),
		BorderFocused: lipgloss.Color("62"),
		Selection:     lipgloss.Color("237"),
		Cursor:        lipgloss.Color("248"),

		// Status colors
		Warning: lipgloss.Color("220"),
		Error:   lipgloss.Color("196"),
		Info:    lipgloss.Color("75"),

		// Tree colors
		Current:  lipgloss.Color("42"),
		Parent:   lipgloss.Color("75"),
		External: lipgloss.Color("180"),
		Icon:     lipgloss.Color("244"),
		Metadata: lipgloss.Color("244"),

		// Filter colors
		Match:   lipgloss.Color("220"),
		Related: lipgloss.Color("150"),
	}
}
