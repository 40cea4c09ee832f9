package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/lazynav/internal/ui/theme"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key         string
	Description string
}

// Section is a titled group of key bindings
type Section struct {
	Title string
	Keys  []KeyBinding
}

// FromBindings converts enabled bubbles key bindings to help rows
func FromBindings(bindings ...key.Binding) []KeyBinding {
	out := make([]KeyBinding, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		out = append(out, KeyBinding{Key: h.Key, Description: h.Desc})
	}
	return out
}

// GetTreeKeys returns tree navigation key bindings
func GetTreeKeys() []KeyBinding {
	return []KeyBinding{
		{"↑/↓", "Previous / next visible item"},
		{"→", "Expand, or move to first child"},
		{"←", "Collapse, or move to parent"},
		{"Home/End", "First / last visible item"},
		{"Enter/Space", "Open item"},
		{"a-z", "Jump to next item starting with letter"},
		{"Click ▸", "Expand or collapse"},
		{"Click label", "Open item"},
	}
}

// GetFilterKeys returns filter field key bindings
func GetFilterKeys() []KeyBinding {
	return []KeyBinding{
		{"/", "Focus filter"},
		{"Esc", "Clear filter, then return to tree"},
		{"Enter/↓", "Return to tree"},
	}
}

// GetContentKeys returns content pane key bindings
func GetContentKeys() []KeyBinding {
	return []KeyBinding{
		{"↑/↓, PgUp/PgDn", "Scroll"},
		{"y", "Copy link"},
	}
}

// DefaultSections returns the component sections shown below the global keys
func DefaultSections() []Section {
	return []Section{
		{Title: "Tree", Keys: GetTreeKeys()},
		{Title: "Filter", Keys: GetFilterKeys()},
		{Title: "Content", Keys: GetContentKeys()},
	}
}

// Render creates the help view
func Render(width, height int, th theme.Theme, sections []Section) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.BorderFocused).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Info).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(th.Warning).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(th.Foreground)

	var b strings.Builder

	// Title
	b.WriteString(titleStyle.Render("lazynav - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, s := range sections {
		if len(s.Keys) == 0 {
			continue
		}
		b.WriteString(sectionStyle.Render(s.Title))
		b.WriteString("\n")
		for _, kb := range s.Keys {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(kb.Key))
			b.WriteString(descStyle.Render(kb.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press '?' or Esc to close help"))

	// Wrap in a box
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderFocused).
		Padding(1, 2).
		Width(width - 4).
		Height(height - 4)

	return boxStyle.Render(b.String())
}
