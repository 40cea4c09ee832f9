package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/lazynav/internal/ui/theme"
)

// FilterChangedMsg is sent whenever the filter text changes
type FilterChangedMsg struct {
	Term string
}

// CloseFilterMsg is sent when focus should return to the tree
type CloseFilterMsg struct{}

// FilterInput provides the live filter field above the tree
type FilterInput struct {
	Input     textinput.Model
	Theme     theme.Theme
	Width     int
	MinLength int // terms shorter than this do not filter

	matches   int
	filtering bool
}

// NewFilterInput creates a new filter input
func NewFilterInput(th theme.Theme, minLength int) *FilterInput {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Prompt = "/ "
	ti.CharLimit = 128
	ti.Width = 40
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(th.Cursor)
	ti.PromptStyle = lipgloss.NewStyle().Foreground(th.BorderFocused)

	return &FilterInput{
		Input:     ti,
		Theme:     th,
		MinLength: minLength,
	}
}

// Focus gives the field keyboard focus with the cursor after any
// existing term, so typing extends it and backspace trims it.
func (f *FilterInput) Focus() tea.Cmd {
	cmd := f.Input.Focus()
	f.Input.CursorEnd()
	return cmd
}

// Blur removes keyboard focus
func (f *FilterInput) Blur() {
	f.Input.Blur()
}

// Focused reports whether the field has keyboard focus
func (f *FilterInput) Focused() bool {
	return f.Input.Focused()
}

// Value returns the raw field value
func (f *FilterInput) Value() string {
	return f.Input.Value()
}

// Reset clears the filter field
func (f *FilterInput) Reset() {
	f.Input.SetValue("")
	f.matches = 0
	f.filtering = false
}

// SetResult records the outcome of the last filter run for display
func (f *FilterInput) SetResult(matches int, filtering bool) {
	f.matches = matches
	f.filtering = filtering
}

// Update handles messages
func (f *FilterInput) Update(msg tea.Msg) (*FilterInput, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			// Escape clears a non-empty filter, then leaves the field
			if f.Input.Value() == "" {
				return f, func() tea.Msg { return CloseFilterMsg{} }
			}
			f.Input.SetValue("")
			return f, changed("")
		case "enter", "down", "tab":
			return f, func() tea.Msg { return CloseFilterMsg{} }
		}
	}

	before := f.Input.Value()
	var cmd tea.Cmd
	f.Input, cmd = f.Input.Update(msg)
	if after := f.Input.Value(); after != before {
		return f, tea.Batch(cmd, changed(after))
	}
	return f, cmd
}

func changed(term string) tea.Cmd {
	return func() tea.Msg {
		return FilterChangedMsg{Term: term}
	}
}

// Status describes the filter state shown next to the field
func (f *FilterInput) Status() string {
	term := strings.TrimSpace(f.Input.Value())
	switch {
	case term == "":
		return ""
	case !f.filtering:
		return fmt.Sprintf("type %d+ chars", f.MinLength)
	case f.matches == 1:
		return "1 match"
	default:
		return fmt.Sprintf("%d matches", f.matches)
	}
}

// View renders the filter input
func (f *FilterInput) View() string {
	status := f.Status()
	statusStyle := lipgloss.NewStyle().
		Foreground(f.Theme.Metadata).
		Italic(true)
	if f.filtering && f.matches == 0 {
		statusStyle = statusStyle.Foreground(f.Theme.Warning)
	}

	borderColor := f.Theme.Border
	if f.Input.Focused() {
		borderColor = f.Theme.BorderFocused
	}
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(f.Width - 2)

	// Reserve space for the status, prompt and frame
	inputWidth := f.Width - boxStyle.GetHorizontalFrameSize() - runewidth.StringWidth(status) - 4
	if inputWidth < 8 {
		inputWidth = 8
	}
	f.Input.Width = inputWidth

	content := f.Input.View()
	if status != "" {
		content += " " + statusStyle.Render(status)
	}
	return boxStyle.Render(content)
}
