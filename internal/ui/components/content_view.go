package components

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/lazynav/internal/ui/theme"
)

// ErrNoLink is returned when the shown item has nothing to copy
var ErrNoLink = errors.New("no link to copy")

// ContentItem is the page shown for an activated destination
type ContentItem struct {
	ID          string
	Label       string
	Href        string
	Description string
	External    bool
	Breadcrumb  []string // labels from the top-level ancestor down to the item
	Children    []string // labels of direct children, for sections
}

// ContentView displays the current destination rendered as markdown
type ContentView struct {
	Width  int
	Height int
	Theme  theme.Theme

	Item     ContentItem
	Markdown string // source of the rendered content

	// WriteClipboard receives copied links; defaults to the system clipboard
	WriteClipboard func(string) error

	viewport viewport.Model
	renderer *glamour.TermRenderer
	wrap     int
	dirty    bool
}

// NewContentView creates a new content view
func NewContentView(th theme.Theme) *ContentView {
	return &ContentView{
		Width:    80,
		Height:   20,
		Theme:    th,
		viewport: viewport.New(80, 20),

		WriteClipboard: clipboard.WriteAll,
	}
}

// SetItem shows item. Setting the same item again keeps the scroll position.
func (c *ContentView) SetItem(item ContentItem) {
	md := ItemMarkdown(item)
	if c.Item.ID == item.ID && c.Markdown == md {
		return
	}
	c.Item = item
	c.Markdown = md
	c.dirty = true
	c.viewport.GotoTop()
}

// SetSize resizes the view
func (c *ContentView) SetSize(width, height int) {
	if c.Width == width && c.Height == height {
		return
	}
	c.Width = width
	c.Height = height
	c.dirty = true
}

// ItemMarkdown builds the markdown page for item
func ItemMarkdown(item ContentItem) string {
	if item.ID == "" {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", item.Label)
	if len(item.Breadcrumb) > 1 {
		fmt.Fprintf(&b, "_%s_\n\n", strings.Join(item.Breadcrumb, " › "))
	}
	if item.Description != "" {
		b.WriteString(item.Description)
		b.WriteString("\n\n")
	}
	if len(item.Children) > 0 {
		b.WriteString("## Sections\n\n")
		for _, child := range item.Children {
			fmt.Fprintf(&b, "- %s\n", child)
		}
		b.WriteString("\n")
	}
	if item.Href != "" && item.Href != "#" {
		if item.External {
			fmt.Fprintf(&b, "**External link:** <%s>\n", item.Href)
		} else {
			fmt.Fprintf(&b, "**Link:** `%s`\n", item.Href)
		}
	}
	return b.String()
}

// render converts the markdown for the current wrap width, recreating the
// renderer when the width changes
func (c *ContentView) render() string {
	md := strings.TrimSpace(c.Markdown)
	if md == "" {
		return ""
	}

	wrap := c.Width - 4
	if wrap < 24 {
		wrap = 24
	}
	if c.renderer == nil || c.wrap != wrap {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return md
		}
		c.renderer = renderer
		c.wrap = wrap
	}

	out, err := c.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// Update scrolls the content
func (c *ContentView) Update(msg tea.Msg) (*ContentView, tea.Cmd) {
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return c, cmd
}

// IsScrollable returns true if content exceeds visible area
func (c *ContentView) IsScrollable() bool {
	return c.viewport.TotalLineCount() > c.viewport.Height
}

// CopyHref copies the destination link to the clipboard
func (c *ContentView) CopyHref() error {
	if c.Item.Href == "" || c.Item.Href == "#" {
		return ErrNoLink
	}
	return c.WriteClipboard(c.Item.Href)
}

// View renders the content view
func (c *ContentView) View() string {
	if c.Markdown == "" {
		style := lipgloss.NewStyle().
			Foreground(c.Theme.Metadata).
			Italic(true).
			Width(c.Width).
			Align(lipgloss.Center)
		return style.Render("Select a destination")
	}

	bodyHeight := c.Height - 1 // footer
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	if c.dirty || c.viewport.Width != c.Width || c.viewport.Height != bodyHeight {
		c.viewport.Width = c.Width
		c.viewport.Height = bodyHeight
		c.viewport.SetContent(c.render())
		c.dirty = false
	}

	helpParts := []string{}
	if c.IsScrollable() {
		helpParts = append(helpParts, fmt.Sprintf("↑↓: Scroll %3.f%%", c.viewport.ScrollPercent()*100))
	}
	if c.Item.External {
		helpParts = append(helpParts, "y: Copy link")
	}
	helpText := strings.Join(helpParts, " │ ")
	helpStyle := lipgloss.NewStyle().
		Foreground(c.Theme.Metadata).
		Italic(true)

	// Footer with right-aligned help
	footerPadding := c.Width - runewidth.StringWidth(helpText)
	if footerPadding < 0 {
		footerPadding = 0
	}
	footer := strings.Repeat(" ", footerPadding) + helpStyle.Render(helpText)

	return c.viewport.View() + "\n" + footer
}
