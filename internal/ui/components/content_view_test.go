package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/rebeliceyang/lazynav/internal/ui/theme"
)

func TestItemMarkdown(t *testing.T) {
	md := ItemMarkdown(ContentItem{
		ID:          "find",
		Label:       "Find",
		Href:        "https://find.example.com",
		Description: "Search tool",
		External:    true,
		Breadcrumb:  []string{"Apps", "Find"},
	})

	for _, want := range []string{"# Find", "_Apps › Find_", "Search tool", "**External link:** <https://find.example.com>"} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q, got:\n%s", want, md)
		}
	}
}

func TestItemMarkdown_Sections(t *testing.T) {
	md := ItemMarkdown(ContentItem{
		ID:         "apps",
		Label:      "Apps",
		Href:       "#",
		Breadcrumb: []string{"Apps"},
		Children:   []string{"Find", "Inlet"},
	})

	if !strings.Contains(md, "## Sections") || !strings.Contains(md, "- Inlet") {
		t.Errorf("Expected child sections, got:\n%s", md)
	}
	if strings.Contains(md, "Link") {
		t.Error("Placeholder href should not be shown")
	}
	if strings.Contains(md, "›") {
		t.Error("Top-level items have no breadcrumb line")
	}
}

func TestItemMarkdown_Empty(t *testing.T) {
	if md := ItemMarkdown(ContentItem{}); md != "" {
		t.Errorf("Expected empty markdown, got %q", md)
	}
}

func TestContentView_EmptyState(t *testing.T) {
	c := NewContentView(theme.DefaultTheme())
	if !strings.Contains(c.View(), "Select a destination") {
		t.Error("Expected empty state")
	}
}

func TestContentView_RendersItem(t *testing.T) {
	c := NewContentView(theme.DefaultTheme())
	c.SetSize(60, 12)
	c.SetItem(ContentItem{ID: "home", Label: "Home", Href: "#home", Description: "Welcome to the portal"})

	view := ansi.Strip(c.View())
	if !strings.Contains(view, "Home") || !strings.Contains(view, "Welcome to the portal") {
		t.Errorf("Expected rendered content, got:\n%s", view)
	}
	if lines := strings.Split(view, "\n"); len(lines) != 12 {
		t.Errorf("Expected 12 lines, got %d", len(lines))
	}
}

func TestContentView_SetSameItemKeepsState(t *testing.T) {
	c := NewContentView(theme.DefaultTheme())
	item := ContentItem{ID: "home", Label: "Home"}
	c.SetItem(item)
	c.View()

	c.SetItem(item)
	if c.dirty {
		t.Error("Setting the same item should not re-render")
	}
}

func TestContentView_CopyHref(t *testing.T) {
	cv := NewContentView(theme.DefaultTheme())
	var copied string
	cv.WriteClipboard = func(s string) error {
		copied = s
		return nil
	}

	cv.SetItem(ContentItem{ID: "home", Label: "Home", Href: "#"})
	if err := cv.CopyHref(); !errors.Is(err, ErrNoLink) {
		t.Errorf("Expected ErrNoLink for placeholder href, got %v", err)
	}

	cv.SetItem(ContentItem{ID: "find", Label: "Find", Href: "https://find.example.com", External: true})
	if err := cv.CopyHref(); err != nil {
		t.Fatalf("CopyHref: %v", err)
	}
	if copied != "https://find.example.com" {
		t.Errorf("Expected href to be copied, got %q", copied)
	}
}
