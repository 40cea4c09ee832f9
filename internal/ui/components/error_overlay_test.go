package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/rebeliceyang/lazynav/internal/ui/theme"
)

func TestErrorOverlay_View(t *testing.T) {
	overlay := NewErrorOverlay(theme.DefaultTheme())
	overlay.SetError("Navigation Error", "duplicate node id \"apps\"")

	out := ansi.Strip(overlay.View())

	if !strings.Contains(out, "Navigation Error") {
		t.Errorf("expected title in overlay, got:\n%s", out)
	}
	if !strings.Contains(out, "duplicate node id") {
		t.Errorf("expected message in overlay, got:\n%s", out)
	}
	if !strings.Contains(out, "Esc") {
		t.Errorf("expected dismiss hint in overlay, got:\n%s", out)
	}
}
