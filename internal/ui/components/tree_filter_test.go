// internal/ui/components/tree_filter_test.go
package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestMatchPositions_Simple(t *testing.T) {
	positions := MatchPositions("Spelling Bee", "bee")

	expected := []int{9, 10, 11}
	if len(positions) != len(expected) {
		t.Fatalf("expected %d positions, got %d", len(expected), len(positions))
	}
	for i, p := range expected {
		if positions[i] != p {
			t.Errorf("position %d: expected %d, got %d", i, p, positions[i])
		}
	}
}

func TestMatchPositions_CaseInsensitive(t *testing.T) {
	positions := MatchPositions("Find", "FIN")
	if len(positions) != 3 || positions[0] != 0 {
		t.Errorf("expected match at start, got %v", positions)
	}
}

func TestMatchPositions_FirstOccurrence(t *testing.T) {
	positions := MatchPositions("banana", "ana")
	if len(positions) == 0 || positions[0] != 1 {
		t.Errorf("expected first occurrence at 1, got %v", positions)
	}
}

func TestMatchPositions_Multibyte(t *testing.T) {
	positions := MatchPositions("Café Menu", "é m")
	if len(positions) != 3 || positions[0] != 3 {
		t.Errorf("expected rune positions starting at 3, got %v", positions)
	}
}

func TestMatchPositions_NoMatch(t *testing.T) {
	if positions := MatchPositions("Inlet", "xyz"); positions != nil {
		t.Errorf("expected nil, got %v", positions)
	}
	if positions := MatchPositions("Inlet", "   "); positions != nil {
		t.Errorf("expected nil for blank term, got %v", positions)
	}
	if positions := MatchPositions("In", "inlet"); positions != nil {
		t.Errorf("expected nil for term longer than label, got %v", positions)
	}
}

func TestHighlightMatch_KeepsText(t *testing.T) {
	base := lipgloss.NewStyle()
	hl := lipgloss.NewStyle().Bold(true)

	out := HighlightMatch("Spotify Visualizer", "visual", base, hl)

	plain := ansi.Strip(out)
	if plain != "Spotify Visualizer" {
		t.Errorf("expected label text preserved, got %q", plain)
	}
}

func TestHighlightMatch_NoPosition(t *testing.T) {
	base := lipgloss.NewStyle()
	hl := lipgloss.NewStyle()

	out := HighlightMatch("Find", "zzz", base, hl)
	if !strings.Contains(out, "Find") {
		t.Errorf("expected label in output, got %q", out)
	}
}
