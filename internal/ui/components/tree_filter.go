// internal/ui/components/tree_filter.go
package components

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// MatchPositions returns the rune positions in label covered by the first
// case-insensitive occurrence of term. It returns nil when term is blank or
// does not occur.
func MatchPositions(label, term string) []int {
	needle := []rune(strings.ToLower(strings.TrimSpace(term)))
	if len(needle) == 0 {
		return nil
	}

	hay := []rune(label)
	for start := 0; start+len(needle) <= len(hay); start++ {
		matched := true
		for j, r := range needle {
			if unicode.ToLower(hay[start+j]) != r {
				matched = false
				break
			}
		}
		if matched {
			positions := make([]int, len(needle))
			for j := range needle {
				positions[j] = start + j
			}
			return positions
		}
	}
	return nil
}

// HighlightMatch renders label with base, drawing the runes matched by term
// with hl. Labels without a positional match are drawn entirely with hl.
func HighlightMatch(label, term string, base, hl lipgloss.Style) string {
	positions := MatchPositions(label, term)
	if len(positions) == 0 {
		return hl.Render(label)
	}

	runes := []rune(label)
	first, last := positions[0], positions[len(positions)-1]

	var b strings.Builder
	if first > 0 {
		b.WriteString(base.Render(string(runes[:first])))
	}
	b.WriteString(hl.Render(string(runes[first : last+1])))
	if last+1 < len(runes) {
		b.WriteString(base.Render(string(runes[last+1:])))
	}
	return b.String()
}
