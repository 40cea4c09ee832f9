package navtree

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Classification is the outcome of matching a term against every item
type Classification struct {
	Marks   map[string]Mark
	Expand  []string // parents that must be open for the matches to show
	Matches int
}

// Classify marks each item of t as match, related or hidden for term.
// Labels are compared as case-folded substrings. Ancestors of a match and all
// descendants of a matching parent are related; a match is never downgraded.
func Classify(t *Tree, term string) Classification {
	cl := Classification{Marks: make(map[string]Mark, t.Len())}
	needle := foldString(term)
	expand := make(map[string]bool)

	for _, it := range t.Items() {
		if !strings.Contains(foldString(it.Label), needle) {
			continue
		}
		cl.Marks[it.ID] = MarkMatch
		cl.Matches++

		for p := it.Parent(); p != nil; p = p.Parent() {
			if cl.Marks[p.ID] != MarkMatch {
				cl.Marks[p.ID] = MarkRelated
			}
			if !expand[p.ID] {
				expand[p.ID] = true
				cl.Expand = append(cl.Expand, p.ID)
			}
		}

		if it.HasChildren() {
			markDescendants(it.Owns, cl.Marks)
			if !expand[it.ID] {
				expand[it.ID] = true
				cl.Expand = append(cl.Expand, it.ID)
			}
		}
	}

	for _, it := range t.Items() {
		if _, ok := cl.Marks[it.ID]; !ok {
			cl.Marks[it.ID] = MarkHidden
		}
	}
	return cl
}

func markDescendants(g *Group, marks map[string]Mark) {
	for _, it := range g.Items {
		if marks[it.ID] != MarkMatch {
			marks[it.ID] = MarkRelated
		}
		if it.HasChildren() {
			markDescendants(it.Owns, marks)
		}
	}
}

// Filter applies term to the tree and returns the number of matches.
// Terms shorter than the activation threshold reset the tree: every mark is
// cleared, every parent collapses and the current item is made reachable.
// Repeating a term leaves the tree unchanged.
func (c *Controller) Filter(term string) int {
	term = strings.TrimSpace(term)
	c.filterTerm = term

	if utf8.RuneCountInString(term) < c.minFilterLength {
		c.resetFilter()
		return 0
	}

	cl := Classify(c.tree, term)
	c.tree.Filtering = true
	for _, it := range c.tree.items {
		it.Mark = cl.Marks[it.ID]
	}
	for _, id := range cl.Expand {
		c.Expand(id)
	}
	c.normalizeTabStop()

	c.logger.Debug("filter", "term", term, "matches", cl.Matches)
	return cl.Matches
}

func (c *Controller) resetFilter() {
	c.tree.Filtering = false
	for _, it := range c.tree.items {
		it.Mark = MarkNone
		if it.HasChildren() && it.Expanded {
			it.Expanded = false
			it.Owns.Inert = true
		}
	}
	if c.currentID != "" {
		c.EnsureVisible(c.currentID)
	}
	c.normalizeTabStop()
}

// foldString case-folds s for caseless comparison
func foldString(s string) string {
	return cases.Fold().String(s)
}
