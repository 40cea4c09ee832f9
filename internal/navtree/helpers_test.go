package navtree

import (
	"testing"

	"github.com/rebeliceyang/lazynav/internal/models"
	"github.com/stretchr/testify/require"
)

// portalData is the two-group map used throughout the scenarios:
// group 1 holds the current "Home" leaf, group 2 holds "Apps" owning
// "Find" and "Inlet".
func portalData() *models.TreeData {
	return &models.TreeData{
		Label: "Portal",
		Groups: []models.TreeGroup{
			{Items: []*models.TreeNode{
				{ID: "home", Label: "Home", Href: "#home", Current: true},
			}},
			{Items: []*models.TreeNode{
				{ID: "apps", Label: "Apps", Href: "#apps", Items: []*models.TreeNode{
					{ID: "find", Label: "Find", Href: "https://find.example.com", External: true},
					{ID: "inlet", Label: "Inlet", Href: "https://inlet.example.com", External: true},
				}},
			}},
		},
	}
}

// nestedData adds a second level below "Apps" and a sibling section
func nestedData() *models.TreeData {
	return &models.TreeData{
		Label: "Nested",
		Groups: []models.TreeGroup{
			{Items: []*models.TreeNode{
				{ID: "home", Label: "Home", Href: "#home", Current: true},
				{ID: "about", Label: "About", Href: "#about"},
			}},
			{Items: []*models.TreeNode{
				{ID: "apps", Label: "Apps", Href: "#apps", Items: []*models.TreeNode{
					{ID: "find", Label: "Find", Href: "https://find.example.com", External: true},
					{ID: "tools", Label: "Tools", Href: "#tools", Items: []*models.TreeNode{
						{ID: "hammer", Label: "Hammer", Href: "#hammer"},
						{ID: "saw", Label: "Saw", Href: "#saw"},
					}},
					{ID: "inlet", Label: "Inlet", Href: "https://inlet.example.com", External: true},
				}},
				{ID: "games", Label: "Games", Href: "#games", External: true, Items: []*models.TreeNode{
					{ID: "farkle", Label: "Farkle", Href: "https://farkle.example.com", External: true},
				}},
			}},
		},
	}
}

type focusRecorder struct {
	calls []string
}

func (f *focusRecorder) Focus(id string) {
	f.calls = append(f.calls, id)
}

func (f *focusRecorder) last() string {
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

func mount(t *testing.T, data *models.TreeData, opts ...Option) (*Controller, *focusRecorder) {
	t.Helper()
	tree, err := Render(data)
	require.NoError(t, err)
	fr := &focusRecorder{}
	opts = append([]Option{WithFocusManager(fr)}, opts...)
	return NewController(tree, opts...), fr
}

func visibleIDs(c *Controller) []string {
	var ids []string
	for _, it := range c.VisibleItems() {
		ids = append(ids, it.ID)
	}
	return ids
}

func tabStops(tree *Tree) []string {
	var ids []string
	for _, it := range tree.Items() {
		if it.TabIndex == 0 {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// requireRovingTabIndex checks that exactly one item has tabindex 0, every
// other item has -1 and the tab stop is reachable whenever anything is.
func requireRovingTabIndex(t require.TestingT, c *Controller) {
	stops := tabStops(c.Tree())
	require.Len(t, stops, 1, "expected a single tab stop")
	for _, it := range c.Tree().Items() {
		if it.TabIndex != 0 {
			require.Equal(t, -1, it.TabIndex, "item %s", it.ID)
		}
	}
	visible := c.VisibleItems()
	if len(visible) == 0 {
		return
	}
	reachable := false
	for _, it := range visible {
		if it.ID == stops[0] {
			reachable = true
		}
	}
	require.True(t, reachable, "tab stop %s is not reachable", stops[0])
	require.Equal(t, stops[0], c.FocusedID())
}
