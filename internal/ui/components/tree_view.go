package components

// TreeView renders a navtree.Controller as a terminal tree and feeds it
// keyboard and mouse input.
//
// Features:
//   - Unicode icons (▾ expanded, ▸ collapsed, • leaf) and ↗ for external leaves
//   - Tree-view keyboard protocol (↑↓ →← Home End Enter Space, type-ahead)
//   - Clickable expand icons and labels via bubblezone
//   - Viewport scrolling that follows the focused item
//   - Match and related highlighting while a filter is active
//
// Usage:
//
//	tree, err := navtree.Render(data)
//	treeView := components.NewTreeView(tree, theme)
//	treeView.Width = 40
//	treeView.Height = 20
//
//	// In your Update method:
//	treeView, cmd := treeView.Update(msg)
//
//	// In your View method:
//	content := treeView.View()

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/lazynav/internal/navtree"
	"github.com/rebeliceyang/lazynav/internal/ui/theme"
)

// Zone ID prefixes for clickable tree parts
const (
	ZoneTreeTogglePrefix = "tree-toggle:"
	ZoneTreeLabelPrefix  = "tree-label:"
)

// TreeView represents a visual tree component backed by a navtree controller
type TreeView struct {
	Controller   *navtree.Controller
	CursorIndex  int // Row of the focused item in the rendered rows
	Width        int
	Height       int
	Theme        theme.Theme
	ScrollOffset int  // First rendered row
	Focused      bool // Whether the tree panel has input focus

	follow bool // scroll to the cursor on the next render
}

// TreeNodeActivatedMsg is sent when an item becomes current
type TreeNodeActivatedMsg struct {
	Activation navtree.Activation
}

// TreeNodeExpandedMsg is sent when a parent is expanded/collapsed
type TreeNodeExpandedMsg struct {
	ID       string
	Expanded bool
}

// NewTreeView mounts tree and creates a tree view driving it.
// The view is the controller's focus manager.
func NewTreeView(tree *navtree.Tree, th theme.Theme, opts ...navtree.Option) *TreeView {
	tv := &TreeView{
		Width:   40,
		Height:  20,
		Theme:   th,
		Focused: true,
		follow:  true,
	}
	opts = append(opts, navtree.WithFocusManager(tv))
	tv.Controller = navtree.NewController(tree, opts...)
	return tv
}

// Focus implements navtree.FocusManager: the cursor follows focus
func (tv *TreeView) Focus(id string) {
	rows := tv.rows()
	if i := rowIndex(rows, id); i >= 0 {
		tv.CursorIndex = i
	}
	tv.follow = true
}

// treeRow is one rendered line: an item or a group separator
type treeRow struct {
	item *navtree.Item
}

// rows flattens the visible items, separating top-level groups
func (tv *TreeView) rows() []treeRow {
	visible := tv.Controller.VisibleItems()
	rows := make([]treeRow, 0, len(visible)+len(tv.Controller.Tree().Groups))

	var lastGroup *navtree.Group
	for _, it := range visible {
		g := topGroup(it)
		if lastGroup != nil && g != lastGroup {
			rows = append(rows, treeRow{})
		}
		lastGroup = g
		rows = append(rows, treeRow{item: it})
	}
	return rows
}

func topGroup(it *navtree.Item) *navtree.Group {
	for p := it.Parent(); p != nil; p = p.Parent() {
		it = p
	}
	return it.Group()
}

func rowIndex(rows []treeRow, id string) int {
	for i, r := range rows {
		if r.item != nil && r.item.ID == id {
			return i
		}
	}
	return -1
}

// View renders the tree as a string
func (tv *TreeView) View() string {
	rows := tv.rows()
	if len(rows) == 0 {
		return tv.emptyState()
	}

	// Tab stop may have moved without a focus call (collapse, filter)
	if i := rowIndex(rows, tv.Controller.FocusedID()); i >= 0 && i != tv.CursorIndex {
		tv.CursorIndex = i
		tv.follow = true
	}
	if tv.CursorIndex >= len(rows) {
		tv.CursorIndex = len(rows) - 1
	}

	viewHeight := tv.Height
	if viewHeight < 1 {
		viewHeight = 1
	}

	tv.adjustScrollOffset(len(rows), viewHeight)

	startIdx := tv.ScrollOffset
	endIdx := tv.ScrollOffset + viewHeight
	if endIdx > len(rows) {
		endIdx = len(rows)
	}

	lines := make([]string, 0, viewHeight)
	for i := startIdx; i < endIdx; i++ {
		gutter := "  "
		if i == startIdx && startIdx > 0 {
			gutter = lipgloss.NewStyle().Foreground(tv.Theme.Info).Render("↑") + " "
		} else if i == endIdx-1 && endIdx < len(rows) {
			gutter = lipgloss.NewStyle().Foreground(tv.Theme.Info).Render("↓") + " "
		}
		lines = append(lines, gutter+tv.renderRow(rows[i], i == tv.CursorIndex))
	}

	// Fill remaining space if needed
	for len(lines) < viewHeight {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// Update handles keyboard and mouse input for tree navigation
func (tv *TreeView) Update(msg tea.Msg) (*TreeView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key, ok := keyFromMsg(msg)
		if !ok {
			return tv, nil
		}
		res := tv.Controller.HandleKey(key)
		tv.follow = true
		return tv, tv.resultCmd(tv.Controller.FocusedID(), res)

	case tea.MouseMsg:
		return tv, tv.handleMouse(msg)
	}
	return tv, nil
}

// keyFromMsg maps a bubbletea key to the tree protocol
func keyFromMsg(msg tea.KeyMsg) (navtree.Key, bool) {
	switch msg.String() {
	case "enter":
		return navtree.Key{Type: navtree.KeyEnter}, true
	case " ", "space":
		return navtree.Key{Type: navtree.KeySpace}, true
	case "down":
		return navtree.Key{Type: navtree.KeyDown}, true
	case "up":
		return navtree.Key{Type: navtree.KeyUp}, true
	case "right":
		return navtree.Key{Type: navtree.KeyRight}, true
	case "left":
		return navtree.Key{Type: navtree.KeyLeft}, true
	case "home":
		return navtree.Key{Type: navtree.KeyHome}, true
	case "end":
		return navtree.Key{Type: navtree.KeyEnd}, true
	}

	if msg.Type == tea.KeyRunes && !msg.Alt && len(msg.Runes) == 1 {
		return navtree.Key{Type: navtree.KeyRune, Rune: msg.Runes[0]}, true
	}
	return navtree.Key{}, false
}

// resultCmd turns a controller result into messages for the host
func (tv *TreeView) resultCmd(id string, res navtree.Result) tea.Cmd {
	var cmds []tea.Cmd
	if res.Toggled {
		if it := tv.Controller.Tree().Item(id); it != nil {
			expanded := it.Expanded
			cmds = append(cmds, func() tea.Msg {
				return TreeNodeExpandedMsg{ID: id, Expanded: expanded}
			})
		}
	}
	if res.Activation != nil {
		act := *res.Activation
		cmds = append(cmds, func() tea.Msg {
			return TreeNodeActivatedMsg{Activation: act}
		})
	}
	return tea.Batch(cmds...)
}

// handleMouse scrolls on wheel events and routes left clicks through the
// toggle and label zones
func (tv *TreeView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress {
			tv.ScrollOffset--
		}
		return nil
	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress {
			tv.ScrollOffset++
		}
		return nil
	}

	// Only handle left click press events
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return nil
	}

	for _, it := range tv.Controller.VisibleItems() {
		if it.HasChildren() && zone.Get(ZoneTreeTogglePrefix+it.ID).InBounds(msg) {
			return tv.resultCmd(it.ID, tv.Controller.HandleClick(it.ID, navtree.ClickToggle))
		}
		if zone.Get(ZoneTreeLabelPrefix + it.ID).InBounds(msg) {
			tv.follow = true
			return tv.resultCmd(it.ID, tv.Controller.HandleClick(it.ID, navtree.ClickLabel))
		}
	}
	return nil
}

// renderRow renders a single row with appropriate styling
func (tv *TreeView) renderRow(row treeRow, selected bool) string {
	maxWidth := tv.Width - 2 // gutter
	if maxWidth < 4 {
		maxWidth = 4
	}

	if row.item == nil {
		rule := strings.Repeat("─", maxWidth)
		return lipgloss.NewStyle().Foreground(tv.Theme.Border).Render(rule)
	}

	it := row.item
	indent := strings.Repeat("  ", it.Level-1)

	icon := lipgloss.NewStyle().Foreground(tv.Theme.Icon).Render(nodeIcon(it))
	if it.HasChildren() {
		icon = zone.Mark(ZoneTreeTogglePrefix+it.ID, icon)
	}

	suffix := ""
	if it.External {
		suffix = " " + lipgloss.NewStyle().Foreground(tv.Theme.External).Render("↗")
	}

	// Truncate if too long
	avail := maxWidth - runewidth.StringWidth(indent) - 2 - runewidth.StringWidth(suffix)
	label := it.Label
	if avail < 1 {
		avail = 1
	}
	if runewidth.StringWidth(label) > avail {
		label = runewidth.Truncate(label, avail, "…")
	}

	content := indent + icon + " " + zone.Mark(ZoneTreeLabelPrefix+it.ID, tv.styleLabel(it, label)) + suffix

	style := lipgloss.NewStyle().Width(maxWidth)
	if selected {
		style = style.Background(tv.Theme.Selection).Bold(true)
		if !tv.Focused {
			style = style.Background(tv.Theme.Background)
		}
	}
	return style.Render(content)
}

// styleLabel colors a label by its state: current, parent, filter mark
func (tv *TreeView) styleLabel(it *navtree.Item, label string) string {
	base := lipgloss.NewStyle().Foreground(tv.Theme.Foreground)
	switch {
	case it.Current:
		base = base.Foreground(tv.Theme.Current).Bold(true)
	case it.HasChildren():
		base = base.Foreground(tv.Theme.Parent)
	}

	switch it.Mark {
	case navtree.MarkMatch:
		hl := lipgloss.NewStyle().Foreground(tv.Theme.Match).Bold(true).Underline(true)
		return HighlightMatch(label, tv.Controller.FilterTerm(), base, hl)
	case navtree.MarkRelated:
		return base.Foreground(tv.Theme.Related).Render(label)
	}
	return base.Render(label)
}

// nodeIcon returns the expand state icon for an item
func nodeIcon(it *navtree.Item) string {
	if !it.HasChildren() {
		return "•"
	}
	if it.Expanded {
		return "▾"
	}
	return "▸"
}

// adjustScrollOffset keeps the cursor visible after focus moves and clamps
// the offset to the rendered rows
func (tv *TreeView) adjustScrollOffset(totalRows, viewHeight int) {
	if tv.follow {
		if tv.CursorIndex < tv.ScrollOffset {
			tv.ScrollOffset = tv.CursorIndex
		}
		if tv.CursorIndex >= tv.ScrollOffset+viewHeight {
			tv.ScrollOffset = tv.CursorIndex - viewHeight + 1
		}
		tv.follow = false
	}

	// Ensure scroll offset is within bounds
	maxScroll := totalRows - viewHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if tv.ScrollOffset > maxScroll {
		tv.ScrollOffset = maxScroll
	}
	if tv.ScrollOffset < 0 {
		tv.ScrollOffset = 0
	}
}

// emptyState returns the empty state view
func (tv *TreeView) emptyState() string {
	msg := "No navigation items"
	if tv.Controller.Filtering() {
		msg = "No matches"
	}

	style := lipgloss.NewStyle().
		Foreground(tv.Theme.Metadata).
		Italic(true).
		Width(tv.Width - 2).
		Align(lipgloss.Center)

	return style.Render(msg)
}

// Filter applies term to the tree and returns the match count
func (tv *TreeView) Filter(term string) int {
	n := tv.Controller.Filter(term)
	tv.follow = true
	return n
}

// GetFocusedItem returns the item holding the tab stop
func (tv *TreeView) GetFocusedItem() *navtree.Item {
	return tv.Controller.Tree().Item(tv.Controller.FocusedID())
}

// GetCurrentItem returns the active item
func (tv *TreeView) GetCurrentItem() *navtree.Item {
	return tv.Controller.Tree().Item(tv.Controller.CurrentID())
}

// SetCursorToNode focuses a reachable item by id
func (tv *TreeView) SetCursorToNode(id string) bool {
	return tv.Controller.FocusItem(id)
}

// Breadcrumb returns the labels from the top-level ancestor down to id
func (tv *TreeView) Breadcrumb(id string) []string {
	idx := tv.Controller.Index()
	e, ok := idx.Get(id)
	if !ok {
		return nil
	}
	ancestors := idx.Ancestors(id)
	path := make([]string, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		path = append(path, ancestors[i].Label)
	}
	return append(path, e.Label)
}
