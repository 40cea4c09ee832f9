package navtree

import (
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
)

// DefaultMinFilterLength is the shortest term that activates filtering
const DefaultMinFilterLength = 3

// FocusManager moves input focus to a rendered item.
// The controller calls it for every programmatic focus move.
type FocusManager interface {
	Focus(id string)
}

// FocusFunc adapts a function to FocusManager
type FocusFunc func(id string)

// Focus calls f(id)
func (f FocusFunc) Focus(id string) { f(id) }

type nopFocus struct{}

func (nopFocus) Focus(string) {}

// Option configures a Controller
type Option func(*Controller)

// WithFocusManager sets the focus capability
func WithFocusManager(fm FocusManager) Option {
	return func(c *Controller) {
		if fm != nil {
			c.focus = fm
		}
	}
}

// WithMinFilterLength sets the filter activation threshold
func WithMinFilterLength(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.minFilterLength = n
		}
	}
}

// WithLogger sets the logger for state transitions
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// KeyType identifies a key the tree protocol understands
type KeyType int

const (
	KeyUnknown KeyType = iota
	KeyEnter
	KeySpace
	KeyDown
	KeyUp
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyRune
)

// Key is a keydown event. Rune is set for KeyRune.
type Key struct {
	Type KeyType
	Rune rune
}

// ClickTarget tells which part of an item was clicked
type ClickTarget int

const (
	ClickLabel ClickTarget = iota
	ClickToggle
)

// Activation describes an item that became current
type Activation struct {
	ID       string
	Label    string
	Href     string
	External bool
	Leaf     bool
}

// Navigates reports whether the activation should trigger the item's
// navigation action. Parents only toggle or become current.
func (a Activation) Navigates() bool {
	return a.Leaf
}

// Result reports what an input event did.
// Handled means the event was consumed by the tree; PreventDefault means the
// host must suppress the platform default for it.
type Result struct {
	Handled        bool
	PreventDefault bool
	Toggled        bool
	Activation     *Activation
}

// Controller owns the transient interaction state of one mounted tree:
// expansion, the current item, the roving tab stop and the filter term.
// It is not safe for concurrent use; hosts call it from a single event loop.
type Controller struct {
	tree            *Tree
	index           *Index
	focus           FocusManager
	logger          *log.Logger
	minFilterLength int

	currentID  string
	focusedID  string
	filterTerm string
}

// NewController mounts t: it builds the index, adopts the rendered tab stop and
// makes the current item reachable.
func NewController(t *Tree, opts ...Option) *Controller {
	if t == nil {
		t = &Tree{byID: map[string]*Item{}}
	}

	c := &Controller{
		tree:            t,
		focus:           nopFocus{},
		logger:          log.New(io.Discard),
		minFilterLength: DefaultMinFilterLength,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.index = BuildIndex(t)
	for _, it := range t.items {
		if it.Current {
			c.currentID = it.ID
		}
		if it.TabIndex == 0 && c.focusedID == "" {
			c.focusedID = it.ID
		}
	}
	if c.currentID != "" {
		c.EnsureVisible(c.currentID)
	}

	c.logger.Debug("tree mounted", "items", c.index.Len(), "current", c.currentID)
	return c
}

// Tree returns the rendered tree the controller drives
func (c *Controller) Tree() *Tree { return c.tree }

// Index returns the node index built at mount
func (c *Controller) Index() *Index { return c.index }

// CurrentID returns the active item id, or ""
func (c *Controller) CurrentID() string { return c.currentID }

// FocusedID returns the id of the roving tab stop, or ""
func (c *Controller) FocusedID() string { return c.focusedID }

// FilterTerm returns the last term passed to Filter, trimmed
func (c *Controller) FilterTerm() string { return c.filterTerm }

// Filtering reports whether a filter is currently applied
func (c *Controller) Filtering() bool { return c.tree.Filtering }

// MinFilterLength returns the filter activation threshold
func (c *Controller) MinFilterLength() int { return c.minFilterLength }

// Toggle flips the expansion state of a parent item.
// It returns false for leaves and unknown ids.
func (c *Controller) Toggle(id string) bool {
	it := c.tree.Item(id)
	if !it.HasChildren() {
		return false
	}
	c.setExpanded(it, !it.Expanded)
	return true
}

// Expand opens a collapsed parent
func (c *Controller) Expand(id string) bool {
	it := c.tree.Item(id)
	if !it.HasChildren() || it.Expanded {
		return false
	}
	c.setExpanded(it, true)
	return true
}

// Collapse closes an expanded parent
func (c *Controller) Collapse(id string) bool {
	it := c.tree.Item(id)
	if !it.HasChildren() || !it.Expanded {
		return false
	}
	c.setExpanded(it, false)
	return true
}

// setExpanded keeps the owned group in place and only toggles its inert flag,
// so nested expansion state survives a collapse.
func (c *Controller) setExpanded(it *Item, expanded bool) {
	it.Expanded = expanded
	it.Owns.Inert = !expanded
	c.logger.Debug("toggle", "id", it.ID, "expanded", expanded)
	if !expanded {
		c.normalizeTabStop()
	}
}

// Activate makes id the single current item and moves focus to it.
// Activating the current item again only refocuses it.
func (c *Controller) Activate(id string) (Activation, bool) {
	it := c.tree.Item(id)
	if it == nil {
		return Activation{}, false
	}

	if c.currentID != it.ID {
		if prev := c.tree.Item(c.currentID); prev != nil {
			prev.Current = false
		}
		it.Current = true
		c.currentID = it.ID
		c.logger.Debug("activate", "id", it.ID)
	}

	c.EnsureVisible(it.ID)
	if c.reachable(it) {
		c.FocusItem(it.ID)
	}

	return Activation{
		ID:       it.ID,
		Label:    it.Label,
		Href:     it.Href,
		External: it.External,
		Leaf:     !it.HasChildren(),
	}, true
}

// FocusItem moves the roving tab stop to id and focuses it.
// Unreachable items cannot take focus.
func (c *Controller) FocusItem(id string) bool {
	it := c.tree.Item(id)
	if it == nil || !c.reachable(it) {
		return false
	}
	c.setTabStop(it)
	c.focus.Focus(it.ID)
	return true
}

func (c *Controller) setTabStop(it *Item) {
	for _, other := range c.tree.items {
		other.TabIndex = -1
	}
	it.TabIndex = 0
	c.focusedID = it.ID
}

// normalizeTabStop moves the tab stop off an item that is no longer reachable:
// to its nearest reachable ancestor, else to the first visible item.
func (c *Controller) normalizeTabStop() {
	it := c.tree.Item(c.focusedID)
	if it != nil && c.reachable(it) {
		return
	}

	var target *Item
	if it != nil {
		for p := it.Parent(); p != nil; p = p.Parent() {
			if c.reachable(p) {
				target = p
				break
			}
		}
	}
	if target == nil {
		if visible := c.VisibleItems(); len(visible) > 0 {
			target = visible[0]
		}
	}
	if target != nil {
		c.setTabStop(target)
	}
}

// reachable reports whether it is in the accessibility tree: no inert group
// on its ancestor chain and not hidden by the filter.
func (c *Controller) reachable(it *Item) bool {
	if it.Mark == MarkHidden {
		return false
	}
	for g := it.group; g != nil && g.Owner != nil; g = g.Owner.group {
		if g.Inert || g.Owner.Mark == MarkHidden {
			return false
		}
	}
	return true
}

// EnsureVisible expands every ancestor of id whose owned group is inert
func (c *Controller) EnsureVisible(id string) {
	it := c.tree.Item(id)
	if it == nil {
		return
	}
	for p := it.Parent(); p != nil; p = p.Parent() {
		if p.Owns.Inert {
			c.setExpanded(p, true)
		}
	}
}

// VisibleItems returns the reachable items in document order
func (c *Controller) VisibleItems() []*Item {
	var out []*Item
	var walk func(items []*Item)
	walk = func(items []*Item) {
		for _, it := range items {
			if it.Mark == MarkHidden {
				continue
			}
			out = append(out, it)
			if it.HasChildren() && it.Expanded {
				walk(it.Owns.Items)
			}
		}
	}
	for _, g := range c.tree.Groups {
		walk(g.Items)
	}
	return out
}

// HandleKey applies one keydown to the focused item.
// A focused item that is hidden or inside a collapsed group ignores keys.
func (c *Controller) HandleKey(k Key) Result {
	it := c.tree.Item(c.focusedID)
	if it == nil || !c.reachable(it) {
		return Result{}
	}

	handled := Result{Handled: true, PreventDefault: true}

	switch k.Type {
	case KeyEnter, KeySpace:
		act, _ := c.Activate(it.ID)
		handled.Activation = &act
		return handled

	case KeyDown:
		visible := c.VisibleItems()
		if i := indexOf(visible, it); i >= 0 && i < len(visible)-1 {
			c.FocusItem(visible[i+1].ID)
		}
		return handled

	case KeyUp:
		visible := c.VisibleItems()
		if i := indexOf(visible, it); i > 0 {
			c.FocusItem(visible[i-1].ID)
		}
		return handled

	case KeyRight:
		if !it.HasChildren() {
			return handled
		}
		if !it.Expanded {
			c.setExpanded(it, true)
			handled.Toggled = true
			return handled
		}
		for _, child := range it.Owns.Items {
			if child.Mark != MarkHidden {
				c.FocusItem(child.ID)
				break
			}
		}
		return handled

	case KeyLeft:
		if it.HasChildren() && it.Expanded {
			c.setExpanded(it, false)
			handled.Toggled = true
			return handled
		}
		if parent, ok := c.index.Parent(it.ID); ok {
			c.FocusItem(parent.ID)
		}
		return handled

	case KeyHome:
		if visible := c.VisibleItems(); len(visible) > 0 {
			c.FocusItem(visible[0].ID)
		}
		return handled

	case KeyEnd:
		if visible := c.VisibleItems(); len(visible) > 0 {
			c.FocusItem(visible[len(visible)-1].ID)
		}
		return handled

	case KeyRune:
		if !unicode.IsLetter(k.Rune) {
			return Result{}
		}
		c.typeAhead(it, k.Rune)
		return handled
	}

	return Result{}
}

// typeAhead focuses the next visible item whose label starts with r,
// searching forward from the focused item and wrapping around.
func (c *Controller) typeAhead(from *Item, r rune) {
	visible := c.VisibleItems()
	if len(visible) == 0 {
		return
	}
	prefix := foldString(string(r))
	start := indexOf(visible, from)

	for n := 1; n <= len(visible); n++ {
		candidate := visible[(start+n+len(visible))%len(visible)]
		if strings.HasPrefix(foldString(strings.TrimSpace(candidate.Label)), prefix) {
			c.FocusItem(candidate.ID)
			return
		}
	}
}

// HandleClick applies a pointer click on item id.
// Clicking a parent's toggle only toggles it. Any other click activates the
// item; only external leaves keep their default navigation.
func (c *Controller) HandleClick(id string, target ClickTarget) Result {
	it := c.tree.Item(id)
	if it == nil || !c.reachable(it) {
		return Result{}
	}

	if target == ClickToggle && it.HasChildren() {
		c.Toggle(id)
		return Result{Handled: true, PreventDefault: true, Toggled: true}
	}

	act, _ := c.Activate(id)
	return Result{
		Handled:        true,
		PreventDefault: !act.External,
		Activation:     &act,
	}
}

func indexOf(items []*Item, target *Item) int {
	for i, it := range items {
		if it == target {
			return i
		}
	}
	return -1
}
