package navtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewController_Mount(t *testing.T) {
	c, fr := mount(t, portalData())

	assert.Equal(t, "home", c.CurrentID())
	assert.Equal(t, "home", c.FocusedID())
	assert.Equal(t, []string{"home", "apps"}, visibleIDs(c))
	assert.Empty(t, fr.calls, "mounting must not steal focus")
	requireRovingTabIndex(t, c)
}

func TestNewController_CurrentInsideCollapsedGroup(t *testing.T) {
	data := nestedData()
	data.Groups[0].Items[0].Current = false
	data.Groups[1].Items[0].Items[1].Items[1].Current = true // saw

	c, _ := mount(t, data)

	assert.Equal(t, "saw", c.CurrentID())
	assert.True(t, c.Tree().Item("apps").Expanded)
	assert.True(t, c.Tree().Item("tools").Expanded)
	assert.False(t, c.Tree().Item("tools").Owns.Inert)
	assert.Contains(t, visibleIDs(c), "saw")
	requireRovingTabIndex(t, c)
}

func TestNewController_NilTree(t *testing.T) {
	c := NewController(nil)
	assert.Equal(t, 0, c.Index().Len())
	assert.Empty(t, c.VisibleItems())
	assert.Equal(t, Result{}, c.HandleKey(Key{Type: KeyDown}))
	assert.Equal(t, Result{}, c.HandleClick("x", ClickLabel))
}

func TestController_ClickParentLabelActivatesWithoutNavigating(t *testing.T) {
	c, fr := mount(t, portalData())

	res := c.HandleClick("apps", ClickLabel)

	require.NotNil(t, res.Activation)
	assert.True(t, res.Handled)
	assert.True(t, res.PreventDefault)
	assert.False(t, res.Activation.Navigates())
	assert.Equal(t, "apps", c.CurrentID())
	assert.False(t, c.Tree().Item("home").Current)
	assert.Equal(t, "apps", fr.last())
	requireRovingTabIndex(t, c)
}

func TestController_ArrowRightExpandsThenEnters(t *testing.T) {
	c, fr := mount(t, portalData())
	require.True(t, c.FocusItem("apps"))

	res := c.HandleKey(Key{Type: KeyRight})
	assert.True(t, res.Handled)
	assert.True(t, res.Toggled)
	assert.True(t, c.Tree().Item("apps").Expanded)
	assert.False(t, c.Tree().Item("apps").Owns.Inert)
	assert.Equal(t, "apps", c.FocusedID())

	res = c.HandleKey(Key{Type: KeyRight})
	assert.True(t, res.Handled)
	assert.False(t, res.Toggled)
	assert.Equal(t, "find", c.FocusedID())
	assert.Equal(t, "find", fr.last())
	requireRovingTabIndex(t, c)
}

func TestController_ArrowLeft(t *testing.T) {
	c, _ := mount(t, portalData())
	c.Expand("apps")
	require.True(t, c.FocusItem("inlet"))

	c.HandleKey(Key{Type: KeyLeft})
	assert.Equal(t, "apps", c.FocusedID(), "leaf moves to parent")

	res := c.HandleKey(Key{Type: KeyLeft})
	assert.True(t, res.Toggled)
	assert.False(t, c.Tree().Item("apps").Expanded)

	res = c.HandleKey(Key{Type: KeyLeft})
	assert.True(t, res.Handled, "top-level item consumes the key")
	assert.Equal(t, "apps", c.FocusedID())
	requireRovingTabIndex(t, c)
}

func TestController_ArrowUpDownBounds(t *testing.T) {
	c, _ := mount(t, portalData())

	c.HandleKey(Key{Type: KeyUp})
	assert.Equal(t, "home", c.FocusedID(), "no wrap at the top")

	c.HandleKey(Key{Type: KeyDown})
	assert.Equal(t, "apps", c.FocusedID())

	c.HandleKey(Key{Type: KeyDown})
	assert.Equal(t, "apps", c.FocusedID(), "collapsed children are skipped and no wrap at the bottom")

	c.Expand("apps")
	c.HandleKey(Key{Type: KeyDown})
	c.HandleKey(Key{Type: KeyDown})
	assert.Equal(t, "inlet", c.FocusedID())
}

func TestController_HomeEnd(t *testing.T) {
	c, _ := mount(t, nestedData())
	c.Expand("apps")

	c.HandleKey(Key{Type: KeyEnd})
	assert.Equal(t, "games", c.FocusedID())

	c.HandleKey(Key{Type: KeyHome})
	assert.Equal(t, "home", c.FocusedID())
}

func TestController_EnterAndSpaceActivate(t *testing.T) {
	for _, kt := range []KeyType{KeyEnter, KeySpace} {
		c, _ := mount(t, portalData())
		c.Expand("apps")
		c.FocusItem("find")

		res := c.HandleKey(Key{Type: kt})

		require.NotNil(t, res.Activation)
		assert.True(t, res.PreventDefault)
		assert.Equal(t, "find", res.Activation.ID)
		assert.True(t, res.Activation.External)
		assert.True(t, res.Activation.Navigates())
		assert.Equal(t, "find", c.CurrentID())
	}
}

func TestController_UnhandledKeys(t *testing.T) {
	c, _ := mount(t, portalData())

	assert.Equal(t, Result{}, c.HandleKey(Key{Type: KeyUnknown}))
	assert.Equal(t, Result{}, c.HandleKey(Key{Type: KeyRune, Rune: '7'}))
	assert.Equal(t, Result{}, c.HandleKey(Key{Type: KeyRune, Rune: '/'}))
	assert.Equal(t, "home", c.FocusedID())
}

func TestController_TypeAhead(t *testing.T) {
	c, fr := mount(t, portalData())
	c.Expand("apps")

	res := c.HandleKey(Key{Type: KeyRune, Rune: 'f'})
	assert.True(t, res.Handled)
	assert.Equal(t, "find", c.FocusedID())
	assert.Equal(t, "find", fr.last())

	c.HandleKey(Key{Type: KeyRune, Rune: 'H'})
	assert.Equal(t, "home", c.FocusedID(), "wraps around and ignores case")

	c.HandleKey(Key{Type: KeyRune, Rune: 'z'})
	assert.Equal(t, "home", c.FocusedID(), "no match keeps focus")
}

func TestController_TypeAheadSkipsCollapsed(t *testing.T) {
	c, _ := mount(t, portalData())

	c.HandleKey(Key{Type: KeyRune, Rune: 'f'})
	assert.Equal(t, "home", c.FocusedID())
}

func TestController_ActivationIsExclusive(t *testing.T) {
	c, _ := mount(t, nestedData())

	for _, id := range []string{"saw", "about", "farkle", "apps"} {
		_, ok := c.Activate(id)
		require.True(t, ok)

		var current []string
		for _, it := range c.Tree().Items() {
			if it.Current {
				current = append(current, it.ID)
			}
		}
		assert.Equal(t, []string{id}, current)
		assert.Contains(t, visibleIDs(c), id)
		requireRovingTabIndex(t, c)
	}

	_, ok := c.Activate("nope")
	assert.False(t, ok)
	assert.Equal(t, "apps", c.CurrentID())
}

func TestController_ReactivateRefocuses(t *testing.T) {
	c, fr := mount(t, portalData())

	c.Activate("home")
	c.Activate("home")
	assert.Equal(t, []string{"home", "home"}, fr.calls)
	assert.Equal(t, "home", c.CurrentID())
}

func TestController_ToggleRejectsLeaves(t *testing.T) {
	c, _ := mount(t, portalData())

	assert.False(t, c.Toggle("home"))
	assert.False(t, c.Toggle("missing"))
	assert.False(t, c.Collapse("apps"), "already collapsed")
	assert.True(t, c.Expand("apps"))
	assert.False(t, c.Expand("apps"), "already expanded")
}

func TestController_NestedStatePreserved(t *testing.T) {
	c, _ := mount(t, nestedData())
	c.Expand("apps")
	c.Expand("tools")
	assert.Contains(t, visibleIDs(c), "hammer")

	c.Toggle("apps")
	assert.NotContains(t, visibleIDs(c), "tools")
	assert.True(t, c.Tree().Item("tools").Expanded)
	assert.False(t, c.Tree().Item("tools").Owns.Inert)

	c.Toggle("apps")
	assert.Contains(t, visibleIDs(c), "hammer")
}

func TestController_CollapseMovesTabStopToAncestor(t *testing.T) {
	c, fr := mount(t, nestedData())
	c.Expand("apps")
	c.Expand("tools")
	require.True(t, c.FocusItem("saw"))
	calls := len(fr.calls)

	c.Collapse("apps")

	assert.Equal(t, "apps", c.FocusedID())
	assert.Len(t, fr.calls, calls, "relocating the tab stop does not move focus")
	requireRovingTabIndex(t, c)
}

func TestController_FocusRejectsUnreachable(t *testing.T) {
	c, _ := mount(t, portalData())

	assert.False(t, c.FocusItem("find"))
	assert.False(t, c.FocusItem("missing"))
	assert.Equal(t, "home", c.FocusedID())
}

func TestController_ClickToggle(t *testing.T) {
	c, fr := mount(t, portalData())

	res := c.HandleClick("apps", ClickToggle)
	assert.Equal(t, Result{Handled: true, PreventDefault: true, Toggled: true}, res)
	assert.True(t, c.Tree().Item("apps").Expanded)
	assert.Equal(t, "home", c.CurrentID(), "toggle does not activate")
	assert.Empty(t, fr.calls)

	c.HandleClick("apps", ClickToggle)
	assert.False(t, c.Tree().Item("apps").Expanded)
}

func TestController_ClickLeaves(t *testing.T) {
	c, _ := mount(t, portalData())

	res := c.HandleClick("find", ClickLabel)
	assert.Equal(t, Result{}, res, "collapsed children cannot be clicked")

	c.Expand("apps")
	res = c.HandleClick("find", ClickLabel)
	require.NotNil(t, res.Activation)
	assert.False(t, res.PreventDefault, "external leaves keep default navigation")
	assert.Equal(t, "find", c.CurrentID())

	res = c.HandleClick("home", ClickToggle)
	require.NotNil(t, res.Activation, "toggle target on a leaf activates")
	assert.True(t, res.PreventDefault)
	assert.Equal(t, "home", c.CurrentID())

	assert.Equal(t, Result{}, c.HandleClick("missing", ClickLabel))
}

func TestFocusFunc(t *testing.T) {
	var got string
	tree, err := Render(portalData())
	require.NoError(t, err)

	c := NewController(tree, WithFocusManager(FocusFunc(func(id string) { got = id })))
	c.HandleKey(Key{Type: KeyDown})
	assert.Equal(t, "apps", got)
}
