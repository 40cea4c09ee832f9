package navtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndex(t *testing.T) {
	tree, err := Render(portalData())
	require.NoError(t, err)

	idx := BuildIndex(tree)
	require.Equal(t, 4, idx.Len())

	home, ok := idx.Get("home")
	require.True(t, ok)
	assert.Equal(t, Entry{ID: "home", Level: 1, Label: "Home"}, home)
	assert.False(t, home.HasParent())

	apps, ok := idx.Get("apps")
	require.True(t, ok)
	assert.True(t, apps.HasChildren)

	for _, id := range []string{"find", "inlet"} {
		e, ok := idx.Get(id)
		require.True(t, ok, id)
		assert.Equal(t, "apps", e.ParentID)
		assert.Equal(t, 2, e.Level)
		assert.False(t, e.HasChildren)
	}

	_, ok = idx.Get("missing")
	assert.False(t, ok)
}

func TestIndex_ParentAndAncestors(t *testing.T) {
	tree, err := Render(nestedData())
	require.NoError(t, err)
	idx := BuildIndex(tree)

	p, ok := idx.Parent("hammer")
	require.True(t, ok)
	assert.Equal(t, "tools", p.ID)

	_, ok = idx.Parent("apps")
	assert.False(t, ok)

	var chain []string
	for _, e := range idx.Ancestors("saw") {
		chain = append(chain, e.ID)
	}
	assert.Equal(t, []string{"tools", "apps"}, chain)
	assert.Empty(t, idx.Ancestors("home"))
}

func TestIndex_EntriesDocumentOrder(t *testing.T) {
	tree, err := Render(nestedData())
	require.NoError(t, err)

	entries := BuildIndex(tree).Entries()
	require.Len(t, entries, tree.Len())
	for i, it := range tree.Items() {
		assert.Equal(t, it.ID, entries[i].ID)
	}
}

func TestIndex_TrimsLabels(t *testing.T) {
	data := portalData()
	data.Groups[0].Items[0].Label = "  Home \n"
	tree, err := Render(data)
	require.NoError(t, err)

	e, _ := BuildIndex(tree).Get("home")
	assert.Equal(t, "Home", e.Label)
}

func TestIndex_Nil(t *testing.T) {
	var idx *Index
	assert.Equal(t, 0, idx.Len())
	_, ok := idx.Get("x")
	assert.False(t, ok)
	assert.Nil(t, idx.Entries())
}
