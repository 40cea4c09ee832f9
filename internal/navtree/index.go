package navtree

import "strings"

// Entry is the derived metadata for one item.
// ParentID is empty for top-level items.
type Entry struct {
	ID          string `json:"id"`
	Level       int    `json:"level"`
	HasChildren bool   `json:"has_children"`
	ParentID    string `json:"parent_id"`
	Label       string `json:"label"`
}

// HasParent reports whether the entry has a parent item
func (e Entry) HasParent() bool {
	return e.ParentID != ""
}

// Index answers ancestry and sibling questions without walking the tree.
// It is built once per rendered tree and is read-only afterwards.
type Index struct {
	entries map[string]Entry
	order   []string
}

// BuildIndex walks the rendered tree once
func BuildIndex(t *Tree) *Index {
	idx := &Index{entries: make(map[string]Entry, t.Len())}
	if t == nil {
		return idx
	}

	var walk func(g *Group)
	walk = func(g *Group) {
		parentID := ""
		if g.Owner != nil {
			parentID = g.Owner.ID
		}
		for _, it := range g.Items {
			idx.entries[it.ID] = Entry{
				ID:          it.ID,
				Level:       it.Level,
				HasChildren: it.HasChildren(),
				ParentID:    parentID,
				Label:       strings.TrimSpace(it.Label),
			}
			idx.order = append(idx.order, it.ID)
			if it.Owns != nil {
				walk(it.Owns)
			}
		}
	}
	for _, g := range t.Groups {
		walk(g)
	}

	return idx
}

// Get returns the entry for id
func (idx *Index) Get(id string) (Entry, bool) {
	if idx == nil {
		return Entry{}, false
	}
	e, ok := idx.entries[id]
	return e, ok
}

// Parent returns the parent entry of id, if both exist
func (idx *Index) Parent(id string) (Entry, bool) {
	e, ok := idx.Get(id)
	if !ok || !e.HasParent() {
		return Entry{}, false
	}
	return idx.Get(e.ParentID)
}

// Ancestors returns the parent chain of id, nearest first
func (idx *Index) Ancestors(id string) []Entry {
	var chain []Entry
	for p, ok := idx.Parent(id); ok; p, ok = idx.Parent(p.ID) {
		chain = append(chain, p)
		if len(chain) > len(idx.order) {
			break
		}
	}
	return chain
}

// Len returns the number of entries
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.order)
}

// Entries returns all entries in document order
func (idx *Index) Entries() []Entry {
	if idx == nil {
		return nil
	}
	out := make([]Entry, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, idx.entries[id])
	}
	return out
}
