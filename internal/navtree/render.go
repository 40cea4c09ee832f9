// Package navtree implements an accessible hierarchical navigation tree:
// rendering declarative tree data into a role-annotated node graph, indexing it,
// and driving it with the tree-view keyboard/pointer protocol and a live filter.
//
// The package has no UI dependency. Hosts render the graph however they like
// (terminal, HTML markup) and feed input events to a Controller.
package navtree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rebeliceyang/lazynav/internal/models"
)

// Construction errors. A tree that fails with any of these is not built at all.
var (
	ErrNilData         = errors.New("tree data is nil")
	ErrNilNode         = errors.New("nil tree node")
	ErrEmptyID         = errors.New("tree node has an empty id")
	ErrDuplicateID     = errors.New("duplicate tree node id")
	ErrCycle           = errors.New("tree node is its own descendant")
	ErrMultipleCurrent = errors.New("more than one tree node is marked current")
)

// Mark classifies an item under the active filter
type Mark int

const (
	MarkNone Mark = iota
	MarkMatch
	MarkRelated
	MarkHidden
)

// String returns the mark name used in markup and logs
func (m Mark) String() string {
	switch m {
	case MarkMatch:
		return "match"
	case MarkRelated:
		return "related"
	case MarkHidden:
		return "hidden"
	default:
		return "none"
	}
}

// Group is a list of sibling items. Top-level groups have no owner and are
// never inert; a parent's owned group is inert while the parent is collapsed.
type Group struct {
	ID    string
	Owner *Item
	Items []*Item
	Inert bool
}

// Item is a rendered tree item (role treeitem)
type Item struct {
	ID          string
	Label       string
	Href        string
	Description string
	External    bool // external leaf affordance; never set on parents
	Level       int  // 1-based, top-level group items are 1
	SetSize     int
	PosInSet    int
	Owns        *Group // nil for leaves
	Expanded    bool
	TabIndex    int
	Current     bool
	Mark        Mark

	group *Group
}

// HasChildren reports whether the item owns a child group
func (it *Item) HasChildren() bool {
	return it != nil && it.Owns != nil
}

// Group returns the group containing the item
func (it *Item) Group() *Group {
	return it.group
}

// Parent returns the item owning the group that contains this item,
// or nil for top-level items.
func (it *Item) Parent() *Item {
	if it == nil || it.group == nil {
		return nil
	}
	return it.group.Owner
}

// Tree is the rendered node graph
type Tree struct {
	Label     string
	Groups    []*Group
	Filtering bool

	items []*Item // document order
	byID  map[string]*Item
}

// Item returns the item with the given id, or nil
func (t *Tree) Item(id string) *Item {
	if t == nil || id == "" {
		return nil
	}
	return t.byID[id]
}

// Items returns every item in document order. The slice must not be modified.
func (t *Tree) Items() []*Item {
	if t == nil {
		return nil
	}
	return t.items
}

// Len returns the number of items
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}

// TabStop returns the single item with tabindex 0, or nil for an empty tree
func (t *Tree) TabStop() *Item {
	for _, it := range t.Items() {
		if it.TabIndex == 0 {
			return it
		}
	}
	return nil
}

// Render builds the node graph for data. It runs once per mount and either
// returns a complete tree or a construction error.
func Render(data *models.TreeData) (*Tree, error) {
	if data == nil {
		return nil, ErrNilData
	}

	r := &renderer{
		tree: &Tree{
			Label: data.Label,
			byID:  make(map[string]*Item),
		},
		onPath:   make(map[*models.TreeNode]bool),
		groupIDs: make(map[string]bool, len(data.Groups)),
	}

	// Owned groups must not reuse a top-level group id
	for i := range data.Groups {
		r.groupIDs[topLevelGroupID(i)] = true
	}

	for i, g := range data.Groups {
		group := &Group{ID: topLevelGroupID(i)}
		if err := r.renderItems(group, g.Items, 1); err != nil {
			return nil, err
		}
		r.tree.Groups = append(r.tree.Groups, group)
	}

	// Single tab stop: the current item, else the first item in the tree
	if r.current != nil {
		r.current.TabIndex = 0
	} else if len(r.tree.items) > 0 {
		r.tree.items[0].TabIndex = 0
	}

	return r.tree, nil
}

func topLevelGroupID(i int) string {
	return fmt.Sprintf("tree-group-toplevel-%d", i)
}

type renderer struct {
	tree     *Tree
	current  *Item
	onPath   map[*models.TreeNode]bool
	groupIDs map[string]bool
}

func (r *renderer) renderItems(group *Group, nodes []*models.TreeNode, level int) error {
	for i, node := range nodes {
		if node == nil {
			return fmt.Errorf("%w in group %s at position %d", ErrNilNode, group.ID, i+1)
		}
		if r.onPath[node] {
			return fmt.Errorf("%w: %q", ErrCycle, node.ID)
		}

		id := strings.TrimSpace(node.ID)
		if id == "" {
			return fmt.Errorf("%w (label %q)", ErrEmptyID, node.Label)
		}
		if _, exists := r.tree.byID[id]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}

		item := &Item{
			ID:          id,
			Label:       node.Label,
			Href:        node.Href,
			Description: node.Description,
			External:    node.External && !node.HasChildren(),
			Level:       level,
			SetSize:     len(nodes),
			PosInSet:    i + 1,
			TabIndex:    -1,
			Current:     node.Current,
			group:       group,
		}
		if item.Href == "" {
			item.Href = "#"
		}
		if node.Current {
			if r.current != nil {
				return fmt.Errorf("%w: %q and %q", ErrMultipleCurrent, r.current.ID, id)
			}
			r.current = item
		}

		group.Items = append(group.Items, item)
		r.tree.items = append(r.tree.items, item)
		r.tree.byID[id] = item

		if node.HasChildren() {
			groupID := "tree-group-" + id
			if r.groupIDs[groupID] {
				return fmt.Errorf("%w: group %q of %q", ErrDuplicateID, groupID, id)
			}
			r.groupIDs[groupID] = true
			item.Owns = &Group{
				ID:    groupID,
				Owner: item,
				Inert: true,
			}
			r.onPath[node] = true
			err := r.renderItems(item.Owns, node.Items, level+1)
			delete(r.onPath, node)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
