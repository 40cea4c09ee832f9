package models

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

//go:embed default_tree.yaml
var defaultTreeYAML []byte

// TreeNode is a single entry of the declarative navigation map.
// Nodes are never mutated after loading.
type TreeNode struct {
	ID          string      `yaml:"id" json:"id"`
	Label       string      `yaml:"label" json:"label"`
	Href        string      `yaml:"href" json:"href"`
	External    bool        `yaml:"external,omitempty" json:"external,omitempty"`
	Current     bool        `yaml:"current,omitempty" json:"current,omitempty"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Items       []*TreeNode `yaml:"items,omitempty" json:"items,omitempty"`
}

// HasChildren reports whether the node owns a child group
func (n *TreeNode) HasChildren() bool {
	return n != nil && len(n.Items) > 0
}

// TreeGroup is a visual partition of top-level nodes. Groups do not nest.
type TreeGroup struct {
	Items []*TreeNode `yaml:"items" json:"items"`
}

// TreeData is the root of the navigation map
type TreeData struct {
	Label  string      `yaml:"label" json:"label"`
	Groups []TreeGroup `yaml:"groups" json:"groups"`
}

// NodeCount returns the total number of nodes across all groups
func (d *TreeData) NodeCount() int {
	if d == nil {
		return 0
	}

	var count func(nodes []*TreeNode, depth int) int
	count = func(nodes []*TreeNode, depth int) int {
		// Guard against self-referencing data built in code
		if depth > 64 {
			return 0
		}
		total := 0
		for _, n := range nodes {
			if n == nil {
				continue
			}
			total += 1 + count(n.Items, depth+1)
		}
		return total
	}

	total := 0
	for _, g := range d.Groups {
		total += count(g.Items, 0)
	}
	return total
}

// DefaultTreeData returns the built-in portal map
func DefaultTreeData() (*TreeData, error) {
	var data TreeData
	if err := yaml.Unmarshal(defaultTreeYAML, &data); err != nil {
		return nil, fmt.Errorf("failed to parse built-in tree data: %w", err)
	}
	return &data, nil
}

// LoadTreeData reads a navigation map from a YAML or JSON file.
// The format is picked from the file extension.
func LoadTreeData(path string) (*TreeData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree data: %w", err)
	}

	var data TreeData
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to parse tree data %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to parse tree data %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported tree data format %q", ext)
	}

	return &data, nil
}
