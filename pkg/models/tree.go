package models

// DirectoryNode is one directory in a directory-only tree
type DirectoryNode struct {
	Name     string           `json:"name" yaml:"name"`
	Path     string           `json:"path" yaml:"path"`
	Children []*DirectoryNode `json:"children" yaml:"children"`
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *DirectoryNode) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}
