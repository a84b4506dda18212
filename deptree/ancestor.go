package deptree

import "fmt"

// AncestorPath returns the nodes from the root down to node i, both
// included. It returns nil if i is not a node of the tree.
func (t *Tree) AncestorPath(i int) []int {
	if !t.Contains(i) {
		return nil
	}

	path := []int{}
	for j := i; j != none; j = t.parent[j] {
		path = append(path, j)
	}

	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}

	return path
}

// LowestCommonAncestor returns the deepest node that lies on the ancestor
// path of every node in nodes.
func (t *Tree) LowestCommonAncestor(nodes []int) (int, error) {
	if len(nodes) == 0 {
		return none, ErrNoNodes
	}

	var common []int
	for idx, n := range nodes {
		path := t.AncestorPath(n)
		if path == nil {
			return none, fmt.Errorf("%w: %d", ErrNodeNotFound, n)
		}

		if idx == 0 {
			common = path
			continue
		}

		// all paths start at the root, so the nodes shared by every path
		// are a common prefix
		l := 0
		for l < len(common) && l < len(path) && common[l] == path[l] {
			l++
		}
		common = common[:l]
	}

	return common[len(common)-1], nil
}
