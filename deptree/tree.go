package deptree

import (
	"fmt"

	sent "github.com/revelaction/reval/sentence"
)

const none = -1

// Tree is a rooted dependency tree over the tokens of a sentence.
//
// Nodes are addressed by their 0-based token index. A Tree built from a
// head array contains every token; a pruned Tree keeps the same index space
// but contains only a subset of the tokens. A Tree is never modified after
// construction.
type Tree struct {
	root int

	// parent[i] is the parent of node i, none for the root and for nodes
	// not contained in the tree.
	parent   []int
	children [][]int
	rel      []string
	text     []string

	kept []bool
	size int
}

// Validate checks that heads is a head array for a sentence of n tokens:
// every value in [0, n], exactly one 0 and no cycles.
func Validate(heads []int, n int) error {
	if len(heads) != n {
		return &TreeConstructionError{
			Node:   none,
			Reason: fmt.Sprintf("head array has %d elements, sentence has %d tokens", len(heads), n),
		}
	}

	if n == 0 {
		return &TreeConstructionError{Node: none, Reason: "empty head array"}
	}

	root := none
	for i, h := range heads {
		if h < 0 || h > n {
			return &TreeConstructionError{Node: i, Reason: fmt.Sprintf("head %d out of range [0, %d]", h, n)}
		}

		if h == i+1 {
			return &TreeConstructionError{Node: i, Reason: "token governs itself"}
		}

		if h != 0 {
			continue
		}

		if root != none {
			return &TreeConstructionError{Node: i, Reason: fmt.Sprintf("second root, first root is node %d", root)}
		}

		root = i
	}

	if root == none {
		return &TreeConstructionError{Node: none, Reason: "no root"}
	}

	// 0: unvisited, 1: on the current walk, 2: reaches the root
	state := make([]uint8, n)
	state[root] = 2

	for i := range heads {
		walk := []int{}
		for j := i; state[j] != 2; j = heads[j] - 1 {
			if state[j] == 1 {
				return &TreeConstructionError{Node: j, Reason: "cycle in governor chain"}
			}

			state[j] = 1
			walk = append(walk, j)
		}

		for _, j := range walk {
			state[j] = 2
		}
	}

	return nil
}

// Build validates heads and converts it into a Tree. rels holds the
// relation label of each token and tokens the token text; both may be nil.
func Build(heads []int, rels []string, tokens []string) (*Tree, error) {
	n := len(heads)
	if err := Validate(heads, n); err != nil {
		return nil, err
	}

	if rels != nil && len(rels) != n {
		return nil, &TreeConstructionError{Node: none, Reason: fmt.Sprintf("%d relation labels for %d tokens", len(rels), n)}
	}

	if tokens != nil && len(tokens) != n {
		return nil, &TreeConstructionError{Node: none, Reason: fmt.Sprintf("%d tokens for head array of %d", len(tokens), n)}
	}

	t := newTree(n)
	t.rel = rels
	t.text = tokens
	t.size = n

	for i, h := range heads {
		t.kept[i] = true
		if h == 0 {
			t.root = i
			continue
		}

		t.parent[i] = h - 1
		t.children[h-1] = append(t.children[h-1], i)
	}

	return t, nil
}

// FromExample builds the dependency tree of an example.
func FromExample(ex *sent.Example) (*Tree, error) {
	if err := ex.Require(sent.FieldDepHead, sent.FieldDep); err != nil {
		return nil, err
	}

	t, err := Build(ex.DepHead, ex.Dep, ex.Tokens)
	if err != nil {
		return nil, fmt.Errorf("example %s: %w", exampleId(ex), err)
	}

	return t, nil
}

func exampleId(ex *sent.Example) string {
	if ex.Id == "" {
		return "None"
	}
	return ex.Id
}

func newTree(n int) *Tree {
	t := &Tree{
		root:     none,
		parent:   make([]int, n),
		children: make([][]int, n),
		kept:     make([]bool, n),
	}

	for i := range t.parent {
		t.parent[i] = none
	}

	return t
}

// Root returns the root node.
func (t *Tree) Root() int {
	return t.root
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return t.size
}

// Contains reports whether token i is a node of the tree.
func (t *Tree) Contains(i int) bool {
	return i >= 0 && i < len(t.kept) && t.kept[i]
}

// Nodes returns the nodes of the tree in token order.
func (t *Tree) Nodes() []int {
	nodes := make([]int, 0, t.size)
	for i, k := range t.kept {
		if k {
			nodes = append(nodes, i)
		}
	}
	return nodes
}

// Parent returns the parent of node i. ok is false for the root.
func (t *Tree) Parent(i int) (p int, ok bool) {
	if !t.Contains(i) || t.parent[i] == none {
		return none, false
	}
	return t.parent[i], true
}

// Governor returns the 1-based head value of node i, 0 for the root.
func (t *Tree) Governor(i int) int {
	return t.parent[i] + 1
}

// Children returns the children of node i in token order.
func (t *Tree) Children(i int) []int {
	if !t.Contains(i) {
		return nil
	}

	c := make([]int, len(t.children[i]))
	copy(c, t.children[i])
	return c
}

// Rel returns the relation label of node i to its governor in the source
// parse.
func (t *Tree) Rel(i int) string {
	if t.rel == nil {
		return ""
	}
	return t.rel[i]
}

func (t *Tree) Text(i int) string {
	if t.text == nil {
		return ""
	}
	return t.text[i]
}

// Depth returns the number of edges of the longest root to leaf path. A
// single node tree has depth 0.
func (t *Tree) Depth() int {
	if t.root == none {
		return 0
	}

	depth := make([]int, len(t.parent))
	stack := []int{t.root}
	max := 0

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if depth[n] > max {
			max = depth[n]
		}

		for _, c := range t.children[n] {
			depth[c] = depth[n] + 1
			stack = append(stack, c)
		}
	}

	return max
}
